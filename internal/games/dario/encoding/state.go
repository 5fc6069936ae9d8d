package encoding

import (
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

const (
	stateCodec  = "state"
	statePrefix = 's'
	fieldSep    = '|'
)

// EncodeGameState writes a full snapshot:
//
//	s<mode>|<phase>|<pill>|<seedLen>:<seed>|<score>|<timeBonus>|<frame>|
//	<gameTicks>|<modeTicks>|<pillCount>|<combo>|<cascadeTicks>|
//	<destroyTicks>|<counters>|<pillSequence>|<grid>
//
// Integers are base 36. The pill is "-" when nothing is falling, otherwise
// "r,c,r,c". Counters are "<move><n>" pairs joined by commas. The grid comes
// last because it spans several lines. NextPill is not stored; it follows
// from the sequence and the pill count.
func EncodeGameState(st engine.GameState) (string, error) {
	seq, err := EncodePillSequence(st.PillSequence)
	if err != nil {
		return "", err
	}
	grid, err := EncodeGrid(st.Grid)
	if err != nil {
		return "", err
	}
	counters, err := encodeCounters(st.MovingCounters)
	if err != nil {
		return "", err
	}

	fields := []string{
		EncodeInt(int(st.Mode)),
		EncodeInt(int(st.Phase)),
		encodePill(st.Pill),
		EncodeInt(len(st.Seed)) + ":" + st.Seed,
		EncodeInt(st.Score),
		EncodeInt(st.TimeBonus),
		EncodeInt(st.Frame),
		EncodeInt(st.GameTicks),
		EncodeInt(st.ModeTicks),
		EncodeInt(st.PillCount),
		EncodeInt(st.ComboLineCount),
		EncodeInt(st.CascadeTicks),
		EncodeInt(st.DestroyTicks),
		counters,
		seq,
		grid,
	}
	return string(statePrefix) + strings.Join(fields, string(fieldSep)), nil
}

// DecodeGameState is the inverse of EncodeGameState.
func DecodeGameState(s string) (engine.GameState, error) {
	in := strings.TrimSpace(s)
	if len(in) == 0 || in[0] != statePrefix {
		return engine.GameState{}, decodeErr(stateCodec, s, "missing 's' prefix")
	}
	r := &fieldReader{src: s, rest: in[1:]}
	var st engine.GameState

	mode := r.num("mode")
	phase := r.num("phase")
	st.Mode = engine.Mode(mode)
	st.Phase = engine.Phase(phase)
	if r.err == nil && (mode < 0 || !st.Mode.Valid() || phase < 0 || !st.Phase.Valid()) {
		r.fail("unknown mode %d or phase %d", mode, phase)
	}

	st.Pill = r.pill()
	st.Seed = r.seed()
	st.Score = r.num("score")
	st.TimeBonus = r.num("time bonus")
	st.Frame = r.num("frame")
	st.GameTicks = r.num("game ticks")
	st.ModeTicks = r.num("mode ticks")
	st.PillCount = r.num("pill count")
	st.ComboLineCount = r.num("combo")
	st.CascadeTicks = r.num("cascade ticks")
	st.DestroyTicks = r.num("destroy ticks")
	st.MovingCounters = r.counters()

	seqStr := r.field()
	if r.err != nil {
		return engine.GameState{}, r.err
	}
	seq, err := DecodePillSequence(seqStr)
	if err != nil {
		return engine.GameState{}, decodeErr(stateCodec, s, "pill sequence: %v", err)
	}
	st.PillSequence = seq

	grid, err := DecodeGrid(r.rest)
	if err != nil {
		return engine.GameState{}, decodeErr(stateCodec, s, "grid: %v", err)
	}
	st.Grid = grid
	if st.Pill != nil {
		for _, loc := range st.Pill {
			if !grid.InBounds(loc) {
				return engine.GameState{}, decodeErr(stateCodec, s, "pill %s outside grid", loc)
			}
		}
	}

	st.NextPill = engine.DeriveNextPill(st.PillSequence, st.PillCount)
	return st, nil
}

func encodePill(p *[2]engine.Location) string {
	if p == nil {
		return "-"
	}
	return strings.Join([]string{
		EncodeInt(p[0].Row), EncodeInt(p[0].Col),
		EncodeInt(p[1].Row), EncodeInt(p[1].Col),
	}, ",")
}

func encodeCounters(counters map[engine.MoveInput]int) (string, error) {
	var parts []string
	for _, in := range engine.MoveInputs {
		n, ok := counters[in]
		if !ok {
			continue
		}
		ch, err := EncodeMoveInput(in)
		if err != nil {
			return "", err
		}
		parts = append(parts, string(ch)+EncodeInt(n))
	}
	return strings.Join(parts, ","), nil
}

// fieldReader walks the '|' separated state fields. The first error sticks;
// later reads return zero values.
type fieldReader struct {
	src  string
	rest string
	err  error
}

func (r *fieldReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = decodeErr(stateCodec, r.src, format, args...)
	}
}

func (r *fieldReader) field() string {
	if r.err != nil {
		return ""
	}
	i := strings.IndexByte(r.rest, fieldSep)
	if i < 0 {
		r.fail("truncated")
		return ""
	}
	f := r.rest[:i]
	r.rest = r.rest[i+1:]
	return f
}

func (r *fieldReader) num(name string) int {
	f := r.field()
	if r.err != nil {
		return 0
	}
	n, err := DecodeInt(f)
	if err != nil {
		r.fail("%s: %q is not base 36", name, f)
		return 0
	}
	return n
}

func (r *fieldReader) pill() *[2]engine.Location {
	f := r.field()
	if r.err != nil || f == "-" {
		return nil
	}
	parts := strings.Split(f, ",")
	if len(parts) != 4 {
		r.fail("pill: want 4 coordinates, got %d", len(parts))
		return nil
	}
	var v [4]int
	for i, p := range parts {
		n, err := DecodeInt(p)
		if err != nil {
			r.fail("pill: %q is not base 36", p)
			return nil
		}
		v[i] = n
	}
	return &[2]engine.Location{engine.Loc(v[0], v[1]), engine.Loc(v[2], v[3])}
}

func (r *fieldReader) seed() string {
	if r.err != nil {
		return ""
	}
	colon := strings.IndexByte(r.rest, ':')
	if colon < 0 {
		r.fail("seed: missing length")
		return ""
	}
	n, err := DecodeInt(r.rest[:colon])
	if err != nil || n < 0 {
		r.fail("seed: bad length %q", r.rest[:colon])
		return ""
	}
	body := r.rest[colon+1:]
	if len(body) < n+1 || body[n] != fieldSep {
		r.fail("seed: length %d does not match", n)
		return ""
	}
	r.rest = body[n+1:]
	return body[:n]
}

func (r *fieldReader) counters() map[engine.MoveInput]int {
	f := r.field()
	out := map[engine.MoveInput]int{}
	if r.err != nil || f == "" {
		return out
	}
	for _, part := range strings.Split(f, ",") {
		if len(part) < 2 {
			r.fail("counters: bad entry %q", part)
			return out
		}
		in, err := DecodeMoveInput(part[0])
		if err != nil {
			r.fail("counters: unknown input %q", part[0])
			return out
		}
		n, err := DecodeInt(part[1:])
		if err != nil {
			r.fail("counters: %s", strconv.Quote(part))
			return out
		}
		out[in] = n
	}
	return out
}
