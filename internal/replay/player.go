package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-dario/internal/games/dario/encoding"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

const maxLineSize = 1 << 20

// Result is the outcome of playing a replay back.
type Result struct {
	Header  Header
	Games   int
	Ticks   int
	Final   engine.GameState // State after the last tick line
	Options engine.Options   // Options of the game that ticked last
	Footer  *Footer        // nil when the recording was cut short
}

// Verify compares the re-simulated final state with the recorded digest.
func (r *Result) Verify() error {
	if r.Footer == nil {
		return ErrNoFooter
	}
	state, err := encoding.EncodeGameState(r.Final)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if Digest(state) != r.Footer.Digest {
		return fmt.Errorf("%w: replayed %d ticks, recorded %d", ErrDigestMismatch, r.Ticks, r.Footer.Ticks)
	}
	return nil
}

// PlayFile plays back the replay at path.
func PlayFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()
	return Play(f)
}

// Play re-simulates a replay from r. A file without an end record still
// plays; Result.Footer is nil then.
func Play(r io.Reader) (*Result, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		return nil, fmt.Errorf("%w: empty file", ErrBadHeader)
	}
	h, err := validateHeader(sc.Bytes())
	if err != nil {
		return nil, err
	}
	intervals, err := h.Intervals()
	if err != nil {
		return nil, err
	}

	res := &Result{Header: h}
	var game *engine.Game
	line := 1
	for sc.Scan() {
		line++
		var e entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("replay: line %d: %w", line, err)
		}

		switch {
		case e.End != nil:
			res.Footer = e.End
		case e.Start != nil:
			game, err = startGame(e.Start, intervals)
			if err != nil {
				return nil, fmt.Errorf("replay: line %d: %w", line, err)
			}
			res.Games++
		default:
			if game == nil {
				return nil, fmt.Errorf("replay: line %d: tick before any game started", line)
			}
			if err := tick(game, e); err != nil {
				return nil, fmt.Errorf("replay: line %d: %w", line, err)
			}
			res.Ticks++
			res.Final = game.State()
			res.Options = game.Options()
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("replay: %w", err)
	}

	if res.Ticks == 0 && game != nil {
		res.Final = game.State()
		res.Options = game.Options()
	}
	return res, nil
}

func startGame(s *Start, intervals engine.RepeatIntervals) (*engine.Game, error) {
	opts, err := encoding.DecodeOptions(s.Options)
	if err != nil {
		return nil, err
	}
	opts.InitialSeed = s.Seed
	return engine.NewWithIntervals(opts, intervals)
}

func tick(g *engine.Game, e entry) error {
	for _, name := range e.Control {
		ev, err := engine.ParseEvent(name)
		if err != nil {
			return err
		}
		// Recorded events were accepted when they were recorded.
		if _, err := g.Apply(ev); err != nil {
			return err
		}
	}
	events, err := encoding.DecodeMoveQueue(e.Moves)
	if err != nil {
		return err
	}
	g.Tick(events)
	return nil
}
