package encoding

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

func sampleState(t *testing.T) engine.GameState {
	t.Helper()
	seq, err := DecodePillSequence("123456789")
	if err != nil {
		t.Fatalf("DecodePillSequence: %v", err)
	}
	return engine.GameState{
		Mode:  engine.ModePlaying,
		Phase: engine.PhaseFalling,
		Grid: MustDecodeGrid(`g5,6:
			XXXXXX
			XXDBXX
			XNXVXX
			LRKFXN
			XCSTRX`),
		Pill:           &[2]engine.Location{engine.Loc(1, 2), engine.Loc(1, 3)},
		Seed:           "a|tricky:seed",
		Frame:          40,
		Score:          900,
		TimeBonus:      2000,
		PillSequence:   seq,
		PillCount:      3,
		GameTicks:      34,
		ModeTicks:      10,
		ComboLineCount: 1,
		CascadeTicks:   2,
		DestroyTicks:   0,
		MovingCounters: map[engine.MoveInput]int{engine.MoveLeft: 3},
		NextPill:       seq[3],
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	st := sampleState(t)
	s, err := EncodeGameState(st)
	if err != nil {
		t.Fatalf("EncodeGameState: %v", err)
	}
	if !strings.HasPrefix(s, "s1|1|1,2,1,3|d:a|tricky:seed|p0|1jk|") {
		t.Errorf("unexpected prefix: %q", s)
	}

	back, err := DecodeGameState(s)
	if err != nil {
		t.Fatalf("DecodeGameState: %v", err)
	}
	if !reflect.DeepEqual(back, st) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, st)
	}
}

func TestGameStateRoundTripFromEngine(t *testing.T) {
	g, err := engine.New(engine.Options{Level: 3, InitialSeed: "round-trip"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Tick(nil)
	g.Tick(nil)
	g.Tick([]engine.MoveInputEvent{engine.Press(engine.MoveRight)})

	st := g.State()
	s, err := EncodeGameState(st)
	if err != nil {
		t.Fatalf("EncodeGameState: %v", err)
	}
	back, err := DecodeGameState(s)
	if err != nil {
		t.Fatalf("DecodeGameState: %v", err)
	}
	if !reflect.DeepEqual(back, st) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, st)
	}

	// The decoded state continues exactly like the original.
	restored, err := engine.Restore(g.Options(), back)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	for i := 0; i < 40; i++ {
		g.Tick(nil)
		restored.Tick(nil)
	}
	a, _ := EncodeGameState(g.State())
	b, _ := EncodeGameState(restored.State())
	if a != b {
		t.Errorf("restored game diverged:\n%s\n---\n%s", a, b)
	}
}

func TestGameStateNoPill(t *testing.T) {
	st := sampleState(t)
	st.Pill = nil
	st.MovingCounters = map[engine.MoveInput]int{}

	s, err := EncodeGameState(st)
	if err != nil {
		t.Fatalf("EncodeGameState: %v", err)
	}
	back, err := DecodeGameState(s)
	if err != nil {
		t.Fatalf("DecodeGameState: %v", err)
	}
	if back.Pill != nil {
		t.Errorf("Pill = %v, want nil", *back.Pill)
	}
	if len(back.MovingCounters) != 0 {
		t.Errorf("MovingCounters = %v, want empty", back.MovingCounters)
	}
}

func TestDecodeGameStateErrors(t *testing.T) {
	st := sampleState(t)
	good, err := EncodeGameState(st)
	if err != nil {
		t.Fatalf("EncodeGameState: %v", err)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong prefix", "x" + good[1:]},
		{"truncated", good[:12]},
		{"bad mode", strings.Replace(good, "s1|", "sz|", 1)},
		{"bad seed length", strings.Replace(good, "|d:", "|z:", 1)},
		{"bad grid", good[:len(good)-1] + "Z"},
		{"pill outside grid", strings.Replace(good, "|1,2,1,3|", "|1,2,1,9|", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeGameState(tt.input); !errors.Is(err, ErrDecode) {
				t.Errorf("error = %v, want ErrDecode", err)
			}
		})
	}
}
