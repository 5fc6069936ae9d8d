package encoding

import (
	"errors"
	"math/rand"
	"reflect"
	"strconv"
	"testing"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

func allObjects() []engine.GridObject {
	objs := []engine.GridObject{engine.EmptyObject(), engine.DestroyedObject()}
	for _, t := range []engine.ObjectType{
		engine.Virus, engine.PillSegment, engine.PillTop,
		engine.PillBottom, engine.PillLeft, engine.PillRight,
	} {
		for _, c := range engine.Colors {
			objs = append(objs, engine.Obj(t, c))
		}
	}
	return objs
}

func TestGridObjectRoundTrip(t *testing.T) {
	seen := map[byte]bool{}
	for _, obj := range allObjects() {
		ch, err := EncodeGridObject(obj)
		if err != nil {
			t.Fatalf("EncodeGridObject(%s): %v", obj, err)
		}
		if seen[ch] {
			t.Errorf("character %q used twice", ch)
		}
		seen[ch] = true

		got, err := DecodeGridObject(ch)
		if err != nil {
			t.Fatalf("DecodeGridObject(%q): %v", ch, err)
		}
		if got != obj {
			t.Errorf("round trip %s -> %q -> %s", obj, ch, got)
		}
	}
	if len(seen) != 20 {
		t.Errorf("dictionary has %d entries, want 20", len(seen))
	}
}

func TestGridObjectUnknown(t *testing.T) {
	_, err := DecodeGridObject('Z')
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("error = %v, want ErrDecode", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Codec != "grid object" {
		t.Errorf("error = %#v, want *DecodeError for grid object", err)
	}

	if _, err := EncodeGridObject(engine.GridObject{Type: engine.Virus}); !errors.Is(err, ErrEncode) {
		t.Errorf("encoding a colorless virus: error = %v, want ErrEncode", err)
	}
}

func TestGridRoundTrip(t *testing.T) {
	g := MustDecodeGrid(`g4,3:
		XVO
		NYE
		SXK
		DRY`)

	want := [][]engine.GridObject{
		{engine.EmptyObject(), engine.Obj(engine.Virus, engine.Color2), engine.Obj(engine.PillTop, engine.Color1)},
		{engine.Obj(engine.Virus, engine.Color1), engine.DestroyedObject(), engine.Obj(engine.PillBottom, engine.Color3)},
		{engine.Obj(engine.PillSegment, engine.Color2), engine.EmptyObject(), engine.Obj(engine.PillSegment, engine.Color1)},
		{engine.Obj(engine.PillLeft, engine.Color3), engine.Obj(engine.PillRight, engine.Color2), engine.DestroyedObject()},
	}
	for r := range want {
		if got := g.Row(r); !reflect.DeepEqual(got, want[r]) {
			t.Errorf("row %d = %v, want %v", r, got, want[r])
		}
	}

	s, err := EncodeGrid(g)
	if err != nil {
		t.Fatalf("EncodeGrid: %v", err)
	}
	if s != "g4,3:\nXVO\nNYE\nSXK\nDRY" {
		t.Errorf("EncodeGrid = %q", s)
	}
	back, err := DecodeGrid(s)
	if err != nil {
		t.Fatalf("DecodeGrid: %v", err)
	}
	if !back.Equal(g) {
		t.Error("grid did not survive a round trip")
	}
}

func TestLargeGridRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	types := []engine.ObjectType{engine.Virus, engine.PillSegment}

	g := engine.NewGrid(40, 80)
	for r := 0; r < 40; r++ {
		for c := 0; c < 80; c++ {
			obj := engine.Obj(types[rng.Intn(2)], engine.Colors[rng.Intn(3)])
			g = g.Set(engine.Loc(r, c), obj)
		}
	}

	s, err := EncodeGrid(g)
	if err != nil {
		t.Fatalf("EncodeGrid: %v", err)
	}
	back, err := DecodeGrid(s)
	if err != nil {
		t.Fatalf("DecodeGrid: %v", err)
	}
	if !back.Equal(g) {
		t.Error("40x80 grid did not survive a round trip")
	}
}

func TestDecodeGridErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing prefix", "4,3:\nXXX"},
		{"missing colon", "g1,3 XXX"},
		{"bad header", "g1:XXX"},
		{"too few rows", "g2,3:\nXXX"},
		{"short row", "g1,3:\nXX"},
		{"unknown object", "g1,3:\nXZX"},
		{"bad dimension", "g!,3:\nXXX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeGrid(tt.input); !errors.Is(err, ErrDecode) {
				t.Errorf("DecodeGrid(%q) error = %v, want ErrDecode", tt.input, err)
			}
		})
	}
}

func TestPillColorBijection(t *testing.T) {
	seen := map[byte][2]engine.Color{}
	for _, a := range engine.Colors {
		for _, b := range engine.Colors {
			p := [2]engine.Color{a, b}
			ch, err := EncodePillColors(p)
			if err != nil {
				t.Fatalf("EncodePillColors(%v): %v", p, err)
			}
			if prev, dup := seen[ch]; dup {
				t.Errorf("%q used for %v and %v", ch, prev, p)
			}
			seen[ch] = p

			back, err := DecodePillColors(ch)
			if err != nil || back != p {
				t.Errorf("DecodePillColors(%q) = %v, %v; want %v", ch, back, err, p)
			}
		}
	}
	if len(seen) != 9 {
		t.Errorf("%d distinct characters, want 9", len(seen))
	}
	if ch, _ := EncodePillColors([2]engine.Color{engine.Color1, engine.Color1}); ch != '1' {
		t.Errorf("color1/color1 = %q, want '1'", ch)
	}
	if ch, _ := EncodePillColors([2]engine.Color{engine.Color3, engine.Color3}); ch != '9' {
		t.Errorf("color3/color3 = %q, want '9'", ch)
	}
}

func TestPillSequenceRoundTrip(t *testing.T) {
	seq := engine.GeneratePillSequence("sequence")
	s, err := EncodePillSequence(seq)
	if err != nil {
		t.Fatalf("EncodePillSequence: %v", err)
	}
	if len(s) != len(seq) {
		t.Errorf("encoded length = %d, want %d", len(s), len(seq))
	}
	back, err := DecodePillSequence(s)
	if err != nil {
		t.Fatalf("DecodePillSequence: %v", err)
	}
	if !reflect.DeepEqual(back, seq) {
		t.Error("pill sequence did not survive a round trip")
	}

	if _, err := DecodePillSequence("12a"); !errors.Is(err, ErrDecode) {
		t.Errorf("DecodePillSequence(12a) error = %v, want ErrDecode", err)
	}
}

func TestIntCompaction(t *testing.T) {
	for _, n := range []int{0, 1, 35, 36, 999, 1000, 46655, 46656, 123456789} {
		s := EncodeInt(n)
		back, err := DecodeInt(s)
		if err != nil || back != n {
			t.Errorf("DecodeInt(EncodeInt(%d)) = %d, %v", n, back, err)
		}
		if n >= 1000 && len(s) >= len(strconv.Itoa(n)) {
			t.Errorf("EncodeInt(%d) = %q is not shorter than decimal", n, s)
		}
	}
	if _, err := DecodeInt(""); !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeInt(\"\") error = %v, want ErrDecode", err)
	}
	if _, err := DecodeInt("a!"); !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeInt(\"a!\") error = %v, want ErrDecode", err)
	}
}

func TestMoveInputEventRoundTrip(t *testing.T) {
	for _, in := range engine.MoveInputs {
		for _, et := range []engine.InputEventType{engine.KeyDown, engine.KeyUp} {
			ev := engine.MoveInputEvent{Input: in, EventType: et}
			ch, err := EncodeMoveInputEvent(ev)
			if err != nil {
				t.Fatalf("EncodeMoveInputEvent(%v): %v", ev, err)
			}
			back, err := DecodeMoveInputEvent(ch)
			if err != nil || back != ev {
				t.Errorf("round trip %v -> %q -> %v (%v)", ev, ch, back, err)
			}
		}
	}
}

func TestMoveQueue(t *testing.T) {
	events := []engine.MoveInputEvent{
		engine.Press(engine.MoveLeft),
		engine.Release(engine.MoveLeft),
		engine.Press(engine.MoveRotateCCW),
		engine.Press(engine.MoveUp),
	}
	s, err := EncodeMoveQueue(events)
	if err != nil {
		t.Fatalf("EncodeMoveQueue: %v", err)
	}
	if s != "lLwu" {
		t.Errorf("EncodeMoveQueue = %q, want lLwu", s)
	}
	back, err := DecodeMoveQueue(s)
	if err != nil || !reflect.DeepEqual(back, events) {
		t.Errorf("DecodeMoveQueue(%q) = %v, %v", s, back, err)
	}
	if _, err := DecodeMoveQueue("lx"); !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeMoveQueue(lx) error = %v, want ErrDecode", err)
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	opts := engine.Options{Level: 12, BaseSpeed: 15, Width: 8, Height: 16, CascadeSpeed: 10, DestroyTicks: 20}
	s := EncodeOptions(opts)
	if s != "oc,f,8,g,a,k" {
		t.Errorf("EncodeOptions = %q", s)
	}
	back, err := DecodeOptions(s)
	if err != nil || back != opts {
		t.Errorf("DecodeOptions(%q) = %+v, %v", s, back, err)
	}
	if _, err := DecodeOptions("oc,f"); !errors.Is(err, ErrDecode) {
		t.Errorf("short options error = %v, want ErrDecode", err)
	}
}
