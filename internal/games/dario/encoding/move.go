package encoding

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// moveChars maps inputs to their lower-case (KeyDown) token. KeyUp uses the
// upper-case form.
var moveChars = map[engine.MoveInput]byte{
	engine.MoveUp:        'u',
	engine.MoveDown:      'd',
	engine.MoveLeft:      'l',
	engine.MoveRight:     'r',
	engine.MoveRotateCW:  'c',
	engine.MoveRotateCCW: 'w',
}

var charMoves = func() map[byte]engine.MoveInput {
	m := make(map[byte]engine.MoveInput, len(moveChars))
	for in, ch := range moveChars {
		m[ch] = in
	}
	return m
}()

// EncodeMoveInput returns the lower-case token of an input.
func EncodeMoveInput(in engine.MoveInput) (byte, error) {
	ch, ok := moveChars[in]
	if !ok {
		return 0, fmt.Errorf("%w: move input %d", ErrEncode, in)
	}
	return ch, nil
}

// DecodeMoveInput parses a token in either case.
func DecodeMoveInput(ch byte) (engine.MoveInput, error) {
	in, ok := charMoves[toLower(ch)]
	if !ok {
		return 0, decodeErr("move", string(ch), "unknown character")
	}
	return in, nil
}

// EncodeMoveInputEvent writes one event as a single character.
func EncodeMoveInputEvent(ev engine.MoveInputEvent) (byte, error) {
	ch, err := EncodeMoveInput(ev.Input)
	if err != nil {
		return 0, err
	}
	if ev.EventType == engine.KeyUp {
		ch = ch - 'a' + 'A'
	}
	return ch, nil
}

// DecodeMoveInputEvent is the inverse of EncodeMoveInputEvent.
func DecodeMoveInputEvent(ch byte) (engine.MoveInputEvent, error) {
	in, err := DecodeMoveInput(ch)
	if err != nil {
		return engine.MoveInputEvent{}, err
	}
	et := engine.KeyDown
	if ch >= 'A' && ch <= 'Z' {
		et = engine.KeyUp
	}
	return engine.MoveInputEvent{Input: in, EventType: et}, nil
}

// EncodeMoveQueue concatenates the tokens of a tick's events.
func EncodeMoveQueue(events []engine.MoveInputEvent) (string, error) {
	var b strings.Builder
	for _, ev := range events {
		ch, err := EncodeMoveInputEvent(ev)
		if err != nil {
			return "", err
		}
		b.WriteByte(ch)
	}
	return b.String(), nil
}

// DecodeMoveQueue is the inverse of EncodeMoveQueue.
func DecodeMoveQueue(s string) ([]engine.MoveInputEvent, error) {
	events := make([]engine.MoveInputEvent, 0, len(s))
	for i := 0; i < len(s); i++ {
		ev, err := DecodeMoveInputEvent(s[i])
		if err != nil {
			return nil, decodeErr("move queue", s, "position %d: unknown character %q", i, s[i])
		}
		events = append(events, ev)
	}
	return events, nil
}

func toLower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch - 'A' + 'a'
	}
	return ch
}
