package dario

import (
	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// actionMoves maps platform actions to engine inputs, in event order.
var actionMoves = []struct {
	action core.Action
	move   engine.MoveInput
}{
	{core.ActionLeft, engine.MoveLeft},
	{core.ActionRight, engine.MoveRight},
	{core.ActionDown, engine.MoveDown},
	{core.ActionDrop, engine.MoveUp},
	{core.ActionRotateCW, engine.MoveRotateCW},
	{core.ActionRotateCCW, engine.MoveRotateCCW},
}

// keyState turns per-frame actions into key-down/key-up events.
// Terminals only report presses (and auto-repeated presses), so a key counts
// as released once it has been absent for releaseAfter frames.
type keyState struct {
	releaseAfter int
	idle         map[engine.MoveInput]int // frames since the key was last seen
}

func newKeyState(releaseAfter int) *keyState {
	if releaseAfter < 1 {
		releaseAfter = 1
	}
	return &keyState{
		releaseAfter: releaseAfter,
		idle:         make(map[engine.MoveInput]int),
	}
}

// frame returns the events for one frame of input.
func (k *keyState) frame(in core.InputFrame) []engine.MoveInputEvent {
	var events []engine.MoveInputEvent
	for _, am := range actionMoves {
		n, held := k.idle[am.move]
		switch {
		case in.Has(am.action):
			if !held {
				events = append(events, engine.Press(am.move))
			}
			k.idle[am.move] = 0
		case held:
			n++
			if n >= k.releaseAfter {
				events = append(events, engine.Release(am.move))
				delete(k.idle, am.move)
			} else {
				k.idle[am.move] = n
			}
		}
	}
	return events
}

// releaseAll releases every held key.
func (k *keyState) releaseAll() []engine.MoveInputEvent {
	var events []engine.MoveInputEvent
	for _, am := range actionMoves {
		if _, held := k.idle[am.move]; held {
			events = append(events, engine.Release(am.move))
			delete(k.idle, am.move)
		}
	}
	return events
}
