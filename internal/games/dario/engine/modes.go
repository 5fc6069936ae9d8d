package engine

import "fmt"

// Mode is the top-level lifecycle state of a game.
type Mode uint8

const (
	ModeReady Mode = iota
	ModePlaying
	ModePaused
	ModeWon
	ModeLost
	ModeEnded
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeReady:
		return "Ready"
	case ModePlaying:
		return "Playing"
	case ModePaused:
		return "Paused"
	case ModeWon:
		return "Won"
	case ModeLost:
		return "Lost"
	case ModeEnded:
		return "Ended"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m <= ModeEnded
}

// IsOver reports whether the game has finished.
func (m Mode) IsOver() bool {
	return m == ModeWon || m == ModeLost || m == ModeEnded
}

// Event drives a mode transition.
type Event uint8

const (
	EventPlay Event = iota
	EventPause
	EventResume
	EventWin
	EventLose
	EventReset
	EventEnd
)

// String returns the string representation of an event.
func (e Event) String() string {
	switch e {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventWin:
		return "win"
	case EventLose:
		return "lose"
	case EventReset:
		return "reset"
	case EventEnd:
		return "end"
	default:
		return fmt.Sprintf("Event(%d)", uint8(e))
	}
}

// ParseEvent returns the event with the given name.
func ParseEvent(s string) (Event, error) {
	for ev := EventPlay; ev <= EventEnd; ev++ {
		if ev.String() == s {
			return ev, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, s)
}

// Effect is a side effect requested by a transition. The engine only reports
// effects; the controller executes them.
type Effect uint8

const (
	EffectNotifyMode Effect = iota // Mode changed, tell observers
	EffectRender                   // Redraw now
	EffectResetGame                // Throw the game away and build a new one
	EffectResume                   // Restart the tick loop
)

// String returns the string representation of an effect.
func (e Effect) String() string {
	switch e {
	case EffectNotifyMode:
		return "notify-mode"
	case EffectRender:
		return "render"
	case EffectResetGame:
		return "reset-game"
	case EffectResume:
		return "resume"
	default:
		return fmt.Sprintf("Effect(%d)", uint8(e))
	}
}

type transition struct {
	from []Mode // nil means any mode
	to   Mode
}

var transitions = map[Event]transition{
	EventPlay:   {from: []Mode{ModeReady}, to: ModePlaying},
	EventPause:  {from: []Mode{ModePlaying}, to: ModePaused},
	EventResume: {from: []Mode{ModePaused}, to: ModePlaying},
	EventWin:    {from: []Mode{ModePlaying}, to: ModeWon},
	EventLose:   {from: []Mode{ModePlaying}, to: ModeLost},
	EventReset:  {to: ModeReady},
	EventEnd:    {to: ModeEnded},
}

// Transition computes the next mode for an event together with the effects
// the controller should run. Disallowed events return ErrInvalidTransition
// and leave the mode unchanged.
func Transition(mode Mode, ev Event) (Mode, []Effect, error) {
	t, ok := transitions[ev]
	if !ok {
		return mode, nil, fmt.Errorf("%w: unknown event %s", ErrInvalidTransition, ev)
	}
	if t.from != nil && !containsMode(t.from, mode) {
		return mode, nil, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, mode)
	}

	effects := []Effect{EffectNotifyMode}
	switch ev {
	case EventPause, EventWin, EventLose, EventEnd:
		effects = append(effects, EffectRender)
	case EventResume:
		effects = append(effects, EffectResume)
	case EventReset:
		effects = append(effects, EffectResetGame)
	}
	return t.to, effects, nil
}

func containsMode(modes []Mode, m Mode) bool {
	for _, x := range modes {
		if x == m {
			return true
		}
	}
	return false
}

// Phase is the sub-state of a game while Playing.
type Phase uint8

const (
	PhaseSpawn Phase = iota
	PhaseFalling
	PhaseDestroying
	PhaseCascading
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseSpawn:
		return "Spawn"
	case PhaseFalling:
		return "Falling"
	case PhaseDestroying:
		return "Destroying"
	case PhaseCascading:
		return "Cascading"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	return p <= PhaseCascading
}
