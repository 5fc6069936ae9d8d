package engine

// MoveInput is a discrete player command.
type MoveInput uint8

const (
	MoveUp MoveInput = iota // Hard drop
	MoveDown
	MoveLeft
	MoveRight
	MoveRotateCW
	MoveRotateCCW
)

// MoveInputs lists every input in a stable order.
var MoveInputs = []MoveInput{MoveUp, MoveDown, MoveLeft, MoveRight, MoveRotateCW, MoveRotateCCW}

// String returns the string representation of an input.
func (m MoveInput) String() string {
	switch m {
	case MoveUp:
		return "Up"
	case MoveDown:
		return "Down"
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	case MoveRotateCW:
		return "RotateCW"
	case MoveRotateCCW:
		return "RotateCCW"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is a known input.
func (m MoveInput) Valid() bool {
	return m <= MoveRotateCCW
}

// InputEventType says whether a key went down or up.
type InputEventType uint8

const (
	KeyDown InputEventType = iota
	KeyUp
)

// String returns the string representation of an event type.
func (t InputEventType) String() string {
	if t == KeyUp {
		return "KeyUp"
	}
	return "KeyDown"
}

// MoveInputEvent is one raw key transition fed to Tick.
type MoveInputEvent struct {
	Input     MoveInput
	EventType InputEventType
}

// Press is shorthand for a KeyDown event.
func Press(m MoveInput) MoveInputEvent {
	return MoveInputEvent{Input: m, EventType: KeyDown}
}

// Release is shorthand for a KeyUp event.
func Release(m MoveInput) MoveInputEvent {
	return MoveInputEvent{Input: m, EventType: KeyUp}
}
