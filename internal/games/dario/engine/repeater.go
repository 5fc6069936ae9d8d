package engine

// RepeatIntervals is the number of ticks a held input waits before it fires
// again.
type RepeatIntervals map[MoveInput]int

// DefaultRepeatIntervals returns the standard auto-repeat timing.
func DefaultRepeatIntervals() RepeatIntervals {
	return RepeatIntervals{
		MoveUp:        24,
		MoveDown:      4,
		MoveLeft:      8,
		MoveRight:     8,
		MoveRotateCW:  12,
		MoveRotateCCW: 12,
	}
}

// WithDefaults returns the intervals with missing or non-positive entries
// replaced by the defaults.
func (r RepeatIntervals) WithDefaults() RepeatIntervals {
	merged := DefaultRepeatIntervals()
	for in, n := range r {
		if n > 0 {
			merged[in] = n
		}
	}
	return merged
}

// InputRepeater turns raw key transitions into discrete moves.
//
// A KeyDown for an input that is not held emits one move immediately and
// starts holding it. While held, the input emits again each time its counter
// reaches the repeat interval, after which the counter restarts at zero.
// KeyUp stops holding without emitting.
type InputRepeater struct {
	intervals RepeatIntervals
	held      map[MoveInput]int
}

// NewInputRepeater creates a repeater. Missing or non-positive intervals fall
// back to the defaults.
func NewInputRepeater(intervals RepeatIntervals) *InputRepeater {
	return &InputRepeater{
		intervals: intervals.WithDefaults(),
		held:      make(map[MoveInput]int),
	}
}

// Tick consumes this tick's events and returns the moves to apply, in order.
func (r *InputRepeater) Tick(events []MoveInputEvent) []MoveInput {
	var moves []MoveInput

	for _, ev := range events {
		if !ev.Input.Valid() {
			continue
		}
		switch ev.EventType {
		case KeyDown:
			if _, held := r.held[ev.Input]; !held {
				moves = append(moves, ev.Input)
				r.held[ev.Input] = 0
			}
		case KeyUp:
			delete(r.held, ev.Input)
		}
	}

	for _, in := range MoveInputs {
		count, held := r.held[in]
		if !held {
			continue
		}
		if count >= r.intervals[in] {
			moves = append(moves, in)
			count = 0
		}
		r.held[in] = count + 1
	}

	return moves
}

// Counters returns a copy of the counters of every held input.
func (r *InputRepeater) Counters() map[MoveInput]int {
	out := make(map[MoveInput]int, len(r.held))
	for in, n := range r.held {
		out[in] = n
	}
	return out
}

// SetCounters replaces the held set. Used when restoring a saved state.
func (r *InputRepeater) SetCounters(counters map[MoveInput]int) {
	r.held = make(map[MoveInput]int, len(counters))
	for in, n := range counters {
		if in.Valid() && n >= 0 {
			r.held[in] = n
		}
	}
}

// Held reports whether an input is currently held.
func (r *InputRepeater) Held(in MoveInput) bool {
	_, ok := r.held[in]
	return ok
}
