package engine

// GameState is a snapshot of everything the engine knows about a game.
// Snapshots returned by Game.State are independent copies; the Grid inside is
// never mutated afterwards.
type GameState struct {
	Mode  Mode
	Phase Phase
	Grid  Grid
	Pill  *[2]Location // nil when no pill is falling
	Seed  string

	Frame     int
	Score     int
	TimeBonus int

	PillSequence [][2]Color
	PillCount    int

	GameTicks      int
	ModeTicks      int
	ComboLineCount int
	CascadeTicks   int
	DestroyTicks   int

	// MovingCounters holds the repeat counter of each held input only.
	MovingCounters map[MoveInput]int

	NextPill [2]Color
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	out := s
	if s.Pill != nil {
		p := *s.Pill
		out.Pill = &p
	}
	if s.PillSequence != nil {
		out.PillSequence = make([][2]Color, len(s.PillSequence))
		copy(out.PillSequence, s.PillSequence)
	}
	out.MovingCounters = make(map[MoveInput]int, len(s.MovingCounters))
	for in, n := range s.MovingCounters {
		out.MovingCounters[in] = n
	}
	return out
}

// PillColors returns the colors of the falling pill, if any.
func (s GameState) PillColors() ([2]Color, bool) {
	if s.Pill == nil {
		return [2]Color{}, false
	}
	return [2]Color{s.Grid.At(s.Pill[0]).Color, s.Grid.At(s.Pill[1]).Color}, true
}

// Viruses returns how many viruses remain.
func (s GameState) Viruses() int {
	return s.Grid.CountViruses()
}

// DeriveNextPill returns the sequence entry the pill with the given count
// will use. The sequence wraps around.
func DeriveNextPill(seq [][2]Color, pillCount int) [2]Color {
	if len(seq) == 0 {
		return [2]Color{}
	}
	return seq[pillCount%len(seq)]
}
