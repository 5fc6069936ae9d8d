package engine

import (
	"errors"
	"fmt"
)

const (
	// maxCombo caps the exponent of the virus score multiplier.
	maxCombo = 5

	// timeBonusTicksPerStep is the number of ticks per time bonus deduction.
	timeBonusTicksPerStep = 60
)

// Game is a single deterministic game. It is not safe for concurrent use;
// snapshots returned by State may be shared freely.
type Game struct {
	opts     Options
	state    GameState
	repeater *InputRepeater
}

// New builds a game in the Ready mode. Zero option fields take their
// defaults.
func New(opts Options) (*Game, error) {
	return NewWithIntervals(opts, nil)
}

// NewWithIntervals is New with custom input repeat intervals.
func NewWithIntervals(opts Options, intervals RepeatIntervals) (*Game, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	seq := GeneratePillSequence(opts.InitialSeed)
	g := &Game{
		opts:     opts,
		repeater: NewInputRepeater(intervals),
		state: GameState{
			Mode:           ModeReady,
			Phase:          PhaseSpawn,
			Grid:           GenerateViruses(opts),
			Seed:           opts.InitialSeed,
			PillSequence:   seq,
			MovingCounters: map[MoveInput]int{},
			NextPill:       DeriveNextPill(seq, 0),
		},
	}
	return g, nil
}

// Restore builds a game that continues from a saved state.
func Restore(opts Options, st GameState) (*Game, error) {
	return RestoreWithIntervals(opts, st, nil)
}

// RestoreWithIntervals is Restore with custom input repeat intervals.
func RestoreWithIntervals(opts Options, st GameState, intervals RepeatIntervals) (*Game, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if st.Grid.Rows() != opts.Height+1 || st.Grid.Cols() != opts.Width {
		return nil, fmt.Errorf("%w: grid is %dx%d, options want %dx%d",
			ErrInvalidState, st.Grid.Rows(), st.Grid.Cols(), opts.Height+1, opts.Width)
	}
	if !st.Mode.Valid() || !st.Phase.Valid() {
		return nil, fmt.Errorf("%w: mode %s phase %s", ErrInvalidState, st.Mode, st.Phase)
	}
	if st.Pill != nil {
		for _, loc := range st.Pill {
			if !st.Grid.At(loc).Type.IsPillHalf() {
				return nil, fmt.Errorf("%w: pill at %s is %s", ErrInvalidState, loc, st.Grid.At(loc))
			}
		}
	}

	st = st.Clone()
	if len(st.PillSequence) == 0 {
		st.PillSequence = GeneratePillSequence(st.Seed)
	}
	st.NextPill = DeriveNextPill(st.PillSequence, st.PillCount)

	g := &Game{
		opts:     opts,
		state:    st,
		repeater: NewInputRepeater(intervals),
	}
	g.repeater.SetCounters(st.MovingCounters)
	g.state.MovingCounters = g.repeater.Counters()
	return g, nil
}

// Options returns the options the game was built with.
func (g *Game) Options() Options {
	return g.opts
}

// State returns a snapshot of the current state.
func (g *Game) State() GameState {
	return g.state.Clone()
}

// Mode returns the current mode.
func (g *Game) Mode() Mode {
	return g.state.Mode
}

// Apply runs a mode transition and returns the effects the controller should
// execute. EffectResetGame is left to the controller: it must build a new Game.
func (g *Game) Apply(ev Event) ([]Effect, error) {
	next, effects, err := Transition(g.state.Mode, ev)
	if err != nil {
		return nil, err
	}
	if next != g.state.Mode {
		g.state.ModeTicks = 0
	}
	g.state.Mode = next
	return effects, nil
}

// Tick advances the game by one logical tick.
func (g *Game) Tick(events []MoveInputEvent) {
	s := &g.state

	switch s.Mode {
	case ModeReady:
		_, _ = g.Apply(EventPlay)
		s.Frame++
		return
	case ModePlaying:
	default:
		return
	}

	moves := g.repeater.Tick(events)

	switch s.Phase {
	case PhaseSpawn:
		err := g.spawn()
		switch {
		case errors.Is(err, errSpawnBlocked):
			_, _ = g.Apply(EventLose)
		case err == nil:
			// Moves pressed on the spawn tick act on the new pill.
			g.steer(moves)
		}
	case PhaseFalling:
		g.fall(moves)
	case PhaseDestroying:
		g.destroy()
	case PhaseCascading:
		g.cascade()
	}

	if s.Mode == ModePlaying && !s.Grid.HasViruses() {
		g.win()
	}

	s.GameTicks++
	s.ModeTicks++
	s.Frame++
	s.MovingCounters = g.repeater.Counters()
}

// spawn puts the next pill of the sequence at the top of the board.
func (g *Game) spawn() error {
	s := &g.state
	at := spawnLocations(g.opts.Width)
	for _, loc := range at {
		if !s.Grid.At(loc).IsEmpty() {
			return errSpawnBlocked
		}
	}

	colors := DeriveNextPill(s.PillSequence, s.PillCount)
	next := s.Grid.clone()
	placePill(next, at, Obj(PillLeft, colors[0]), Obj(PillRight, colors[1]))

	s.Grid = next
	s.Pill = &at
	s.PillCount++
	s.NextPill = DeriveNextPill(s.PillSequence, s.PillCount)
	s.Phase = PhaseFalling
	return nil
}

// fall applies player moves and gravity to the falling pill.
func (g *Game) fall(moves []MoveInput) {
	s := &g.state
	if s.Pill == nil {
		s.Phase = PhaseSpawn
		return
	}
	if g.steer(moves) {
		return
	}

	if s.GameTicks%g.opts.BaseSpeed == 0 {
		next, np, ok := movePill(s.Grid, *s.Pill, Down)
		if !ok {
			g.lock(s.Grid)
			return
		}
		s.Grid = next
		s.Pill = &np
	}
}

// steer applies player moves to the falling pill. It reports whether a hard
// drop locked the pill.
func (g *Game) steer(moves []MoveInput) bool {
	s := &g.state
	grid, pill := s.Grid, *s.Pill
	for _, m := range moves {
		switch m {
		case MoveLeft:
			grid, pill, _ = movePill(grid, pill, Left)
		case MoveRight:
			grid, pill, _ = movePill(grid, pill, Right)
		case MoveDown:
			grid, pill, _ = movePill(grid, pill, Down)
		case MoveRotateCW:
			grid, pill, _ = rotatePill(grid, pill, true)
		case MoveRotateCCW:
			grid, pill, _ = rotatePill(grid, pill, false)
		case MoveUp:
			grid, _ = hardDrop(grid, pill)
			g.lock(grid)
			return true
		}
	}
	s.Grid = grid
	s.Pill = &pill
	return false
}

// lock fixes the pill in place and resolves matches.
func (g *Game) lock(grid Grid) {
	g.state.Grid = grid
	g.state.Pill = nil
	g.resolve()
}

// resolve clears matched lines, or hands control back to spawning when there
// is nothing to clear.
func (g *Game) resolve() {
	s := &g.state
	lines := FindLines(s.Grid, MatchLength)
	if len(lines) == 0 {
		s.ComboLineCount = 0
		s.Phase = PhaseSpawn
		return
	}

	next := s.Grid.clone()
	seen := make(map[Location]bool)
	for i, line := range lines {
		n := len(line)
		s.Score += 10 * n * (n - 3)

		combo := s.ComboLineCount + i
		if combo > maxCombo {
			combo = maxCombo
		}
		for _, loc := range line {
			if seen[loc] {
				continue
			}
			seen[loc] = true
			if s.Grid.At(loc).IsVirus() {
				s.Score += 100 << combo
			}
			next.set(loc, DestroyedObject())
		}
	}

	s.ComboLineCount += len(lines)
	s.Grid = ConvertWidows(next)
	s.DestroyTicks = 0
	s.CascadeTicks = 0
	s.Phase = PhaseDestroying
}

// destroy waits out the destroy animation, then clears Destroyed cells.
func (g *Game) destroy() {
	s := &g.state
	s.DestroyTicks++
	if s.DestroyTicks < g.opts.DestroyTicks {
		return
	}
	s.Grid, _ = s.Grid.ClearDestroyed()
	s.DestroyTicks = 0
	s.CascadeTicks = 0
	s.Phase = PhaseCascading
}

// cascade drops unsupported pieces one row every CascadeSpeed ticks. Once
// nothing moves the board is checked for new lines.
func (g *Game) cascade() {
	s := &g.state
	s.CascadeTicks++
	if s.CascadeTicks%g.opts.CascadeSpeed != 0 {
		return
	}
	next, moved := ApplyGravity(s.Grid)
	if moved {
		s.Grid = next
		return
	}
	s.CascadeTicks = 0
	g.resolve()
}

// win ends the game and awards the time bonus.
func (g *Game) win() {
	s := &g.state
	if _, err := g.Apply(EventWin); err != nil {
		return
	}
	s.TimeBonus = TimeBonus(g.opts.Level, s.GameTicks)
}

// TimeBonus returns the bonus for clearing a level after gameTicks ticks.
func TimeBonus(level, gameTicks int) int {
	bonus := (level+1)*500 - (gameTicks/timeBonusTicksPerStep)*10
	if bonus < 0 {
		return 0
	}
	return bonus
}
