// Package dario adapts the pill puzzle engine to the platform's game
// interface: it maps actions to key events, runs the mode machine effects,
// and draws the bottle and HUD.
package dario

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-dario/internal/config"
	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
	"github.com/vovakirdan/tui-dario/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeMarathon Mode = "marathon"
)

// levelClearTicks is how long the level cleared banner stays up in marathon.
const levelClearTicks = 90

// Observer is told about every game the adapter starts and every tick it
// simulates. Replay recorders and spectator feeds implement it.
type Observer interface {
	// Started is called with the options of each new engine game.
	Started(opts engine.Options)
	// Ticked is called after the mode events in control were applied and
	// the engine ticked with events.
	Ticked(control []engine.Event, events []engine.MoveInputEvent, st engine.GameState)
}

// Package-level configuration used by games created through the registry.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultDarioConfig()
)

// SetConfig sets the configuration for games created after the call.
func SetConfig(cfg config.DarioConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

func currentConfig() config.DarioConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// Game implements registry.Game on top of engine.Game.
type Game struct {
	mode       Mode
	cfg        config.DarioConfig
	configured bool
	observers  []Observer

	eng  *engine.Game
	keys *keyState

	seed       string
	restarts   int
	startLevel int
	cleared    int // Levels cleared in marathon
	carried    int // Score from cleared marathon levels
	clearTicks int
}

// New creates a single level game.
func New() *Game {
	return &Game{mode: ModeSingle}
}

// NewMarathon creates a game that moves to the next level on every win.
func NewMarathon() *Game {
	return &Game{mode: ModeMarathon}
}

func init() {
	registry.Register("dario", func() registry.Game {
		return New()
	})
	registry.Register("dario_marathon", func() registry.Game {
		return NewMarathon()
	})
}

// Configure overrides the package configuration for this game. It takes
// effect on the next Reset.
func (g *Game) Configure(cfg config.DarioConfig) {
	g.cfg = cfg
	g.configured = true
}

// Observe registers an observer. Observers added before Reset see the first
// game start.
func (g *Game) Observe(o Observer) {
	g.observers = append(g.observers, o)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMarathon {
		return "dario_marathon"
	}
	return "dario"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMarathon {
		return "Dario (Marathon)"
	}
	return "Dario"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.configured {
		g.cfg = currentConfig()
	}
	g.seed = rc.Seed
	if g.seed == "" {
		g.seed = "dario"
	}
	g.restarts = 0
	g.begin()
}

// begin starts the first level of a run.
func (g *Game) begin() {
	g.cleared = 0
	g.carried = 0
	g.clearTicks = 0

	opts := g.cfg.EngineOptions(g.levelSeed())
	g.startLevel = opts.Level
	g.start(opts)
}

// start builds a new engine game and tells observers about it.
func (g *Game) start(opts engine.Options) {
	eng, err := engine.NewWithIntervals(opts, g.cfg.RepeatIntervals())
	if err != nil {
		// The loader validates configs; this only triggers for configs
		// built in code.
		fallback := engine.DefaultOptions()
		fallback.InitialSeed = opts.InitialSeed
		opts = fallback
		eng, _ = engine.NewWithIntervals(opts, g.cfg.RepeatIntervals())
	}
	g.eng = eng
	g.keys = newKeyState(g.cfg.Input.ReleaseTicks)
	for _, o := range g.observers {
		o.Started(eng.Options())
	}
}

// levelSeed derives the engine seed for the current restart and level.
func (g *Game) levelSeed() string {
	seed := g.seed
	if g.restarts > 0 {
		seed = fmt.Sprintf("%s#%d", seed, g.restarts)
	}
	if g.cleared > 0 {
		seed = fmt.Sprintf("%s/%d", seed, g.cleared)
	}
	return seed
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.over() {
		g.restarts++
		g.begin()
		return core.StepResult{State: g.State()}
	}

	if g.mode == ModeMarathon && g.eng.Mode() == engine.ModeWon {
		g.clearTicks++
		if g.clearTicks >= levelClearTicks {
			g.advance()
		}
		return core.StepResult{State: g.State()}
	}

	if g.over() {
		return core.StepResult{State: g.State()}
	}

	var control []engine.Event
	var events []engine.MoveInputEvent
	if in.Has(core.ActionPause) {
		ev := engine.EventPause
		if g.eng.Mode() == engine.ModePaused {
			ev = engine.EventResume
		}
		if effects, err := g.eng.Apply(ev); err == nil {
			control = append(control, ev)
			if hasEffect(effects, engine.EffectResume) {
				// Keys pressed before the pause are gone by now.
				events = g.keys.releaseAll()
			}
		}
	}

	if g.eng.Mode() != engine.ModePaused {
		events = append(events, g.keys.frame(in)...)
	}
	g.eng.Tick(events)

	if len(g.observers) > 0 {
		st := g.eng.State()
		for _, o := range g.observers {
			o.Ticked(control, events, st)
		}
	}

	return core.StepResult{State: g.State()}
}

// advance starts the next marathon level, carrying the score over.
func (g *Game) advance() {
	st := g.eng.State()
	g.carried += st.Score + st.TimeBonus
	g.cleared++
	g.clearTicks = 0

	opts := g.cfg.EngineOptions(g.levelSeed())
	opts.Level = min(g.startLevel+g.cleared, engine.MaxLevel)
	opts.BaseSpeed = g.cfg.MarathonBaseSpeed(opts.BaseSpeed, g.cleared)
	g.start(opts)
}

// over reports whether the run has ended.
func (g *Game) over() bool {
	m := g.eng.Mode()
	if g.mode == ModeMarathon && m == engine.ModeWon {
		return false
	}
	return m.IsOver()
}

// State returns the platform-facing state.
func (g *Game) State() core.GameState {
	st := g.eng.State()
	return core.GameState{
		Score:    g.carried + st.Score + st.TimeBonus,
		Level:    g.eng.Options().Level,
		GameOver: g.over(),
		Won:      st.Mode == engine.ModeWon,
		Paused:   st.Mode == engine.ModePaused,
	}
}

// Engine returns a snapshot of the engine state.
func (g *Game) Engine() engine.GameState {
	return g.eng.State()
}

// Options returns the options of the current engine game.
func (g *Game) Options() engine.Options {
	return g.eng.Options()
}

// Cleared returns how many marathon levels have been cleared.
func (g *Game) Cleared() int {
	return g.cleared
}

func hasEffect(effects []engine.Effect, want engine.Effect) bool {
	for _, e := range effects {
		if e == want {
			return true
		}
	}
	return false
}
