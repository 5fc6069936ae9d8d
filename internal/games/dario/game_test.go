package dario

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dario/internal/config"
	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
	"github.com/vovakirdan/tui-dario/internal/registry"
)

func newTestGame(t *testing.T, g *Game) *Game {
	t.Helper()
	g.Configure(config.DefaultDarioConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: "seed"})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// forceMode swaps the engine for one restored in the given mode.
func forceMode(t *testing.T, g *Game, m engine.Mode, score, bonus int) {
	t.Helper()
	st := g.eng.State()
	st.Mode = m
	st.Score = score
	st.TimeBonus = bonus
	eng, err := engine.Restore(g.eng.Options(), st)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	g.eng = eng
}

type recorder struct {
	starts  []engine.Options
	ticks   int
	control []engine.Event
	events  []engine.MoveInputEvent
}

func (r *recorder) Started(opts engine.Options) { r.starts = append(r.starts, opts) }

func (r *recorder) Ticked(control []engine.Event, events []engine.MoveInputEvent, _ engine.GameState) {
	r.ticks++
	r.control = append(r.control, control...)
	r.events = append(r.events, events...)
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"dario", "dario_marathon"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}

func TestSetConfig(t *testing.T) {
	t.Cleanup(func() { SetConfig(config.DefaultDarioConfig()) })

	cfg := config.DefaultDarioConfig()
	cfg.Game.Level = 9
	SetConfig(cfg)

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: "seed"})
	if got := g.Options().Level; got != 9 {
		t.Errorf("level = %d, want 9 from the package config", got)
	}

	cfg.Game.Level = 3
	g.Configure(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: "seed"})
	if got := g.Options().Level; got != 3 {
		t.Errorf("level = %d, want 3 from Configure", got)
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, New())
	g2 := newTestGame(t, New())

	for i := 0; i < 300; i++ {
		var in core.InputFrame
		switch i % 40 {
		case 5:
			in = frame(core.ActionLeft)
		case 12:
			in = frame(core.ActionRotateCW)
		case 30:
			in = frame(core.ActionDrop)
		default:
			in = frame()
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Engine(), g2.Engine()
	if !s1.Grid.Equal(s2.Grid) {
		t.Error("grids differ")
	}
	if s1.Score != s2.Score || s1.PillCount != s2.PillCount || s1.Frame != s2.Frame {
		t.Errorf("states differ: %+v vs %+v", g1.State(), g2.State())
	}
	if s1.PillCount < 2 {
		t.Errorf("PillCount = %d, expected hard drops to spawn new pills", s1.PillCount)
	}
}

func TestFirstSteps(t *testing.T) {
	g := newTestGame(t, New())

	g.Step(frame())
	if m := g.eng.Mode(); m != engine.ModePlaying {
		t.Fatalf("mode after first step = %s, want Playing", m)
	}
	g.Step(frame())
	st := g.Engine()
	if st.Pill == nil || st.PillCount != 1 {
		t.Fatalf("pill not spawned: pill=%v count=%d", st.Pill, st.PillCount)
	}
	if gs := g.State(); gs.GameOver || gs.Paused || gs.Level != 0 {
		t.Errorf("unexpected state %+v", gs)
	}
}

func TestMoveLeft(t *testing.T) {
	g := newTestGame(t, New())
	g.Step(frame())
	g.Step(frame())
	start := *g.Engine().Pill

	g.Step(frame(core.ActionLeft))
	got := *g.Engine().Pill
	if got[0].Col != start[0].Col-1 || got[1].Col != start[1].Col-1 {
		t.Errorf("pill = %v, want shifted left from %v", got, start)
	}
}

func TestKeyState(t *testing.T) {
	k := newKeyState(3)
	left := frame(core.ActionLeft)

	if got := k.frame(left); !reflect.DeepEqual(got, []engine.MoveInputEvent{engine.Press(engine.MoveLeft)}) {
		t.Errorf("first press = %v", got)
	}
	if got := k.frame(left); len(got) != 0 {
		t.Errorf("repeated press = %v, want none", got)
	}
	for i := 0; i < 2; i++ {
		if got := k.frame(frame()); len(got) != 0 {
			t.Errorf("idle frame %d = %v, want none", i, got)
		}
	}
	if got := k.frame(frame()); !reflect.DeepEqual(got, []engine.MoveInputEvent{engine.Release(engine.MoveLeft)}) {
		t.Errorf("release = %v", got)
	}

	k.frame(frame(core.ActionDown, core.ActionRotateCCW))
	want := []engine.MoveInputEvent{engine.Release(engine.MoveDown), engine.Release(engine.MoveRotateCCW)}
	if got := k.releaseAll(); !reflect.DeepEqual(got, want) {
		t.Errorf("releaseAll = %v, want %v", got, want)
	}
	if got := k.releaseAll(); len(got) != 0 {
		t.Errorf("second releaseAll = %v, want none", got)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, New())
	rec := &recorder{}
	g.Observe(rec)

	g.Step(frame())
	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	paused := g.Engine().Frame
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionLeft))
	}
	if f := g.Engine().Frame; f != paused {
		t.Errorf("frame advanced while paused: %d -> %d", paused, f)
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resumed")
	}

	want := []engine.Event{engine.EventPause, engine.EventResume}
	if !reflect.DeepEqual(rec.control, want) {
		t.Errorf("control = %v, want %v", rec.control, want)
	}
	if rec.ticks != 13 {
		t.Errorf("ticks = %d, want 13", rec.ticks)
	}
	if len(rec.events) != 0 {
		t.Errorf("events = %v, want none", rec.events)
	}
}

func TestObserverStarted(t *testing.T) {
	g := New()
	rec := &recorder{}
	g.Observe(rec)
	newTestGame(t, g)

	if len(rec.starts) != 1 {
		t.Fatalf("starts = %d, want 1", len(rec.starts))
	}
	if got := rec.starts[0]; got.InitialSeed != "seed" || got.Width != 8 {
		t.Errorf("started with %+v", got)
	}
}

func TestSingleWinAndRestart(t *testing.T) {
	g := newTestGame(t, New())
	forceMode(t, g, engine.ModeWon, 300, 500)

	gs := g.State()
	if !gs.GameOver || !gs.Won || gs.Score != 800 {
		t.Fatalf("state = %+v, want won game over with 800", gs)
	}

	g.Step(frame(core.ActionRestart))
	if g.eng.Mode() != engine.ModeReady {
		t.Errorf("mode after restart = %s, want Ready", g.eng.Mode())
	}
	if seed := g.eng.Options().InitialSeed; seed != "seed#1" {
		t.Errorf("restart seed = %q, want seed#1", seed)
	}
	if g.State().Score != 0 {
		t.Errorf("score after restart = %d", g.State().Score)
	}
}

func TestLostIgnoresInput(t *testing.T) {
	g := newTestGame(t, NewMarathon())
	forceMode(t, g, engine.ModeLost, 10, 0)

	before := g.Engine().Frame
	g.Step(frame(core.ActionLeft))
	if !g.State().GameOver {
		t.Error("expected game over")
	}
	if g.Engine().Frame != before {
		t.Error("lost game kept ticking")
	}
}

func TestMarathonAdvance(t *testing.T) {
	g := newTestGame(t, NewMarathon())
	rec := &recorder{}
	g.Observe(rec)
	forceMode(t, g, engine.ModeWon, 300, 500)

	if g.State().GameOver {
		t.Fatal("marathon win is not game over")
	}
	for i := 0; i < levelClearTicks; i++ {
		g.Step(frame())
	}

	if g.Cleared() != 1 {
		t.Fatalf("cleared = %d, want 1", g.Cleared())
	}
	opts := g.Options()
	if opts.Level != 1 {
		t.Errorf("level = %d, want 1", opts.Level)
	}
	if opts.BaseSpeed != 14 {
		t.Errorf("base speed = %d, want 14", opts.BaseSpeed)
	}
	if opts.InitialSeed != "seed/1" {
		t.Errorf("seed = %q, want seed/1", opts.InitialSeed)
	}
	if got := g.State().Score; got != 800 {
		t.Errorf("carried score = %d, want 800", got)
	}
	if len(rec.starts) != 1 {
		t.Errorf("observer starts = %d, want 1", len(rec.starts))
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, NewMarathon())
	g.Step(frame())
	g.Step(frame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Dario (Marathon) - Level 0", "SCORE", "VIRUS", "NEXT", "CLEARED", "(==)"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "><") {
		t.Errorf("render shows no viruses:\n%s", out)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, New())
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too small overlay:\n%s", screen.String())
	}
}

func TestRenderPaused(t *testing.T) {
	g := newTestGame(t, New())
	g.Step(frame())
	g.Step(frame(core.ActionPause))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Errorf("expected paused overlay:\n%s", screen.String())
	}
}

func TestRenderState(t *testing.T) {
	g := newTestGame(t, New())
	for i := 0; i < 3; i++ {
		g.Step(frame())
	}

	screen := core.NewScreen(80, 24)
	RenderState(screen, g.Engine())
	out := screen.String()
	for _, want := range []string{"Watching - ", "SCORE", "VIRUS", "PILLS", "NEXT", "><"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "CLEARED") {
		t.Error("spectator view has no marathon counter")
	}
}
