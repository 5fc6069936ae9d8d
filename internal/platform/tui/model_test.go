package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/storage"
)

// stubGame records what the model feeds it and reports a settable state.
type stubGame struct {
	resets []core.RuntimeConfig
	inputs []core.InputFrame
	state  core.GameState
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(cfg core.RuntimeConfig) { g.resets = append(g.resets, cfg) }
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func tick(m GameModel) TickMsg {
	return TickMsg{id: m.id}
}

func TestGameModelSeed(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60})
	if m.Init() == nil {
		t.Fatal("Init should start the tick loop")
	}
	if len(g.resets) != 1 || g.resets[0].Seed == "" {
		t.Fatalf("resets = %+v, want one reset with a seed", g.resets)
	}

	g2 := &stubGame{}
	m2 := NewGameModel(g2, nil, core.RuntimeConfig{Seed: "fixed"})
	m2.Init()
	if g2.resets[0].Seed != "fixed" {
		t.Errorf("seed = %q, want fixed", g2.resets[0].Seed)
	}
}

func TestGameModelTick(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60})
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, cmd := update(t, m, tick(m))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	m, _ = update(t, m, tick(m))

	if len(g.inputs) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.inputs))
	}
	if !g.inputs[0].Has(core.ActionLeft) {
		t.Error("first step should see Left")
	}
	if g.inputs[1].Has(core.ActionLeft) {
		t.Error("input should be cleared after a step")
	}

	// A tick of another model is ignored.
	_, cmd = update(t, m, TickMsg{id: m.id + 1})
	if cmd != nil || len(g.inputs) != 2 {
		t.Error("stale tick should not step the game")
	}
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	g := &stubGame{state: core.GameState{Score: 700, Level: 3, GameOver: true}}
	m := NewGameModel(g, store, core.RuntimeConfig{Seed: "abc"})
	m.Init()

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, tick(m))
	}
	g.state = core.GameState{}
	m, _ = update(t, m, tick(m))
	g.state = core.GameState{Score: 300, Level: 1, GameOver: true}
	m, _ = update(t, m, tick(m))
	update(t, m, tick(m))

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("saved %d scores, want 2", len(scores))
	}
	if scores[0].Score != 700 || scores[0].Level != 3 || scores[0].Seed != "abc" {
		t.Errorf("best = %+v", scores[0])
	}
}

func TestGameModelBack(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, core.RuntimeConfig{})
	m.Init()

	m, _ = update(t, m, tick(m))
	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	g.state.Paused = true
	m, _ = update(t, m, tick(m))
	m, _ = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Fatal("back should work while paused")
	}
	if _, cmd := update(t, m, tick(m)); cmd != nil {
		t.Error("ticking should stop after going back")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, core.RuntimeConfig{})
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawText(0, 1, "efgh")

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "efgh"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q should contain %q", out, want)
		}
	}
}
