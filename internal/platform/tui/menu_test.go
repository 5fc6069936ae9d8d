package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dario/internal/config"
	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/games/dario"
	"github.com/vovakirdan/tui-dario/internal/registry"
	"github.com/vovakirdan/tui-dario/internal/storage"
)

func press(t *testing.T, m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		mm, ok := next.(MenuModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = mm
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func newMenu(t *testing.T, store *storage.Store) MenuModel {
	t.Helper()
	return NewMenuModel(store, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, config.DefaultDarioConfig())
}

func TestMenuListsModes(t *testing.T) {
	m := newMenu(t, nil)
	if len(m.items) != len(registry.List()) || len(m.items) < 2 {
		t.Fatalf("items = %+v", m.items)
	}
	view := m.View()
	for _, want := range []string{"D A R I O", "Dario (Marathon)", "Level", "MED"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestMenuSelectMode(t *testing.T) {
	m := press(t, newMenu(t, nil), keyDown, keyEnter)
	if m.Selected() == nil {
		t.Fatal("expected a selection")
	}
	if m.Selected().GameID != "dario_marathon" {
		t.Errorf("selected %q, want dario_marathon", m.Selected().GameID)
	}
}

func TestMenuSettings(t *testing.T) {
	m := newMenu(t, nil)
	levelRow := []tea.KeyMsg{keyDown, keyDown}

	m = press(t, m, levelRow...)
	m = press(t, m, keyRight, keyRight, keyRight, keyLeft)
	m = press(t, m, keyDown, keyRight, keyRight, keyRight)

	s := m.Settings()
	if s.Game.Level != 2 {
		t.Errorf("level = %d, want 2", s.Game.Level)
	}
	if s.Game.Speed != config.SpeedHigh {
		t.Errorf("speed = %q, want hi", s.Game.Speed)
	}

	// Enter on a settings row does not start a game.
	m = press(t, m, keyEnter)
	if m.Selected() != nil {
		t.Error("enter on the speed row should not select")
	}

	m = press(t, m, keyUp, keyLeft, keyLeft, keyLeft)
	if m.Settings().Game.Level != 0 {
		t.Errorf("level should clamp at 0, got %d", m.Settings().Game.Level)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := press(t, newMenu(t, nil), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = press(t, newMenu(t, nil), runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore(storage.ScoreEntry{GameID: "dario", Score: 4321, Level: 5}); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	if !strings.Contains(newMenu(t, store).View(), "best 4321") {
		t.Error("menu should show the best score")
	}
}

func TestApplySettings(t *testing.T) {
	cfg := config.DefaultDarioConfig()
	cfg.Game.Level = 7

	g := dario.New()
	ApplySettings(g, cfg)
	g.Reset(core.RuntimeConfig{Seed: "menu"})
	if g.Options().Level != 7 {
		t.Errorf("level = %d, want 7", g.Options().Level)
	}

	// Games without settings are left alone.
	ApplySettings(&stubGame{}, cfg)
}
