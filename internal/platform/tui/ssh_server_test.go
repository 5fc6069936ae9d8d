package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dario/internal/config"
	"github.com/vovakirdan/tui-dario/internal/core"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func newSession(t *testing.T) SessionModel {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
	return NewSessionModel(nil, cfg, config.DefaultDarioConfig(), nil)
}

func TestSessionStartsGame(t *testing.T) {
	m := newSession(t)
	if !strings.Contains(m.View(), "D A R I O") {
		t.Fatal("session should open on the menu")
	}

	m = sessionUpdate(t, m, keyEnter)
	if m.gameModel == nil {
		t.Fatal("enter should start the selected mode")
	}
	if m.gameModel.game.ID() != "dario" {
		t.Errorf("game = %q", m.gameModel.game.ID())
	}
	if m.View() == "" {
		t.Error("game view should not be empty")
	}

	m = sessionUpdate(t, m, runeKey('q'))
	if !m.quitting || m.View() != "" {
		t.Error("q in a game should end the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := sessionUpdate(t, newSession(t), tea.KeyMsg{Type: tea.KeyTab})
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing its title")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scoreboard != nil || m.quitting {
		t.Fatal("esc should return to the menu")
	}
	if !strings.Contains(m.View(), "D A R I O") {
		t.Error("menu should be shown again")
	}
}

func TestSessionWindowSize(t *testing.T) {
	m := sessionUpdate(t, newSession(t), tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.config.ScreenW != 120 || m.config.ScreenH != 40 {
		t.Errorf("config = %dx%d", m.config.ScreenW, m.config.ScreenH)
	}
}
