package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dario/internal/config"
	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
	"github.com/vovakirdan/tui-dario/internal/registry"
	"github.com/vovakirdan/tui-dario/internal/storage"
)

// Configurable is implemented by games that accept settings chosen in the
// menu.
type Configurable interface {
	Configure(cfg config.DarioConfig)
}

// ApplySettings configures game when it supports it.
func ApplySettings(game registry.Game, cfg config.DarioConfig) {
	if c, ok := game.(Configurable); ok {
		c.Configure(cfg)
	}
}

var speedPresets = []config.SpeedPreset{config.SpeedLow, config.SpeedMed, config.SpeedHigh}

// MenuItem is a selectable game mode.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// MenuModel picks a game mode, the starting level and the speed.
// The cursor walks the game rows and then the level and speed rows.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	level          int
	speed          int // Index into speedPresets
	settings       config.DarioConfig
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu starting from settings.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, settings config.DarioConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	speed := 1
	for i, p := range speedPresets {
		if p == settings.Game.Speed {
			speed = i
		}
	}

	return MenuModel{
		items:     items,
		level:     core.Clamp(settings.Game.Level, 0, engine.MaxLevel),
		speed:     speed,
		settings:  settings,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func (m MenuModel) levelRow() int { return len(m.items) }
func (m MenuModel) speedRow() int { return len(m.items) + 1 }

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < m.speedRow() {
			m.cursor++
		}

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionSelect:
		if m.cursor < len(m.items) {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// adjust changes the value of the setting row under the cursor.
func (m *MenuModel) adjust(delta int) {
	switch m.cursor {
	case m.levelRow():
		m.level = core.Clamp(m.level+delta, 0, engine.MaxLevel)
	case m.speedRow():
		m.speed = core.Clamp(m.speed+delta, 0, len(speedPresets)-1)
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render("D A R I O"), 9, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%s%-18s", cursorMark(i == m.cursor), item.Title)
		if item.Best > 0 {
			line += fmt.Sprintf(" best %d", item.Best)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	level := fmt.Sprintf("%sLevel  < %2d >", cursorMark(m.cursor == m.levelRow()), m.level)
	b.WriteString(centerText(level, m.width))
	b.WriteString("\n")
	speed := fmt.Sprintf("%sSpeed  < %s >", cursorMark(m.cursor == m.speedRow()), strings.ToUpper(string(speedPresets[m.speed])))
	b.WriteString(centerText(speed, m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

func cursorMark(on bool) string {
	if on {
		return "> "
	}
	return "  "
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Settings returns the configuration with the chosen level and speed.
func (m MenuModel) Settings() config.DarioConfig {
	s := m.settings
	s.Game.Level = m.level
	config.ApplySpeedPreset(&s, speedPresets[m.speed])
	return s
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	return centerStyled(text, len(text), width)
}

// centerStyled centers text whose visible width is n.
func centerStyled(text string, n, width int) string {
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Settings        config.DarioConfig
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, settings config.DarioConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg, settings), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg, Settings: settings}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Settings: settings, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), Settings: m.Settings()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
