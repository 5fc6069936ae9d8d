// Package config provides YAML-based configuration loading and difficulty
// presets for dario.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// DarioConfig contains all configuration for the game.
type DarioConfig struct {
	Game       GameConfig       `yaml:"game"`
	Speeds     SpeedTable       `yaml:"speeds"`
	Input      InputConfig      `yaml:"input"`
	TickRate   int              `yaml:"tick_rate"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GameConfig defines the board and timing of a single game.
type GameConfig struct {
	Level        int         `yaml:"level"`
	Speed        SpeedPreset `yaml:"speed"`
	Width        int         `yaml:"width"`
	Height       int         `yaml:"height"`
	CascadeSpeed int         `yaml:"cascade_speed"`
	DestroyTicks int         `yaml:"destroy_ticks"`
}

// SpeedTable maps speed presets to ticks between gravity steps.
type SpeedTable struct {
	Low  int `yaml:"low"`
	Med  int `yaml:"med"`
	High int `yaml:"hi"`
}

// InputConfig defines key repeat timing.
type InputConfig struct {
	Repeat       RepeatConfig `yaml:"repeat"`
	ReleaseTicks int          `yaml:"release_ticks"` // Idle ticks before a synthesized key-up
}

// RepeatConfig holds per-input auto-repeat intervals in ticks.
type RepeatConfig struct {
	Up        int `yaml:"up"`
	Down      int `yaml:"down"`
	Left      int `yaml:"left"`
	Right     int `yaml:"right"`
	RotateCW  int `yaml:"rotate_cw"`
	RotateCCW int `yaml:"rotate_ccw"`
}

// DifficultyConfig selects the preset and marathon progression.
type DifficultyConfig struct {
	Preset   DifficultyPreset `yaml:"preset"`
	Marathon MarathonConfig   `yaml:"marathon"`
}

// MarathonConfig defines how the game speeds up as levels are cleared.
type MarathonConfig struct {
	Enabled      bool `yaml:"enabled"`
	SpeedStep    int  `yaml:"speed_step"`     // Base speed reduction per cleared level
	MinBaseSpeed int  `yaml:"min_base_speed"` // Fastest allowed base speed
}

// SpeedPreset is a named pill speed.
type SpeedPreset string

const (
	SpeedLow  SpeedPreset = "low"
	SpeedMed  SpeedPreset = "med"
	SpeedHigh SpeedPreset = "hi"
)

// ParseSpeedPreset validates a speed preset name.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	switch p := SpeedPreset(s); p {
	case SpeedLow, SpeedMed, SpeedHigh:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown speed %q (want low, med or hi)", s)
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset validates a difficulty preset name.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// LevelOffset returns how many levels a preset adds to the configured level.
func LevelOffset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return -2
	case DifficultyHard:
		return 4
	default:
		return 0
	}
}

// BaseSpeed returns the gravity interval for a speed preset. Unknown presets
// use the medium speed.
func (c DarioConfig) BaseSpeed(p SpeedPreset) int {
	switch p {
	case SpeedLow:
		return c.Speeds.Low
	case SpeedHigh:
		return c.Speeds.High
	default:
		return c.Speeds.Med
	}
}

// ApplySpeedPreset sets the configured speed.
func ApplySpeedPreset(cfg *DarioConfig, preset SpeedPreset) {
	cfg.Game.Speed = preset
}

// ApplyDifficultyPreset sets the preset used to offset the starting level.
func ApplyDifficultyPreset(cfg *DarioConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
}

// EngineOptions converts the configuration into engine options for a seed.
func (c DarioConfig) EngineOptions(seed string) engine.Options {
	level := c.Game.Level + LevelOffset(c.Difficulty.Preset)
	if level < 0 {
		level = 0
	}
	if level > engine.MaxLevel {
		level = engine.MaxLevel
	}
	return engine.Options{
		Level:        level,
		BaseSpeed:    c.BaseSpeed(c.Game.Speed),
		Width:        c.Game.Width,
		Height:       c.Game.Height,
		InitialSeed:  seed,
		CascadeSpeed: c.Game.CascadeSpeed,
		DestroyTicks: c.Game.DestroyTicks,
	}.WithDefaults()
}

// RepeatIntervals converts the repeat table for the engine.
func (c DarioConfig) RepeatIntervals() engine.RepeatIntervals {
	r := c.Input.Repeat
	return engine.RepeatIntervals{
		engine.MoveUp:        r.Up,
		engine.MoveDown:      r.Down,
		engine.MoveLeft:      r.Left,
		engine.MoveRight:     r.Right,
		engine.MoveRotateCW:  r.RotateCW,
		engine.MoveRotateCCW: r.RotateCCW,
	}
}

// MarathonBaseSpeed returns the base speed after clearing `cleared` levels.
func (c DarioConfig) MarathonBaseSpeed(base, cleared int) int {
	m := c.Difficulty.Marathon
	if !m.Enabled || cleared <= 0 {
		return base
	}
	speed := base - cleared*m.SpeedStep
	floor := m.MinBaseSpeed
	if floor < 1 {
		floor = 1
	}
	if speed < floor {
		speed = floor
	}
	return speed
}
