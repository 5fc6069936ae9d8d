package config

import (
	_ "embed"
)

//go:embed defaults/dario.yaml
var defaultDarioYAML []byte

// DefaultDarioConfig returns the built-in configuration. It matches the
// embedded defaults/dario.yaml.
func DefaultDarioConfig() DarioConfig {
	return DarioConfig{
		Game: GameConfig{
			Level:        0,
			Speed:        SpeedMed,
			Width:        8,
			Height:       16,
			CascadeSpeed: 10,
			DestroyTicks: 20,
		},
		Speeds: SpeedTable{
			Low:  20,
			Med:  15,
			High: 10,
		},
		Input: InputConfig{
			Repeat: RepeatConfig{
				Up:        24,
				Down:      4,
				Left:      8,
				Right:     8,
				RotateCW:  12,
				RotateCCW: 12,
			},
			ReleaseTicks: 6,
		},
		TickRate: 60,
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Marathon: MarathonConfig{
				Enabled:      true,
				SpeedStep:    1,
				MinBaseSpeed: 4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDarioYAML
}
