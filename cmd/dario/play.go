package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dario/internal/config"
	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/games/dario"
	"github.com/vovakirdan/tui-dario/internal/platform/tui"
	"github.com/vovakirdan/tui-dario/internal/registry"
	"github.com/vovakirdan/tui-dario/internal/replay"
	"github.com/vovakirdan/tui-dario/internal/spectate"
	"github.com/vovakirdan/tui-dario/internal/storage"
)

var (
	flagLevel      int
	flagSpeed      string
	flagDifficulty string
	flagSpectate   string
	flagRecord     string
)

var errNotObservable = errors.New("this mode cannot be recorded or spectated")

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start playing the given mode. Without a mode the menu opens.

Controls:
  Left/A, Right/D  - Move the pill
  Down/S           - Soft drop
  Up/W/Space       - Hard drop
  X/K, Z/J         - Rotate clockwise / counter-clockwise
  P/Esc            - Pause
  R                - Restart (after game over)
  B                - Back (when paused or over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy    - Two levels below the chosen level
  normal  - The chosen level
  hard    - Four levels above the chosen level

Examples:
  dario play dario
  dario play dario_marathon --level 10 --speed hi
  dario play dario --difficulty hard --seed 1jk
  dario play dario --record ./game.dario.zst
  dario play dario --spectate :8090`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", -1, "Starting level 0-20 (-1 = config)")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: low, med, hi")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Publish the game to websocket viewers on this address")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record a replay to this file")
}

// playSettings loads the config and applies the play flags.
func playSettings() config.DarioConfig {
	settings, err := loadSettings()
	if err != nil {
		exitf("%v", err)
	}
	if flagLevel >= 0 {
		settings.Game.Level = flagLevel
	}
	if flagSpeed != "" {
		p, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			exitf("%v", err)
		}
		config.ApplySpeedPreset(&settings, p)
	}
	if flagDifficulty != "" {
		p, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			exitf("%v", err)
		}
		config.ApplyDifficultyPreset(&settings, p)
	}
	if err := settings.EngineOptions("").Validate(); err != nil {
		exitf("%v", err)
	}
	return settings
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig(settings config.DarioConfig) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = settings.TickRate
	cfg.Seed = flagSeed
	return cfg
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	settings := playSettings()
	cfg := runtimeConfig(settings)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		menuLoop(store, cfg, settings)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		exitf("unknown mode %q\nRun 'dario list' to see the game modes.", gameID)
	}
	if _, err := playGame(gameID, store, cfg, settings); err != nil {
		exitf("running game: %v", err)
	}
}

// playGame runs one game with the spectate and record flags applied.
// It reports whether the user went back to the menu.
func playGame(gameID string, store *storage.Store, cfg core.RuntimeConfig, settings config.DarioConfig) (bool, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return false, err
	}
	tui.ApplySettings(game, settings)

	if flagSpectate != "" || flagRecord != "" {
		observed, ok := game.(*dario.Game)
		if !ok {
			return false, errNotObservable
		}

		if flagSpectate != "" {
			hub := spectate.NewHub(logger.WithPrefix("spectate"))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
					logger.Error("spectator server stopped", "error", err)
				}
			}()
			observed.Observe(hub)
		}

		if flagRecord != "" {
			h, err := replay.NewHeader(gameID, settings.RepeatIntervals())
			if err != nil {
				return false, err
			}
			h.Created = time.Now().UTC().Format(time.RFC3339)
			rec, err := replay.Create(flagRecord, h)
			if err != nil {
				return false, err
			}
			defer func() {
				if err := rec.Close(); err != nil {
					logger.Error("replay not saved", "error", err)
				}
			}()
			observed.Observe(rec)
		}
	}

	return tui.Run(game, store, cfg)
}
