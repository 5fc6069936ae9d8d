package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dario/internal/config"
	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/platform/tui"
	"github.com/vovakirdan/tui-dario/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode, level and speed from a menu",
	Long: `Start the interactive menu.

Pick a mode with Up/Down and Enter. Move to the Level and Speed rows and
change them with Left/Right. After a game you return to the menu.

Controls:
  Up/Down/j/k      - Navigate
  Left/Right/h/l   - Change level or speed
  Enter/Space      - Play
  Tab              - High scores
  Q                - Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runPlay(cmd, nil)
	},
}

// menuLoop alternates between the menu, the scoreboard and games until the
// user quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig, settings config.DarioConfig) {
	for {
		res, err := tui.RunMenu(store, cfg, settings)
		if err != nil {
			logger.Error("menu failed", "error", err)
			return
		}
		cfg = res.Config
		settings = res.Settings

		switch {
		case res.Quit:
			return

		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("scoreboard failed", "error", err)
			}
			if !back {
				return
			}

		default:
			back, err := playGame(res.GameID, store, cfg, settings)
			if err != nil {
				logger.Error("game failed", "mode", res.GameID, "error", err)
				continue
			}
			if !back {
				return
			}
		}
	}
}
