// dario is a falling-pill virus puzzle for the terminal.
//
// Usage:
//
//	dario list                 - List game modes
//	dario play [mode]          - Play a mode, or pick one from the menu
//	dario menu                 - Start the interactive menu
//	dario scores <mode>        - Show high scores
//	dario serve                - Start the SSH server
//	dario watch <url>          - Watch a game published with --spectate
//	dario replay <file>        - Re-simulate a recorded game
//	dario encode               - Print the encoded initial state for a seed
//
// Global flags:
//
//	--fps <rate>        - Tick rate (default: config tick_rate)
//	--seed <value>      - Game seed (empty = random based on time)
//	--db <path>         - Database path (default: ~/.dario/scores.db)
//	--config <path>     - Custom config YAML
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dario/internal/config"
	"github.com/vovakirdan/tui-dario/internal/games/dario"
)

var (
	flagFPS      int
	flagSeed     string
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "dario",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dario",
	Short: "Dario - clear the viruses with falling pills",
	Long: `Dario is a falling-pill puzzle played in the terminal. Line up four
or more halves of the same color with a virus to clear it; clear every virus
to win the bottle.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode, level and speed picker
  scores   - View high scores
  serve    - Start SSH server for remote play
  watch    - Watch a published game
  replay   - Re-simulate a replay file
  encode   - Inspect the encoded state of a seed

Examples:
  dario play
  dario play dario_marathon --level 5 --speed hi
  dario play --record ~/game.dario.zst --spectate :8090
  dario watch ws://localhost:8090/ws
  dario serve --ssh :2222`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = config tick_rate)")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "Game seed (empty = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dario/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(encodeCmd)
}

// loadSettings reads the config file and applies the tick rate flag.
func loadSettings() (config.DarioConfig, error) {
	cfg, err := config.LoadDario(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	dario.SetConfig(cfg)
	logger.Debug("config loaded", "level", cfg.Game.Level, "speed", cfg.Game.Speed, "tick_rate", cfg.TickRate)
	return cfg, nil
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
