package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/games/dario"
	"github.com/vovakirdan/tui-dario/internal/games/dario/encoding"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
	"github.com/vovakirdan/tui-dario/internal/platform/tui"
	"github.com/vovakirdan/tui-dario/internal/spectate"
)

var flagWatchRaw bool

var watchCmd = &cobra.Command{
	Use:   "watch <url>",
	Short: "Watch a game published with play --spectate",
	Long: `Connect to a spectator feed and draw every state it sends.

Examples:
  dario watch ws://localhost:8090/ws
  dario watch ws://host:8090/ws --raw > states.txt`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&flagWatchRaw, "raw", false, "Print encoded states separated by blank lines instead of drawing")
}

func runWatch(_ *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, h := 80, 24
	if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		w, h = tw, th
	}
	screen := core.NewScreen(w, h-1)

	draw := func(st engine.GameState) {
		dario.RenderState(screen, st)
		fmt.Print("\x1b[H\x1b[2J" + tui.RenderScreen(screen) + "\n")
	}
	if flagWatchRaw {
		draw = func(st engine.GameState) {
			s, err := encoding.EncodeGameState(st)
			if err != nil {
				logger.Warn("cannot encode state", "error", err)
				return
			}
			fmt.Print(s + "\n\n")
		}
	}

	logger.Info("watching", "url", args[0])
	if err := spectate.Watch(ctx, args[0], logger, draw); err != nil {
		exitf("%v", err)
	}
}
