package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dario/internal/games/dario/encoding"
	"github.com/vovakirdan/tui-dario/internal/replay"
)

var flagReplayVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a replay file",
	Long: `Play a replay recorded with 'dario play --record' back through the
engine and print the final state.

With --verify the final state is compared with the digest the recorder
wrote; the command fails when they differ.

Examples:
  dario replay ./game.dario.zst
  dario replay ./game.dario.zst --verify`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayVerify, "verify", false, "Check the final state against the recorded digest")
}

func runReplay(_ *cobra.Command, args []string) {
	res, err := replay.PlayFile(args[0])
	if err != nil {
		exitf("%v", err)
	}

	fmt.Printf("Game:     %s\n", res.Header.Game)
	if res.Header.Created != "" {
		fmt.Printf("Recorded: %s\n", res.Header.Created)
	}
	fmt.Printf("Games:    %d\n", res.Games)
	fmt.Printf("Ticks:    %d\n", res.Ticks)
	fmt.Printf("Level:    %d\n", res.Options.Level)
	fmt.Printf("Seed:     %s\n", res.Options.InitialSeed)
	fmt.Printf("Ended in: %s\n", res.Final.Mode)
	fmt.Printf("Score:    %d (+%d bonus)\n", res.Final.Score, res.Final.TimeBonus)

	state, err := encoding.EncodeGameState(res.Final)
	if err != nil {
		exitf("%v", err)
	}
	fmt.Println()
	fmt.Println(state)

	if !flagReplayVerify {
		return
	}
	if err := res.Verify(); err != nil {
		exitf("%v", err)
	}
	fmt.Println()
	fmt.Println("Verified: final state matches the recording.")
}
