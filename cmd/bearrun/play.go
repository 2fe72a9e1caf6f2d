package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bear-run/internal/audio"
	"github.com/vovakirdan/bear-run/internal/core"
	"github.com/vovakirdan/bear-run/internal/platform/tui"
	"github.com/vovakirdan/bear-run/internal/storage"
)

var flagMuted bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Bear Run in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W  - Start, jump, or retry after a crash
  M           - Mute or unmute sound
  Tab         - Show the best runs of this session
  ?           - More help
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower start, fewer logs
  normal - Default pacing
  hard   - Faster start, tall logs from the first point
  fixed  - No speed-up, the world stays at base speed

Examples:
  bearrun play
  bearrun play --difficulty easy
  bearrun play --seed 42 --mute
  bearrun play --config ./my-bear.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMuted, "mute", false, "Start with sound muted")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("bearrun", true)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ledger, err := storage.OpenLedger("bearrun-play")
	if err != nil {
		logger.Warn("could not open run ledger", "error", err)
		// Continue without a leaderboard
		ledger = nil
	}
	defer func() {
		if ledger != nil {
			ledger.Close()
		}
	}()

	sound := audio.New(audio.Options{Muted: flagMuted, Logger: logger})
	defer sound.Close()

	player := os.Getenv("USER")
	runErr := tui.Run(tui.Options{
		Game: gameCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Sound:  sound,
		Ledger: ledger,
		Player: player,
		Logger: logger,
	})
	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
