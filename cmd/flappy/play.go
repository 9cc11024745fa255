package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var flagTheme string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run right away",
	Long: `Skip the menu and start flapping.

Controls:
  Space/Up/W  - Flap (resumes when paused)
  Mouse click - Flap
  P/Esc       - Pause
  R           - Restart (after game over)
  M/B         - Back to menu (after game over)
  Q/Ctrl+C    - Quit

Examples:
  flappy play
  flappy play --theme night
  flappy play --seed 42 --fps 30
  flappy play --config ./my-flappy.yaml`,
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the main menu",
	Long: `Start in the main menu: Play, Settings, Scores, Quit.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change a setting
  Enter/Space  - Select
  Esc/B        - Back
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Theme for the run (default from config)")
	menuCmd.Flags().StringVar(&flagTheme, "theme", "", "Initially selected theme")
}

func runPlay(_ *cobra.Command, _ []string) error {
	return runLocal(true)
}

func runMenu(_ *cobra.Command, _ []string) error {
	return runLocal(false)
}

// runLocal plays in the current terminal. Logs go to --log-file only,
// the screen belongs to the game.
func runLocal(startInGame bool) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagTheme != "" {
		if _, ok := gameCfg.Theme(flagTheme); !ok {
			return fmt.Errorf("unknown theme %q (run 'flappy themes' to see available themes)", flagTheme)
		}
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	deps := tui.Deps{
		Config: gameCfg,
		Store:  store,
		Mixer:  audio.NewMixer(audio.NewBell(os.Stdout), gameCfg.Audio, logger),
		Logger: logger,
	}

	logger.Info("session started", "theme", flagTheme, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(deps, runtimeConfig(), flagTheme, startInGame); err != nil {
		logger.Error("session failed", "error", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
