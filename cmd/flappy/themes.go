package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List all available themes",
	Long:  `Shows the themes defined by the game config.`,
	RunE:  runThemes,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Prints the built-in game config as YAML. Save it to
~/.flappy/configs/flappy.yaml or pass it with --config to customize.

Examples:
  flappy config > ~/.flappy/configs/flappy.yaml`,
	RunE: runConfig,
}

func runThemes(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Available themes:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, t := range cfg.Themes {
		if len(t.Name) > maxNameLen {
			maxNameLen = len(t.Name)
		}
	}

	fmt.Printf("  %-*s  %-10s  %-10s  %s\n", maxNameLen, "Name", "Background", "Pipe", "Bird")
	fmt.Printf("  %-*s  %-10s  %-10s  %s\n", maxNameLen, "----", "----------", "----", "----")

	for _, t := range cfg.Themes {
		name := t.Name
		if name == cfg.DefaultTheme {
			name += "*"
		}
		fmt.Printf("  %-*s  %-10s  %-10s  %s\n", maxNameLen, name, t.Background, t.Pipe, t.Bird)
	}

	fmt.Println()
	fmt.Println("* default. Run 'flappy play --theme <name>' to use a theme.")
	return nil
}

func runConfig(cmd *cobra.Command, _ []string) error {
	_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
	return err
}
