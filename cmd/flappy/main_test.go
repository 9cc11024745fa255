package main

import (
	"regexp"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestHelpExamplesUseKnownThemes(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	themeArg := regexp.MustCompile(`--theme ([a-z]+)`)

	cmds := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)
	for _, cmd := range cmds {
		for _, m := range themeArg.FindAllStringSubmatch(cmd.Long, -1) {
			if _, ok := cfg.Theme(m[1]); !ok {
				t.Errorf("%s help uses unknown theme %q", cmd.Name(), m[1])
			}
		}
	}
}
