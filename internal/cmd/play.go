package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/debatemebro/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [topic]",
	Short: "Watch a debate in the interactive terminal UI",
	Long: `Launch the debate UI. With a topic the entry box is prefilled;
press enter to start. Navigate phases with the arrow keys, expand
citations with tab and enter, and vote once the judges have scored.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().String("theme", "", "color theme (default, monokai, dracula, nord)")
	_ = viper.BindPFlag("tui.theme", playCmd.Flags().Lookup("theme"))
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs an interactive terminal; use 'debatemebro replay' instead")
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctl, err := rt.controller()
	if err != nil {
		return err
	}

	app := tui.New(ctl, tui.Options{
		Theme:        rt.cfg.TUI.Theme,
		ColumnWidth:  rt.cfg.TUI.ColumnWidth,
		ShowResearch: rt.cfg.TUI.ShowResearch,
		Topic:        strings.Join(args, " "),
		Suggestions:  rt.library().Suggestions(),
		Simulator:    rt.simulator(),
		Logger:       rt.logger,
	})
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
