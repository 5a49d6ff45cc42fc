package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/export"
	"github.com/Iron-Ham/debatemebro/internal/schedule"
)

var exportCmd = &cobra.Command{
	Use:   "export [topic]",
	Short: "Write a debate transcript as json, yaml or markdown",
	Long: `Stage a debate instantly and write its transcript.

Examples:
  debatemebro export --format json
  debatemebro export "universal healthcare" --phases "{opening,closing}" -o debate.md
  debatemebro export --vote pro --format yaml`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "output format: "+strings.Join(export.Formats(), ", "))
	exportCmd.Flags().String("phases", "", "glob selecting phases to include (e.g. \"{opening,closing}\")")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().String("vote", "", "record a vote for a side before exporting")
	_ = viper.BindPFlag("export.format", exportCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("export.phases", exportCmd.Flags().Lookup("phases"))
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	vote, _ := cmd.Flags().GetString("vote")

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	exporter, err := export.NewExporter(rt.cfg.Export.Format)
	if err != nil {
		return err
	}
	filter, err := export.NewPhaseFilter(rt.cfg.Export.Phases)
	if err != nil {
		return err
	}

	clock := schedule.NewManual()
	ctl, err := rt.controller(debate.WithScheduler(clock), debate.WithPacing(debate.Instant()))
	if err != nil {
		return err
	}
	sess, err := runHeadless(cmd.Context(), ctl, instantSimulator(rt), clock, rt.topic(args))
	if err != nil {
		return err
	}
	if vote != "" && !sess.Vote(debate.Side(vote)) {
		return fmt.Errorf("cannot vote for %q", vote)
	}

	transcript := filter.Apply(export.FromSnapshot(sess.Snapshot(), ctl.Catalog()))

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}
	if err := exporter.Export(transcript, w); err != nil {
		return fmt.Errorf("failed to export transcript: %w", err)
	}
	if output != "" {
		rt.logger.Info("transcript exported", "path", output, "format", rt.cfg.Export.Format)
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
	}
	return nil
}
