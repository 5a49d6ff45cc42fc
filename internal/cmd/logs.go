package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/debatemebro/internal/config"
	"github.com/Iron-Ham/debatemebro/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the debug log",
	Long: `Show entries from debatemebro.log, written when logging.enabled is set.

Examples:
  debatemebro logs --level warn
  debatemebro logs --session a1b2 --phase opening
  debatemebro logs --since 10m --json`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().String("level", "", "minimum level (debug, info, warn, error)")
	logsCmd.Flags().String("session", "", "session id or prefix")
	logsCmd.Flags().String("phase", "", "phase id")
	logsCmd.Flags().String("side", "", "debate side")
	logsCmd.Flags().String("grep", "", "only messages containing this text")
	logsCmd.Flags().Duration("since", 0, "only entries newer than this (e.g. 10m)")
	logsCmd.Flags().Bool("json", false, "print entries as JSON")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	entries, err := logging.ReadLogFile(cfg.Logging.LogDir())
	if err != nil {
		return err
	}

	var filter logging.LogFilter
	filter.Level, _ = cmd.Flags().GetString("level")
	filter.SessionID, _ = cmd.Flags().GetString("session")
	filter.Phase, _ = cmd.Flags().GetString("phase")
	filter.Side, _ = cmd.Flags().GetString("side")
	filter.MessageContains, _ = cmd.Flags().GetString("grep")
	if since, _ := cmd.Flags().GetDuration("since"); since > 0 {
		filter.Since = time.Now().Add(-since)
	}
	entries = logging.FilterLogs(entries, filter)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	return logging.WriteText(cmd.OutOrStdout(), entries)
}
