package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/debatemebro/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or check DebateMeBro configuration",
	Long: `View or check DebateMeBro configuration.

Without arguments, displays the current configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for invalid values",
	RunE:  runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/debatemebro/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := config.Get()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "pacing:")
	fmt.Fprintf(out, "  reveal_tick_ms: %d\n", cfg.Pacing.RevealTickMs)
	fmt.Fprintf(out, "  runes_per_tick: %d\n", cfg.Pacing.RunesPerTick)
	fmt.Fprintf(out, "  settle_ms: %d\n", cfg.Pacing.SettleMs)
	fmt.Fprintf(out, "  turn_gap_ms: %d\n", cfg.Pacing.TurnGapMs)
	fmt.Fprintf(out, "  transition_ms: %d\n", cfg.Pacing.TransitionMs)
	fmt.Fprintf(out, "  evaluation_dwell_ms: %d\n", cfg.Pacing.EvaluationDwellMs)

	fmt.Fprintln(out, "research:")
	fmt.Fprintf(out, "  query_interval_ms: %d\n", cfg.Research.QueryIntervalMs)
	fmt.Fprintf(out, "  finish_delay_ms: %d\n", cfg.Research.FinishDelayMs)
	fmt.Fprintf(out, "  timeout_seconds: %d\n", cfg.Research.TimeoutSeconds)

	fmt.Fprintln(out, "content:")
	if cfg.Content.PlanFile != "" {
		fmt.Fprintf(out, "  plan_file: %s\n", cfg.Content.PlanFile)
	} else {
		fmt.Fprintln(out, "  plan_file: (built-in demo)")
	}
	fmt.Fprintf(out, "  watch: %v\n", cfg.Content.Watch)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  column_width: %d\n", cfg.TUI.ColumnWidth)
	fmt.Fprintf(out, "  show_research: %v\n", cfg.TUI.ShowResearch)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", cfg.Logging.LogDir())

	fmt.Fprintln(out, "export:")
	fmt.Fprintf(out, "  format: %s\n", cfg.Export.Format)
	fmt.Fprintf(out, "  phases: %s\n", cfg.Export.Phases)

	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configContent := `# DebateMeBro Configuration

# How fast the debate is staged
pacing:
  # Interval between reveal steps and characters shown per step
  reveal_tick_ms: 8
  runes_per_tick: 3
  # Pause after both sides finish research
  settle_ms: 800
  # Pause after each completed turn
  turn_gap_ms: 600
  # Delay of a direct phase change
  transition_ms: 1000
  # Time spent in an evaluation pause between phases
  evaluation_dwell_ms: 2500

# Simulated research
research:
  query_interval_ms: 700
  finish_delay_ms: 500
  # Fail the debate if research has not finished (0 disables)
  timeout_seconds: 60

# Where debate plans come from
content:
  # YAML or JSON plan file; empty uses the built-in demo
  plan_file: ""
  # Reload the plan file when it changes
  watch: false

# Terminal UI
tui:
  # Options: default, monokai, dracula, nord
  theme: default
  # Width of each side's column (0 splits the terminal evenly)
  column_width: 0
  show_research: true

# Debug logging (JSON lines in debatemebro.log)
logging:
  enabled: false
  level: info
  dir: ""

# Transcript export
export:
  # Options: json, yaml, markdown
  format: markdown
  # Glob selecting phases to include
  phases: "*"
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: DEBATEMEBRO_* (e.g., DEBATEMEBRO_TUI_THEME)")
	return nil
}
