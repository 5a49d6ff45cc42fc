package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/debatemebro/internal/debate"
)

// Config represents the complete debatemebro configuration
type Config struct {
	Pacing   PacingConfig   `mapstructure:"pacing"`
	Research ResearchConfig `mapstructure:"research"`
	Content  ContentConfig  `mapstructure:"content"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Export   ExportConfig   `mapstructure:"export"`
}

// PacingConfig controls how fast the debate is staged
type PacingConfig struct {
	// RevealTickMs is the interval between reveal growth steps (default: 8)
	RevealTickMs int `mapstructure:"reveal_tick_ms"`
	// RunesPerTick is how many characters each step reveals (default: 3)
	RunesPerTick int `mapstructure:"runes_per_tick"`
	// SettleMs is the pause after both sides finish research (default: 800)
	SettleMs int `mapstructure:"settle_ms"`
	// TurnGapMs is the pause after each completed turn (default: 600)
	TurnGapMs int `mapstructure:"turn_gap_ms"`
	// TransitionMs is the delay of a direct phase transition (default: 1000)
	TransitionMs int `mapstructure:"transition_ms"`
	// EvaluationDwellMs is the time spent in an evaluation phase (default: 2500)
	EvaluationDwellMs int `mapstructure:"evaluation_dwell_ms"`
}

// ResearchConfig controls the research simulator
type ResearchConfig struct {
	// QueryIntervalMs is the delay between surfaced queries per side (default: 700)
	QueryIntervalMs int `mapstructure:"query_interval_ms"`
	// FinishDelayMs is the pause after a side's last query before it reports done (default: 500)
	FinishDelayMs int `mapstructure:"finish_delay_ms"`
	// TimeoutSeconds fails the session if research has not finished (0 = disabled, default: 60)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// ContentConfig controls where debate plans come from
type ContentConfig struct {
	// PlanFile is a YAML plan file. Empty uses the built-in demo plan.
	PlanFile string `mapstructure:"plan_file"`
	// Watch reloads PlanFile on change; the next session uses the new plan.
	Watch bool `mapstructure:"watch"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "monokai", "dracula", "nord"
	Theme string `mapstructure:"theme"`
	// ColumnWidth is the width of each side's column; 0 splits the terminal evenly
	ColumnWidth int `mapstructure:"column_width"`
	// ShowResearch shows the research query panel (default: true)
	ShowResearch bool `mapstructure:"show_research"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled writes a JSON debug log (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: debug, info, warn, error (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where the log file is written (default: the config directory)
	Dir string `mapstructure:"dir"`
}

// ExportConfig controls transcript export
type ExportConfig struct {
	// Format is the default export format: json, yaml, markdown (default: "markdown")
	Format string `mapstructure:"format"`
	// Phases is a glob selecting which phases to export (default: "*")
	Phases string `mapstructure:"phases"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	p := debate.DefaultPacing()
	return &Config{
		Pacing: PacingConfig{
			RevealTickMs:      int(p.RevealTick / time.Millisecond),
			RunesPerTick:      p.RunesPerTick,
			SettleMs:          int(p.SettleDelay / time.Millisecond),
			TurnGapMs:         int(p.TurnGap / time.Millisecond),
			TransitionMs:      int(p.TransitionDelay / time.Millisecond),
			EvaluationDwellMs: int(p.EvaluationDwell / time.Millisecond),
		},
		Research: ResearchConfig{
			QueryIntervalMs: 700,
			FinishDelayMs:   500,
			TimeoutSeconds:  int(p.ResearchTimeout / time.Second),
		},
		Content: ContentConfig{},
		TUI: TUIConfig{
			Theme:        "default",
			ShowResearch: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Export: ExportConfig{
			Format: "markdown",
			Phases: "*",
		},
	}
}

// DebatePacing converts the pacing and research settings to debate.Pacing
func (c *Config) DebatePacing() debate.Pacing {
	return debate.Pacing{
		RevealTick:      time.Duration(c.Pacing.RevealTickMs) * time.Millisecond,
		RunesPerTick:    c.Pacing.RunesPerTick,
		SettleDelay:     time.Duration(c.Pacing.SettleMs) * time.Millisecond,
		TurnGap:         time.Duration(c.Pacing.TurnGapMs) * time.Millisecond,
		TransitionDelay: time.Duration(c.Pacing.TransitionMs) * time.Millisecond,
		EvaluationDwell: time.Duration(c.Pacing.EvaluationDwellMs) * time.Millisecond,
		ResearchTimeout: c.Research.Timeout(),
	}
}

// QueryInterval returns the query interval as a time.Duration
func (c *ResearchConfig) QueryInterval() time.Duration {
	return time.Duration(c.QueryIntervalMs) * time.Millisecond
}

// FinishDelay returns the finish delay as a time.Duration
func (c *ResearchConfig) FinishDelay() time.Duration {
	return time.Duration(c.FinishDelayMs) * time.Millisecond
}

// Timeout returns the research timeout as a time.Duration (0 means disabled)
func (c *ResearchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogDir returns the directory for log files
func (c *LoggingConfig) LogDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return ConfigDir()
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Pacing defaults
	viper.SetDefault("pacing.reveal_tick_ms", defaults.Pacing.RevealTickMs)
	viper.SetDefault("pacing.runes_per_tick", defaults.Pacing.RunesPerTick)
	viper.SetDefault("pacing.settle_ms", defaults.Pacing.SettleMs)
	viper.SetDefault("pacing.turn_gap_ms", defaults.Pacing.TurnGapMs)
	viper.SetDefault("pacing.transition_ms", defaults.Pacing.TransitionMs)
	viper.SetDefault("pacing.evaluation_dwell_ms", defaults.Pacing.EvaluationDwellMs)

	// Research defaults
	viper.SetDefault("research.query_interval_ms", defaults.Research.QueryIntervalMs)
	viper.SetDefault("research.finish_delay_ms", defaults.Research.FinishDelayMs)
	viper.SetDefault("research.timeout_seconds", defaults.Research.TimeoutSeconds)

	// Content defaults
	viper.SetDefault("content.plan_file", defaults.Content.PlanFile)
	viper.SetDefault("content.watch", defaults.Content.Watch)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.column_width", defaults.TUI.ColumnWidth)
	viper.SetDefault("tui.show_research", defaults.TUI.ShowResearch)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Export defaults
	viper.SetDefault("export.format", defaults.Export.Format)
	viper.SetDefault("export.phases", defaults.Export.Phases)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if the
// loaded configuration is invalid
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "debatemebro")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".debatemebro"
	}
	return filepath.Join(home, ".config", "debatemebro")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
