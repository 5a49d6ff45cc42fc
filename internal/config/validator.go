package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "pacing.reveal_tick_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidExportFormats returns the list of valid transcript export formats
func ValidExportFormats() []string {
	return []string{"json", "yaml", "markdown"}
}

// ValidThemes returns the built-in TUI theme names.
// These must match styles.BuiltinThemes (kept separate to avoid an import
// from config into the TUI).
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePacing()...)
	errors = append(errors, c.validateResearch()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateExport()...)

	return errors
}

// validatePacing validates the PacingConfig
func (c *Config) validatePacing() []ValidationError {
	var errors []ValidationError

	if c.Pacing.RunesPerTick <= 0 {
		errors = append(errors, ValidationError{
			Field:   "pacing.runes_per_tick",
			Value:   c.Pacing.RunesPerTick,
			Message: "must be positive",
		})
	}

	for _, f := range []struct {
		field string
		value int
	}{
		{"pacing.reveal_tick_ms", c.Pacing.RevealTickMs},
		{"pacing.settle_ms", c.Pacing.SettleMs},
		{"pacing.turn_gap_ms", c.Pacing.TurnGapMs},
		{"pacing.transition_ms", c.Pacing.TransitionMs},
		{"pacing.evaluation_dwell_ms", c.Pacing.EvaluationDwellMs},
	} {
		if f.value < 0 {
			errors = append(errors, ValidationError{
				Field:   f.field,
				Value:   f.value,
				Message: "must be non-negative",
			})
		}
	}

	// A reveal tick above one second makes even short turns crawl
	const maxRevealTickMs = 1000
	if c.Pacing.RevealTickMs > maxRevealTickMs {
		errors = append(errors, ValidationError{
			Field:   "pacing.reveal_tick_ms",
			Value:   c.Pacing.RevealTickMs,
			Message: fmt.Sprintf("exceeds maximum of %d", maxRevealTickMs),
		})
	}

	return errors
}

// validateResearch validates the ResearchConfig
func (c *Config) validateResearch() []ValidationError {
	var errors []ValidationError

	if c.Research.QueryIntervalMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "research.query_interval_ms",
			Value:   c.Research.QueryIntervalMs,
			Message: "must be non-negative",
		})
	}
	if c.Research.FinishDelayMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "research.finish_delay_ms",
			Value:   c.Research.FinishDelayMs,
			Message: "must be non-negative",
		})
	}
	if c.Research.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "research.timeout_seconds",
			Value:   c.Research.TimeoutSeconds,
			Message: "must be non-negative (0 disables the timeout)",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	// Column width validation (0 means split evenly, which is valid)
	const minColumnWidth = 24
	const maxColumnWidth = 200
	if c.TUI.ColumnWidth != 0 && (c.TUI.ColumnWidth < minColumnWidth || c.TUI.ColumnWidth > maxColumnWidth) {
		errors = append(errors, ValidationError{
			Field:   "tui.column_width",
			Value:   c.TUI.ColumnWidth,
			Message: fmt.Sprintf("must be 0 or between %d and %d", minColumnWidth, maxColumnWidth),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// validateExport validates the ExportConfig
func (c *Config) validateExport() []ValidationError {
	var errors []ValidationError

	if c.Export.Format != "" && !slices.Contains(ValidExportFormats(), c.Export.Format) {
		errors = append(errors, ValidationError{
			Field:   "export.format",
			Value:   c.Export.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidExportFormats(), ", ")),
		})
	}
	if c.Export.Phases != "" {
		if _, err := glob.Compile(c.Export.Phases); err != nil {
			errors = append(errors, ValidationError{
				Field:   "export.phases",
				Value:   c.Export.Phases,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}

	return errors
}
