package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/debatemebro/internal/errors"
)

// Exporter writes a transcript in one format.
type Exporter interface {
	Export(t *Transcript, w io.Writer) error
	Extension() string
}

// Formats lists the accepted format names.
func Formats() []string {
	return []string{"json", "yaml", "markdown"}
}

// NewExporter returns the exporter for format. "md" and "yml" are accepted
// as aliases.
func NewExporter(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "markdown", "md":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("export format %q (supported: %s): %w",
			format, strings.Join(Formats(), ", "), errors.ErrUnknownFormat)
	}
}

// JSONExporter writes indented JSON.
type JSONExporter struct{}

// Export implements Exporter.
func (e *JSONExporter) Export(t *Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// Extension implements Exporter.
func (e *JSONExporter) Extension() string { return "json" }

// YAMLExporter writes YAML.
type YAMLExporter struct{}

// Export implements Exporter.
func (e *YAMLExporter) Export(t *Transcript, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Extension implements Exporter.
func (e *YAMLExporter) Extension() string { return "yaml" }
