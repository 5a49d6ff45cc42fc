// Package util provides terminal string helpers shared by the UI and the
// headless replay.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// TruncateANSI shortens s to maxWidth display columns, keeping escape
// sequences intact. The ellipsis counts toward the width.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= len(ellipsis) {
		return ellipsis
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, ellipsis)
}

// WrapANSI wraps s to width display columns, breaking between words where
// it can and inside words longer than width. Escape sequences are kept. A
// non-positive width returns s unchanged.
func WrapANSI(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wrap(s, width, "")
}
