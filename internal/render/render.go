// Package render formats parsed reports for output.
package render

import (
	"io"

	"github.com/lucasnoah/readqc/internal/report"
)

// Formatter renders a parsed report in one output format.
type Formatter interface {
	// Format renders the results to the given writer.
	Format(res *report.Results, w io.Writer) error

	// Name returns the format name (text, json, markdown).
	Name() string
}

// ByName returns the formatter for a format name, or nil for an unknown one.
func ByName(name string) Formatter {
	switch name {
	case "text":
		return &TextFormatter{}
	case "json":
		return &JSONFormatter{}
	case "markdown":
		return &MarkdownFormatter{}
	default:
		return nil
	}
}
