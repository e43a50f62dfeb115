package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucasnoah/readqc/internal/report"
)

// TextFormatter renders results as human-readable aligned text.
type TextFormatter struct{}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders one status line per module plus a per-module detail line
// for structured content.
func (f *TextFormatter) Format(res *report.Results, w io.Writer) error {
	width := 0
	for _, name := range res.Names() {
		if len(name) > width {
			width = len(name)
		}
	}

	for _, m := range res.Modules() {
		if _, err := fmt.Fprintf(w, "[%s] %-*s", strings.ToUpper(string(m.Status)), width, m.Name); err != nil {
			return err
		}
		switch m.Kind {
		case report.KindTable:
			if m.Table == nil {
				fmt.Fprintf(w, "  (no entries)")
			} else {
				fmt.Fprintf(w, "  (%d entries)", len(m.Table.Rows))
			}
		case report.KindFields:
			fmt.Fprintf(w, "  (%d fields)", len(m.Fields))
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
