package render

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/lucasnoah/readqc/internal/report"
)

// MarkdownFormatter renders results as GitHub-flavored markdown, suitable
// for dropping into QC documentation or a pull request.
type MarkdownFormatter struct{}

// Name returns the format name.
func (f *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format renders a status summary table followed by one section per
// structured module.
func (f *MarkdownFormatter) Format(res *report.Results, w io.Writer) error {
	md := markdown.NewMarkdown(w)

	md.H1("FastQC Report")
	md.PlainText("")
	writeSummary(md, res)

	for _, m := range res.Modules() {
		switch m.Kind {
		case report.KindFields:
			writeFields(md, m)
		case report.KindTable:
			writeTable(md, m)
		}
	}

	return md.Build()
}

func writeSummary(md *markdown.Markdown, res *report.Results) {
	rows := make([][]string, 0, res.Len())
	failed := 0
	for _, m := range res.Modules() {
		rows = append(rows, []string{m.Name, string(m.Status)})
		if m.Status == report.Fail {
			failed++
		}
	}
	md.H2("Module Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Module", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	if failed > 0 {
		md.Warningf("%d of %d modules failed.", failed, res.Len())
		md.PlainText("")
	}
}

func writeFields(md *markdown.Markdown, m *report.Module) {
	md.H2(m.Name)
	md.PlainText("")
	rows := make([][]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		rows = append(rows, []string{f.Key, f.Value.String()})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeTable(md *markdown.Markdown, m *report.Module) {
	md.H2(m.Name)
	md.PlainText("")
	if m.Table == nil {
		md.PlainText("No entries.")
		md.PlainText("")
		return
	}
	md.PlainText(strconv.Itoa(len(m.Table.Rows)) + " entries.")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: m.Table.Columns,
		Rows:   m.Table.Rows,
	})
	md.PlainText("")
}
