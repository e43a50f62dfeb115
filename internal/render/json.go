package render

import (
	"encoding/json"
	"io"

	"github.com/lucasnoah/readqc/internal/report"
)

// JSONFormatter renders results as indented JSON, modules in report order.
type JSONFormatter struct{}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

type jsonModule struct {
	Name   string        `json:"name"`
	Status report.Status `json:"status"`
	Kind   string        `json:"kind"`
	Raw    string        `json:"raw,omitempty"`
	Table  *jsonTable    `json:"table,omitempty"`
	Fields report.Fields `json:"fields,omitempty"`
}

type jsonTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type jsonReport struct {
	Modules []jsonModule `json:"modules"`
}

// Format renders the results. Generic modules carry their raw body; table
// and key-value modules carry only their structured form.
func (f *JSONFormatter) Format(res *report.Results, w io.Writer) error {
	out := jsonReport{Modules: make([]jsonModule, 0, res.Len())}
	for _, m := range res.Modules() {
		jm := jsonModule{
			Name:   m.Name,
			Status: m.Status,
			Kind:   m.Kind.String(),
		}
		switch m.Kind {
		case report.KindTable:
			if m.Table != nil {
				jm.Table = &jsonTable{Columns: m.Table.Columns, Rows: m.Table.Rows}
			}
		case report.KindFields:
			jm.Fields = m.Fields
		default:
			jm.Raw = m.Raw
		}
		out.Modules = append(out.Modules, jm)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
