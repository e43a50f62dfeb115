package report

import (
	"fmt"
	"strings"
)

// Interpreter converts a raw module into its structured form. Interpreters
// are pure: they never mutate the RawModule and have no side effects.
type Interpreter func(RawModule) (*Module, error)

// interpreters maps exact module header names (case-sensitive) to the
// interpreter responsible for them. A lookup miss is not an error: any
// unmapped name falls back to interpretGeneric, so adding behavior for a
// new module name is one entry here and never touches the parser.
var interpreters = map[string]Interpreter{
	"Overrepresented sequences": interpretOverrepresented,
	"Basic Statistics":          interpretBasicStatistics,
}

// interpreterFor returns the interpreter for a module name, defaulting to
// the generic passthrough.
func interpreterFor(name string) Interpreter {
	if in, ok := interpreters[name]; ok {
		return in
	}
	return interpretGeneric
}

// interpretGeneric carries the raw body through unmodified.
func interpretGeneric(raw RawModule) (*Module, error) {
	return &Module{
		Name:   raw.Name,
		Status: raw.Status,
		Kind:   KindGeneric,
		Raw:    raw.RawBody,
	}, nil
}

// interpretOverrepresented parses the body as a header-led tab-separated
// table. An empty body yields a nil Table. One leading '#' is stripped from
// each column name. Every data row must have exactly as many cells as the
// header has columns.
func interpretOverrepresented(raw RawModule) (*Module, error) {
	m := &Module{
		Name:   raw.Name,
		Status: raw.Status,
		Kind:   KindTable,
		Raw:    raw.RawBody,
	}
	if raw.RawBody == "" {
		return m, nil
	}

	lines := strings.Split(raw.RawBody, "\n")
	cols := strings.Split(lines[0], "\t")
	for i, c := range cols {
		cols[i] = strings.TrimPrefix(c, "#")
	}

	table := &Table{Columns: cols, Rows: make([][]string, 0, len(lines)-1)}
	for i, line := range lines[1:] {
		cells := strings.Split(line, "\t")
		if len(cells) != len(cols) {
			return nil, &MalformedTableError{
				Module: raw.Name,
				Row:    i + 1,
				Msg:    fmt.Sprintf("%d cells, header has %d columns", len(cells), len(cols)),
			}
		}
		table.Rows = append(table.Rows, cells)
	}
	m.Table = table
	return m, nil
}

// interpretBasicStatistics parses the body as key/value lines split on the
// first tab. The ##FastQC entry is rehomed under the plain key FastQC
// (appended after the body's own fields), comment-marked keys are dropped,
// and remaining values go through best-effort numeric coercion. A repeated
// key keeps its original position with the last value winning.
func interpretBasicStatistics(raw RawModule) (*Module, error) {
	m := &Module{
		Name:   raw.Name,
		Status: raw.Status,
		Kind:   KindFields,
		Raw:    raw.RawBody,
	}
	if raw.RawBody == "" {
		m.Fields = Fields{}
		return m, nil
	}

	var (
		fields  Fields
		index   = make(map[string]int)
		version string
		haveVer bool
	)
	set := func(key, val string) {
		if i, ok := index[key]; ok {
			fields[i].Value = coerce(val)
			return
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: coerce(val)})
	}

	for i, line := range strings.Split(raw.RawBody, "\n") {
		key, val, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, &MalformedKeyValueError{
				Module: raw.Name,
				Line:   i + 1,
				Msg:    "missing tab separator",
			}
		}
		if key == "##FastQC" {
			version = val
			haveVer = true
		}
		if strings.HasPrefix(key, "#") {
			continue
		}
		set(key, val)
	}
	if haveVer {
		set("FastQC", version)
	}
	m.Fields = fields
	return m, nil
}
