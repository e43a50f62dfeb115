// Package report parses FastQC's fastqc_data.txt report format into typed,
// queryable per-module results.
package report

import (
	"encoding/json"
	"math"
	"strconv"
)

// Status is a module's overall outcome token. FastQC emits pass, warn, and
// fail; any other token is carried through as an opaque status rather than
// rejected.
type Status string

const (
	Pass Status = "pass"
	Warn Status = "warn"
	Fail Status = "fail"
)

// RawModule is one module section of the report before interpretation: its
// header name, status token, and unparsed body text.
type RawModule struct {
	Name    string
	Status  Status
	RawBody string
}

// Kind tags which structured variant a Module carries.
type Kind int

const (
	// KindGeneric is the raw-body passthrough used for any module name
	// without a dedicated interpreter.
	KindGeneric Kind = iota
	// KindTable is a module whose body is an embedded tab-separated table.
	KindTable
	// KindFields is a module whose body is a flat list of key/value pairs.
	KindFields
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindFields:
		return "fields"
	default:
		return "generic"
	}
}

// Module is one interpreted report module. Name and Status always equal
// those of the RawModule it was built from. Raw retains the original body
// text; Table is set only for KindTable (and stays nil for an empty body),
// Fields only for KindFields.
type Module struct {
	Name   string
	Status Status
	Kind   Kind
	Raw    string
	Table  *Table
	Fields Fields
}

// Table is a header-led embedded table. Every row has exactly
// len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Field is a single key/value entry from a key-value module body.
type Field struct {
	Key   string
	Value Value
}

// Fields is an ordered list of key/value entries. Order follows the body's
// line order; the rehomed FastQC version entry comes last.
type Fields []Field

// Get returns the value for key and whether it is present.
func (f Fields) Get(key string) (Value, bool) {
	for _, fl := range f {
		if fl.Key == key {
			return fl.Value, true
		}
	}
	return Value{}, false
}

// MarshalJSON emits the fields as a JSON object in field order.
func (f Fields) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, fl := range f {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(fl.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(fl.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// Value is a coerced field value: an exact integer when coercion succeeded,
// otherwise the original text.
type Value struct {
	Int   int64
	Text  string
	IsInt bool
}

// String renders the value the way it would appear in the report.
func (v Value) String() string {
	if v.IsInt {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Text
}

// MarshalJSON emits a JSON number for integer values and a string otherwise.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsInt {
		return []byte(strconv.FormatInt(v.Int, 10)), nil
	}
	return json.Marshal(v.Text)
}

// coerce applies the best-effort numeric policy: integer parse first, then
// a float parse accepted only when mathematically equal to an integer.
// Anything else stays text; a parse failure is never an error.
func coerce(s string) Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{Int: n, IsInt: true}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return Value{Int: int64(f), IsInt: true}
		}
	}
	return Value{Text: s}
}
