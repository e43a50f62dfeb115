package report

import (
	"errors"
	"fmt"
)

// ErrModuleNotFound is returned by Results.Get for a module name absent
// from the parsed report.
var ErrModuleNotFound = errors.New("module not found")

// ProtocolError reports an inconsistent module-marker structure: an
// unmatched terminator, a nested module open, a header missing its status
// token, or input ending inside a module. Line is 1-based and 0 when the
// violation is detected at end of input.
type ProtocolError struct {
	Line int
	Msg  string
}

func (e *ProtocolError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("report: %s", e.Msg)
	}
	return fmt.Sprintf("report: line %d: %s", e.Line, e.Msg)
}

// MalformedTableError reports a non-empty tabular module body that is not a
// consistent tab-separated table. Row is the 1-based data row (the header
// is row 0).
type MalformedTableError struct {
	Module string
	Row    int
	Msg    string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("module %q: row %d: %s", e.Module, e.Row, e.Msg)
}

// MalformedKeyValueError reports a key-value module body line without a tab
// separator. Line is 1-based within the module body.
type MalformedKeyValueError struct {
	Module string
	Line   int
	Msg    string
}

func (e *MalformedKeyValueError) Error() string {
	return fmt.Sprintf("module %q: line %d: %s", e.Module, e.Line, e.Msg)
}
