package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	moduleMarker   = ">>"
	endModuleToken = "END_MODULE"
)

// Parse consumes an entire report and returns its parsed modules.
//
// The parser is a two-state line machine: outside a module it waits for a
// ">>name<TAB>status" header, inside one it accumulates body lines until the
// ">>END_MODULE" terminator, then hands the raw module to its interpreter.
// The format has no nesting and no escaping, so one pending module is enough
// to detect every malformed input. Non-marker lines seen outside a module
// (FastQC's "##FastQC<TAB>version" preamble) flow into the next module's
// body, which is how the version line reaches Basic Statistics.
//
// Any structural or interpreter error aborts the whole parse; no partial
// Results is returned.
func Parse(r io.Reader) (*Results, error) {
	results := newResults()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		pending *RawModule
		body    []string
		lineNum int
	)

	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), " \t\r\n")

		if !strings.HasPrefix(line, moduleMarker) {
			body = append(body, line)
			continue
		}

		rest := strings.TrimPrefix(line, moduleMarker)
		if rest == endModuleToken {
			if pending == nil {
				return nil, &ProtocolError{Line: lineNum, Msg: "terminator without an open module"}
			}
			raw := *pending
			raw.RawBody = strings.Join(body, "\n")
			mod, err := interpreterFor(raw.Name)(raw)
			if err != nil {
				return nil, fmt.Errorf("interpret module %q: %w", raw.Name, err)
			}
			results.add(mod)
			pending = nil
			body = nil
			continue
		}

		if pending != nil {
			return nil, &ProtocolError{Line: lineNum, Msg: fmt.Sprintf("module header inside module %q", pending.Name)}
		}
		name, status, ok := strings.Cut(rest, "\t")
		if !ok {
			return nil, &ProtocolError{Line: lineNum, Msg: fmt.Sprintf("module header %q has no status token", line)}
		}
		pending = &RawModule{Name: name, Status: Status(status)}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	if pending != nil {
		return nil, &ProtocolError{Msg: fmt.Sprintf("input ended inside module %q", pending.Name)}
	}
	return results, nil
}

// ParseFile parses the report at path.
func ParseFile(path string) (*Results, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided report paths are expected
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	res, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}
