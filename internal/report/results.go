package report

import "fmt"

// Results is the ordered, name-keyed set of modules parsed from one report.
// It is populated once during parsing and read-only afterwards. Each Parse
// call produces an independent Results, so separate reports may be parsed
// concurrently with no coordination.
type Results struct {
	names   []string
	modules map[string]*Module
}

func newResults() *Results {
	return &Results{modules: make(map[string]*Module)}
}

// add inserts a module under its name. A repeated name replaces the module
// in place, keeping the original position.
func (r *Results) add(m *Module) {
	if _, ok := r.modules[m.Name]; !ok {
		r.names = append(r.names, m.Name)
	}
	r.modules[m.Name] = m
}

// Get returns the module with the given name.
func (r *Results) Get(name string) (*Module, error) {
	m, ok := r.modules[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrModuleNotFound)
	}
	return m, nil
}

// Len returns the number of modules.
func (r *Results) Len() int {
	return len(r.names)
}

// Names returns the module names in report order.
func (r *Results) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Modules returns the modules in report order.
func (r *Results) Modules() []*Module {
	out := make([]*Module, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.modules[name])
	}
	return out
}

// Statuses projects every module name to its status.
func (r *Results) Statuses() map[string]Status {
	out := make(map[string]Status, len(r.names))
	for name, m := range r.modules {
		out[name] = m.Status
	}
	return out
}
