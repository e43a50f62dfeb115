// Package gate evaluates a parsed report against a status policy.
package gate

import (
	"encoding/json"

	"github.com/lucasnoah/readqc/internal/report"
)

// Policy controls which module statuses fail a gate and which modules must
// be present.
type Policy struct {
	// FailOn lists the status tokens that fail the gate. Empty means only
	// "fail" fails.
	FailOn []string
	// RequiredModules must appear in the report; a missing one fails the gate.
	RequiredModules []string
}

// ModuleResult holds the verdict for a single module within a gate run.
type ModuleResult struct {
	Module string        `json:"module"`
	Status report.Status `json:"status"`
	Passed bool          `json:"passed"`
}

// Failure describes why a module failed the gate.
type Failure struct {
	Status report.Status `json:"status,omitempty"`
	Reason string        `json:"reason"`
}

// Result is the structured output of a full gate evaluation.
type Result struct {
	Passed            bool               `json:"passed"`
	Modules           []ModuleResult     `json:"modules"`
	RemainingFailures map[string]Failure `json:"remaining_failures,omitempty"`
}

// JSON returns the gate result as indented JSON.
func (r *Result) JSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Evaluate applies the policy to one parsed report. Every module gets a
// verdict row in report order; missing required modules are recorded as
// failures without a row.
func Evaluate(res *report.Results, p Policy) *Result {
	failOn := make(map[report.Status]bool)
	if len(p.FailOn) == 0 {
		failOn[report.Fail] = true
	}
	for _, s := range p.FailOn {
		failOn[report.Status(s)] = true
	}

	out := &Result{
		Passed:            true,
		RemainingFailures: make(map[string]Failure),
	}

	for _, m := range res.Modules() {
		passed := !failOn[m.Status]
		out.Modules = append(out.Modules, ModuleResult{
			Module: m.Name,
			Status: m.Status,
			Passed: passed,
		})
		if !passed {
			out.Passed = false
			out.RemainingFailures[m.Name] = Failure{
				Status: m.Status,
				Reason: "status " + string(m.Status),
			}
		}
	}

	for _, name := range p.RequiredModules {
		if _, err := res.Get(name); err != nil {
			out.Passed = false
			out.RemainingFailures[name] = Failure{Reason: "module missing from report"}
		}
	}

	return out
}
