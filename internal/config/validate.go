package config

import "fmt"

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Config for structural and semantic errors. It returns a
// slice of all validation errors found (empty if valid).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	r := cfg.ReadQC

	if r.FastQC.Binary == "" {
		errs = append(errs, ValidationError{Field: "readqc.fastqc.binary", Message: "is required"})
	}
	if r.FastQC.Threads < 1 {
		errs = append(errs, ValidationError{
			Field:   "readqc.fastqc.threads",
			Message: fmt.Sprintf("must be at least 1, got %d", r.FastQC.Threads),
		})
	}

	for i, status := range r.Gate.FailOn {
		if status == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("readqc.gate.fail_on[%d]", i),
				Message: "status token must not be empty",
			})
		}
	}

	seen := make(map[string]bool)
	for i, name := range r.Gate.RequiredModules {
		if name == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("readqc.gate.required_modules[%d]", i),
				Message: "module name must not be empty",
			})
			continue
		}
		if seen[name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("readqc.gate.required_modules[%d]", i),
				Message: fmt.Sprintf("duplicate module %q", name),
			})
		}
		seen[name] = true
	}

	return errs
}
