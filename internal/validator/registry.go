package validator

import (
	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// Registry maps rule keys to Validator implementations.
type Registry struct {
	validators map[string]Validator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// NewBuiltinRegistry creates a Registry with every built-in rule registered.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, v := range BuiltinRules() {
		r.Register(v)
	}
	return r
}

// Register adds a validator to the registry.
func (r *Registry) Register(v Validator) {
	r.validators[v.RuleKey()] = v
}

// Get returns the validator for a given rule key, or nil if not found.
func (r *Registry) Get(key string) Validator {
	return r.validators[key]
}

// All returns all registered validators.
func (r *Registry) All() []Validator {
	out := make([]Validator, 0, len(r.validators))
	for _, v := range r.validators {
		out = append(out, v)
	}
	return out
}

// Failures runs every registered rule against the record and returns only
// the results that did not pass.
func (r *Registry) Failures(rec *domain.InvoiceRecord) []Result {
	var failed []Result
	for _, v := range r.validators {
		for _, res := range v.Validate(rec) {
			if !res.Passed {
				failed = append(failed, res)
			}
		}
	}
	return failed
}
