// Package validator sanity-checks extracted invoice records before they are
// filed. Rules never block a record; the pipeline logs failures so a reviewer
// knows which invoices deserve a second look.
package validator

import (
	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// Result is the outcome of one rule against one record.
type Result struct {
	RuleKey   string `json:"rule_key"`
	Passed    bool   `json:"passed"`
	FieldPath string `json:"field_path"`
	Expected  string `json:"expected_value"`
	Actual    string `json:"actual_value"`
	Message   string `json:"message"`
}

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	Validate(rec *domain.InvoiceRecord) []Result
	RuleKey() string
	RuleName() string
}
