package extract

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// FieldRules holds one vendor's header-field rules. A nil rule leaves the
// field empty.
type FieldRules struct {
	InvoiceNumber FieldRule
	Date          FieldRule
	Total         FieldRule
	JobName       FieldRule
}

// RuleSet is one vendor's complete extraction rule set. Rule sets are built
// once at startup and never mutated.
type RuleSet struct {
	// Vendor is the display name stamped on every record, e.g. "Knife River".
	Vendor string
	// Key is the canonical dispatch key, e.g. "knife_river".
	Key string
	// PerPage selects the assembly topology: true emits one record per page,
	// false aggregates the whole document into a single record. The flag is
	// declared per vendor, never inferred from the pages.
	PerPage bool
	Fields  FieldRules
	// Items is nil for vendors whose layouts carry no line-item blocks.
	Items *ItemWindow
}

// Registry maps vendor keys to rule sets.
type Registry struct {
	rules map[string]RuleSet
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]RuleSet)}
}

// Register adds a rule set under its canonical key. Registering a duplicate
// key panics: vendor tables are static and a collision is a programming
// error.
func (r *Registry) Register(rs RuleSet) {
	if _, ok := r.rules[rs.Key]; ok {
		panic(fmt.Sprintf("extract: duplicate vendor key %q", rs.Key))
	}
	r.rules[rs.Key] = rs
}

// Resolve looks up a vendor key: exact match first, then the normalized
// form. A continued miss fails with domain.ErrUnknownVendor; there is no
// default rule set.
func (r *Registry) Resolve(key string) (RuleSet, error) {
	if rs, ok := r.rules[key]; ok {
		return rs, nil
	}
	if rs, ok := r.rules[NormalizeKey(key)]; ok {
		return rs, nil
	}
	return RuleSet{}, fmt.Errorf("%w: %q", domain.ErrUnknownVendor, key)
}

// Keys returns the registered canonical keys, for diagnostics.
func (r *Registry) Keys() []string {
	out := make([]string, 0, len(r.rules))
	for k := range r.rules {
		out = append(out, k)
	}
	return out
}

// NormalizeKey lowercases a vendor name, strips everything but letters,
// digits and spaces, and collapses whitespace runs to single underscores:
// "Knife River" and "KNIFE  RIVER." both normalize to "knife_river".
func NormalizeKey(s string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(s) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == ' ' {
			b.WriteRune(c)
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}
