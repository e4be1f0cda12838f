package vendors

import (
	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

// Builtin returns every built-in vendor rule set.
func Builtin() []extract.RuleSet {
	return []extract.RuleSet{
		KnifeRiver(),
		Farwest(),
		CoreMain(),
		MissoulaLandfill(),
	}
}

// NewRegistry builds a registry preloaded with the built-in rule sets.
func NewRegistry() *extract.Registry {
	reg := extract.NewRegistry()
	for _, rs := range Builtin() {
		reg.Register(rs)
	}
	return reg
}
