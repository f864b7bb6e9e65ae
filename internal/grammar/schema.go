package grammar

import "strings"

// Grammar is the top-level YAML structure describing a user grammar.
// Token names are upper-case-initial, rule names lower-case-initial,
// following the usual grammar-authoring convention.
type Grammar struct {
	Name   string            `yaml:"grammar"`
	Start  string            `yaml:"start"`
	Tokens map[string]string `yaml:"tokens"` // token name → literal text
	Rules  []Rule            `yaml:"rules"`
}

// Rule is one named production with ordered alternatives.
type Rule struct {
	Name         string     `yaml:"name"`
	Alternatives [][]string `yaml:"alternatives"`
}

// Rule returns the rule with the given name (nil if not declared).
func (g *Grammar) Rule(name string) *Rule {
	for i := range g.Rules {
		if g.Rules[i].Name == name {
			return &g.Rules[i]
		}
	}
	return nil
}

// IsToken reports whether sym (without suffix) names a declared token.
func (g *Grammar) IsToken(sym string) bool {
	_, ok := g.Tokens[sym]
	return ok
}

// SplitSuffix separates a symbol reference from its repetition suffix.
// "EINS+" → ("EINS", "+"); a bare symbol has the empty suffix.
func SplitSuffix(sym string) (name, suffix string) {
	if n := len(sym); n > 1 {
		switch sym[n-1] {
		case '+', '*', '?':
			return sym[:n-1], sym[n-1:]
		}
	}
	return sym, ""
}

// isRuleRef reports whether a symbol name looks like a rule reference
// (lower-case initial) rather than a token reference.
func isRuleRef(name string) bool {
	if name == "" {
		return false
	}
	return strings.ToLower(name[:1]) == name[:1]
}
