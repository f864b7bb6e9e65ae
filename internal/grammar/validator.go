package grammar

import (
	"fmt"
	"strings"
)

// Validate checks the grammar for:
//   - Required start rule that resolves to a declared rule
//   - Duplicate rule names and duplicate token literals
//   - Naming convention (tokens upper-case-initial, rules lower-case-initial)
//   - Every symbol reference resolving to a declared token or rule
func Validate(g *Grammar) error {
	var errs []string

	if g.Start == "" {
		errs = append(errs, "start rule is required")
	}
	if len(g.Rules) == 0 {
		errs = append(errs, "at least one rule is required")
	}

	for name := range g.Tokens {
		if isRuleRef(name) {
			errs = append(errs, fmt.Sprintf("token %s: token names must start upper-case", name))
		}
		if g.Tokens[name] == "" {
			errs = append(errs, fmt.Sprintf("token %s: literal must not be empty", name))
		}
	}
	literals := make(map[string]string) // literal → token name
	for name, lit := range g.Tokens {
		if prev, ok := literals[lit]; ok && prev != name {
			errs = append(errs, fmt.Sprintf("tokens %s and %s share literal %q", prev, name, lit))
		} else {
			literals[lit] = name
		}
	}

	rules := make(map[string]bool, len(g.Rules))
	for i, r := range g.Rules {
		if r.Name == "" {
			errs = append(errs, fmt.Sprintf("rules[%d]: name is required", i))
			continue
		}
		if !isRuleRef(r.Name) {
			errs = append(errs, fmt.Sprintf("rule %s: rule names must start lower-case", r.Name))
		}
		if rules[r.Name] {
			errs = append(errs, fmt.Sprintf("duplicate rule %q", r.Name))
		}
		rules[r.Name] = true
		if len(r.Alternatives) == 0 {
			errs = append(errs, fmt.Sprintf("rule %s: at least one alternative is required", r.Name))
		}
	}

	if g.Start != "" && !rules[g.Start] {
		errs = append(errs, fmt.Sprintf("start rule %q is not declared", g.Start))
	}

	for _, r := range g.Rules {
		for ai, alt := range r.Alternatives {
			if len(alt) == 0 {
				errs = append(errs, fmt.Sprintf("rule %s alternative %d: must not be empty", r.Name, ai+1))
			}
			for _, sym := range alt {
				name, _ := SplitSuffix(sym)
				if isRuleRef(name) {
					if !rules[name] {
						errs = append(errs, fmt.Sprintf("rule %s: reference to undeclared rule %q", r.Name, name))
					}
				} else if _, ok := g.Tokens[name]; !ok {
					errs = append(errs, fmt.Sprintf("rule %s: reference to undeclared token %q", r.Name, name))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("grammar validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
