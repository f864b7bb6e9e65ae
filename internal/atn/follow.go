package atn

import "strings"

// Alt is one candidate outgoing path from a state: the state it begins at
// and the labels predicting what it would match first (token names,
// "rule <name>" for rule calls, "exit" when the rule can end here).
type Alt struct {
	Index  int // 1-based, grammar order
	Target int
	Labels []string
}

// ConsistentWithToken reports whether this alternative's prediction admits
// consuming the given token type next.
func (a Alt) ConsistentWithToken(tokType string) bool {
	for _, l := range a.Labels {
		if l == tokType {
			return true
		}
	}
	return false
}

// ConsistentWithRule reports whether this alternative's prediction admits
// entering the given rule next.
func (a Alt) ConsistentWithRule(rule string) bool {
	for _, l := range a.Labels {
		if l == "rule "+rule {
			return true
		}
	}
	return false
}

// HasExit reports whether this alternative can complete the enclosing rule
// without consuming further input.
func (a Alt) HasExit() bool {
	for _, l := range a.Labels {
		if l == "exit" {
			return true
		}
	}
	return false
}

// String renders the prediction labels for display.
func (a Alt) String() string {
	return strings.Join(a.Labels, " | ")
}

// Alternatives returns the candidate paths out of a state. For decision
// states there is one Alt per outgoing transition, in declaration order.
// For every other state there is a single Alt describing its continuation.
func (n *Network) Alternatives(stateID int) ([]Alt, error) {
	s, err := n.State(stateID)
	if err != nil {
		return nil, err
	}
	if s.Kind != StateDecision {
		return []Alt{{Index: 1, Target: s.ID, Labels: n.predictLabels(s.ID, nil)}}, nil
	}
	alts := make([]Alt, 0, len(s.Transitions))
	for i, t := range s.Transitions {
		alts = append(alts, Alt{
			Index:  i + 1,
			Target: t.To,
			Labels: n.predictLabels(t.To, nil),
		})
	}
	return alts, nil
}

// predictLabels walks the epsilon closure from a state and collects what the
// parser could match first: token labels, called rules (not entered), and
// "exit" if a rule-stop is reachable. Each epsilon path carries its own
// visited copy so sibling branches do not mask each other; revisits on one
// path break recursion through loops.
func (n *Network) predictLabels(stateID int, visited map[int]bool) []string {
	if visited == nil {
		visited = make(map[int]bool)
	}
	if visited[stateID] {
		return nil
	}
	visited[stateID] = true

	s := n.states[stateID]
	if s.Kind == StateRuleStop {
		return []string{"exit"}
	}

	var labels []string
	for _, t := range s.Transitions {
		switch t.Kind {
		case TransToken:
			labels = appendUnique(labels, t.Label)
		case TransRuleCall:
			labels = appendUnique(labels, t.Label)
		case TransEpsilon, TransPrecedence:
			branch := make(map[int]bool, len(visited))
			for k, v := range visited {
				branch[k] = v
			}
			for _, l := range n.predictLabels(t.To, branch) {
				labels = appendUnique(labels, l)
			}
		}
	}
	return labels
}

func appendUnique(labels []string, l string) []string {
	for _, have := range labels {
		if have == l {
			return labels
		}
	}
	return append(labels, l)
}
