package engine

import "github.com/HisQu/paredros-debugger/internal/atn"

// simResult is the outcome of speculatively walking one branch: how many
// tokens it consumed and whether it drove the whole parse to completion.
type simResult struct {
	consumed  int
	completed bool
}

func (a simResult) better(b simResult) bool {
	if a.completed != b.completed {
		return a.completed
	}
	return a.consumed > b.consumed
}

// predict picks the alternative at a decision state by simulating every
// branch in declared order against the remaining input. A branch that
// completes the parse wins; otherwise the longest match wins, with the
// first-declared branch taking ties. Returns 0 when no branch is viable.
func (r *run) predict(s *atn.State) int {
	var best simResult
	chosen := 0
	for i, t := range s.Transitions {
		res := r.simulate(t.To, r.pos, append([]frame(nil), r.stack...))
		if !res.completed && res.consumed == 0 {
			continue
		}
		if chosen == 0 || res.better(best) {
			best = res
			chosen = i + 1
		}
	}
	return chosen
}

// simulate walks from stateID with a private rule-call stack, consuming
// tokens greedily and recursing at nested decisions. It never emits events;
// the shared step budget bounds pathological grammars.
func (r *run) simulate(stateID, pos int, stack []frame) simResult {
	startPos := pos
	for {
		if r.budget <= 0 {
			return simResult{consumed: pos - startPos}
		}
		r.budget--

		s, err := r.e.net.State(stateID)
		if err != nil {
			return simResult{consumed: pos - startPos}
		}

		switch s.Kind {
		case atn.StateRuleStop:
			if len(stack) == 0 {
				return simResult{
					consumed:  pos - startPos,
					completed: pos == len(r.tokens),
				}
			}
			stateID = stack[len(stack)-1].follow
			stack = stack[:len(stack)-1]

		case atn.StateDecision:
			var best simResult
			for i, t := range s.Transitions {
				sub := r.simulate(t.To, pos, append([]frame(nil), stack...))
				if i == 0 || sub.better(best) {
					best = sub
				}
			}
			best.consumed += pos - startPos
			return best

		case atn.StateTokenMatch:
			t := s.Transitions[0]
			if pos >= len(r.tokens) || r.tokens[pos].Type != t.Label {
				return simResult{consumed: pos - startPos}
			}
			pos++
			stateID = t.To

		default:
			t := s.Transitions[0]
			if t.Kind == atn.TransRuleCall {
				stack = append(stack, frame{rule: t.Rule, follow: t.Follow})
			}
			stateID = t.To
		}
	}
}
