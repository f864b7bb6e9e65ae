// Package atn models the transition network compiled from a grammar: the
// states and transitions a parser walks while recognizing input. The network
// is immutable once compiled; builders, expanders, and engines only read it.
package atn

import "fmt"

// StateKind discriminates the kinds of network states.
type StateKind string

const (
	StateBasic      StateKind = "basic"
	StateRuleStart  StateKind = "rule-start"
	StateRuleStop   StateKind = "rule-stop"
	StateDecision   StateKind = "decision"
	StateTokenMatch StateKind = "token-match"
)

// TransitionKind discriminates the kinds of transitions.
type TransitionKind string

const (
	TransEpsilon  TransitionKind = "epsilon"
	TransToken    TransitionKind = "token"
	TransRuleCall TransitionKind = "rule-call"
	// TransPrecedence exists in the wire model for engines that emit
	// precedence transitions; the YAML compiler never produces it because
	// the schema has no left-recursive rules.
	TransPrecedence TransitionKind = "precedence"
)

// State is one network state with its ordered outgoing transitions.
type State struct {
	ID          int
	Rule        string
	Kind        StateKind
	Transitions []Transition
	// Loop marks decision states synthesized for +, * and ? suffixes.
	// Engines resolve these by local lookahead and typically cannot report
	// which alternative they took.
	Loop bool
}

// Transition is one directed edge between states.
type Transition struct {
	From  int
	To    int
	Kind  TransitionKind
	Label string // token name for token transitions, "rule <name>" for rule calls
	Rule  string // called rule for rule-call transitions
	// Follow is the state the caller resumes at once the called rule's
	// rule-stop is reached. Only set for rule-call transitions.
	Follow int
}

// Network is the compiled state machine for one grammar.
type Network struct {
	Grammar string
	Start   string // start rule name

	states    map[int]*State
	ruleStart map[string]int
	ruleStop  map[string]int
}

// State returns the state with the given id. A missing id is a contract
// violation between the event stream and the network; callers treat it as
// fatal.
func (n *Network) State(id int) (*State, error) {
	s, ok := n.states[id]
	if !ok {
		return nil, fmt.Errorf("network: unknown state %d", id)
	}
	return s, nil
}

// RuleStart returns the rule-start state id for a rule.
func (n *Network) RuleStart(rule string) (int, error) {
	id, ok := n.ruleStart[rule]
	if !ok {
		return 0, fmt.Errorf("network: unknown rule %q", rule)
	}
	return id, nil
}

// RuleStop returns the rule-stop state id for a rule.
func (n *Network) RuleStop(rule string) (int, error) {
	id, ok := n.ruleStop[rule]
	if !ok {
		return 0, fmt.Errorf("network: unknown rule %q", rule)
	}
	return id, nil
}

// StateCount returns the total number of states.
func (n *Network) StateCount() int {
	return len(n.states)
}

func (n *Network) addState(rule string, kind StateKind) *State {
	s := &State{ID: len(n.states), Rule: rule, Kind: kind}
	n.states[s.ID] = s
	return s
}
