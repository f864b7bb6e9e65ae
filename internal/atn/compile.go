package atn

import (
	"fmt"

	"github.com/HisQu/paredros-debugger/internal/grammar"
)

// Compile builds the transition network for a validated grammar.
// Every rule gets a rule-start and rule-stop state; multi-alternative blocks
// and repetition suffixes become decision states. Alternative order follows
// grammar declaration; the continue branch of a loop comes before its exit
// branch (network-declared order).
func Compile(g *grammar.Grammar) (*Network, error) {
	if err := grammar.Validate(g); err != nil {
		return nil, err
	}
	n := &Network{
		Grammar:   g.Name,
		Start:     g.Start,
		states:    make(map[int]*State),
		ruleStart: make(map[string]int),
		ruleStop:  make(map[string]int),
	}
	c := &compiler{g: g, n: n}

	// Allocate rule boundaries first so rule-call transitions can resolve
	// forward references.
	for _, r := range g.Rules {
		n.ruleStart[r.Name] = n.addState(r.Name, StateRuleStart).ID
		n.ruleStop[r.Name] = n.addState(r.Name, StateRuleStop).ID
	}
	for _, r := range g.Rules {
		if err := c.compileRule(r); err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name, err)
		}
	}
	return n, nil
}

type compiler struct {
	g *grammar.Grammar
	n *Network
}

func (c *compiler) compileRule(r grammar.Rule) error {
	start := c.n.states[c.n.ruleStart[r.Name]]
	stop := c.n.ruleStop[r.Name]

	if len(r.Alternatives) == 1 {
		head, err := c.compileSeq(r.Name, r.Alternatives[0], stop)
		if err != nil {
			return err
		}
		c.epsilon(start, head)
		return nil
	}

	dec := c.n.addState(r.Name, StateDecision)
	c.epsilon(start, dec.ID)
	for ai, alt := range r.Alternatives {
		head, err := c.compileSeq(r.Name, alt, stop)
		if err != nil {
			return fmt.Errorf("alternative %d: %w", ai+1, err)
		}
		c.epsilon(dec, head)
	}
	return nil
}

// compileSeq builds a symbol sequence right-to-left so every element knows
// its continuation state, and returns the sequence's head state.
func (c *compiler) compileSeq(rule string, seq []string, next int) (int, error) {
	for i := len(seq) - 1; i >= 0; i-- {
		name, suffix := grammar.SplitSuffix(seq[i])
		var err error
		next, err = c.compileElement(rule, name, suffix, next)
		if err != nil {
			return 0, err
		}
	}
	return next, nil
}

func (c *compiler) compileElement(rule, name, suffix string, next int) (int, error) {
	switch suffix {
	case "":
		return c.atom(rule, name, next)
	case "+":
		// elem → loop decision → (back to elem | next)
		loop := c.n.addState(rule, StateDecision)
		loop.Loop = true
		elem, err := c.atom(rule, name, loop.ID)
		if err != nil {
			return 0, err
		}
		c.epsilon(loop, elem)
		c.epsilon(loop, next)
		return elem, nil
	case "*":
		// loop decision → (elem → back to loop | next)
		loop := c.n.addState(rule, StateDecision)
		loop.Loop = true
		elem, err := c.atom(rule, name, loop.ID)
		if err != nil {
			return 0, err
		}
		c.epsilon(loop, elem)
		c.epsilon(loop, next)
		return loop.ID, nil
	case "?":
		dec := c.n.addState(rule, StateDecision)
		dec.Loop = true
		elem, err := c.atom(rule, name, next)
		if err != nil {
			return 0, err
		}
		c.epsilon(dec, elem)
		c.epsilon(dec, next)
		return dec.ID, nil
	}
	return 0, fmt.Errorf("unsupported suffix %q on %s", suffix, name)
}

// atom builds a single token match or rule call whose continuation is next.
func (c *compiler) atom(rule, name string, next int) (int, error) {
	if c.g.IsToken(name) {
		s := c.n.addState(rule, StateTokenMatch)
		s.Transitions = append(s.Transitions, Transition{
			From: s.ID, To: next, Kind: TransToken, Label: name,
		})
		return s.ID, nil
	}
	target, ok := c.n.ruleStart[name]
	if !ok {
		return 0, fmt.Errorf("undeclared rule %q", name)
	}
	s := c.n.addState(rule, StateBasic)
	s.Transitions = append(s.Transitions, Transition{
		From: s.ID, To: target, Kind: TransRuleCall,
		Label: "rule " + name, Rule: name, Follow: next,
	})
	return s.ID, nil
}

func (c *compiler) epsilon(from *State, to int) {
	from.Transitions = append(from.Transitions, Transition{
		From: from.ID, To: to, Kind: TransEpsilon,
	})
}
