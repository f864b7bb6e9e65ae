// Package engine is a reference parsing engine: it interprets the compiled
// transition network over a token stream and reports every observable action
// through a trace.Listener. The traversal core never imports this package;
// any engine adapter satisfying the listener contract can replace it.
package engine

import (
	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/lexer"
	"github.com/HisQu/paredros-debugger/internal/trace"
)

// lookaheadDepth is how many upcoming tokens events are annotated with.
const lookaheadDepth = 3

// predictBudget caps speculative simulation steps per parse, guarding
// against epsilon cycles in degenerate grammars.
const predictBudget = 1 << 16

// Engine interprets one compiled network. Safe to reuse across parses.
type Engine struct {
	net *atn.Network
}

// New creates an Engine for a network.
func New(net *atn.Network) *Engine {
	return &Engine{net: net}
}

// Parse recognizes tokens from the network's start rule, emitting events to
// the listener as it goes. It returns true when the whole input was
// consumed and the start rule completed; on failure it emits a single error
// event and returns false. A parse is never retried.
func (e *Engine) Parse(tokens []lexer.Token, l trace.Listener) bool {
	startState, err := e.net.RuleStart(e.net.Start)
	if err != nil {
		// Validated grammars always have a start rule; treat as reject.
		return false
	}
	r := &run{e: e, tokens: tokens, listener: l, budget: predictBudget}
	return r.walk(startState)
}

// frame is one entry of the rule-call stack: the called rule and the state
// the caller resumes at.
type frame struct {
	rule   string
	follow int
}

type run struct {
	e        *Engine
	tokens   []lexer.Token
	listener trace.Listener
	pos      int
	stack    []frame
	budget   int
}

func (r *run) walk(stateID int) bool {
	for {
		s, err := r.e.net.State(stateID)
		if err != nil {
			r.emitError(stateID, "unknown")
			return false
		}

		switch s.Kind {
		case atn.StateRuleStop:
			if len(r.stack) == 0 {
				if r.pos == len(r.tokens) {
					return true
				}
				// Start rule finished with input left over.
				r.emitError(s.ID, s.Rule)
				return false
			}
			f := r.stack[len(r.stack)-1]
			r.stack = r.stack[:len(r.stack)-1]
			r.listener.Emit(trace.Event{
				Kind:       trace.KindRuleExit,
				Rule:       f.rule,
				StateID:    s.ID,
				TokenIndex: r.pos,
				Lookahead:  r.look(),
			})
			stateID = f.follow

		case atn.StateDecision:
			alts, err := r.e.net.Alternatives(s.ID)
			if err != nil {
				r.emitError(s.ID, s.Rule)
				return false
			}
			chosen := r.predict(s)
			reported := chosen
			if s.Loop {
				// Loop decisions are resolved by local lookahead; the
				// engine does not report the outcome, mirroring engines
				// that only announce full adaptive predictions.
				reported = 0
			}
			r.listener.Emit(trace.Event{
				Kind:         trace.KindDecision,
				Rule:         s.Rule,
				StateID:      s.ID,
				TokenIndex:   r.pos,
				Lookahead:    r.look(),
				Alternatives: alts,
				Chosen:       reported,
			})
			if chosen == 0 {
				r.emitError(s.ID, s.Rule)
				return false
			}
			stateID = s.Transitions[chosen-1].To

		case atn.StateTokenMatch:
			t := s.Transitions[0]
			if r.pos >= len(r.tokens) || r.tokens[r.pos].Type != t.Label {
				r.emitError(s.ID, s.Rule)
				return false
			}
			tok := r.tokens[r.pos]
			r.pos++
			r.listener.Emit(trace.Event{
				Kind:       trace.KindTokenConsume,
				Rule:       s.Rule,
				StateID:    s.ID,
				TokenIndex: r.pos,
				Token:      tok,
				Lookahead:  r.look(),
			})
			stateID = t.To

		default: // rule-start and basic states carry a single transition
			t := s.Transitions[0]
			if t.Kind == atn.TransRuleCall {
				r.stack = append(r.stack, frame{rule: t.Rule, follow: t.Follow})
				r.listener.Emit(trace.Event{
					Kind:       trace.KindRuleEnter,
					Rule:       t.Rule,
					StateID:    t.To,
					TokenIndex: r.pos,
					Lookahead:  r.look(),
				})
			}
			stateID = t.To
		}
	}
}

// look returns up to lookaheadDepth upcoming token strings.
func (r *run) look() []string {
	var out []string
	for i := r.pos; i < len(r.tokens) && i < r.pos+lookaheadDepth; i++ {
		out = append(out, r.tokens[i].String())
	}
	return out
}

func (r *run) emitError(stateID int, rule string) {
	ev := trace.Event{
		Kind:       trace.KindError,
		Rule:       rule,
		StateID:    stateID,
		TokenIndex: r.pos,
		Lookahead:  r.look(),
	}
	if r.pos < len(r.tokens) {
		ev.Token = r.tokens[r.pos]
	}
	r.listener.Emit(ev)
}
