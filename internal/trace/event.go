// Package trace defines the event stream a parsing engine emits while
// recognizing input, and the listener contract any engine adapter satisfies.
// The traversal core depends only on this contract, never on an engine's
// internals.
package trace

import (
	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/lexer"
)

// Kind discriminates the observable parse actions.
type Kind string

const (
	KindRuleEnter    Kind = "rule-enter"
	KindRuleExit     Kind = "rule-exit"
	KindTokenConsume Kind = "token-consume"
	KindDecision     Kind = "decision"
	// KindError is the engine's failure signal. It must be the final event
	// of a stream.
	KindError Kind = "error"
)

// Event is one observable parse action. Events are immutable once emitted.
type Event struct {
	Kind       Kind
	Rule       string
	StateID    int
	TokenIndex int         // tokens consumed before this event fired
	Token      lexer.Token // consumed token (token-consume) or offender (error)
	Lookahead  []string    // upcoming token strings at this point
	// Alternatives and Chosen are set for decision events. Chosen is the
	// 1-based index of the taken alternative; 0 means the engine could not
	// report it and the builder must infer it from the stream suffix.
	Alternatives []atn.Alt
	Chosen       int
}

// Listener receives parse events as they happen. Implementations must not
// retain the Alternatives slice beyond the call unless they copy it.
type Listener interface {
	Emit(Event)
}
