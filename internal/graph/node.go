// Package graph is the debugger's core: it turns a recorded parse event
// stream into a navigable traversal graph, lazily materializes what-if
// alternative branches, and exposes a cursor for walking both.
//
// Nodes live in an arena owned by the Graph and reference each other by
// stable NodeIDs rather than pointers, so rule recursion revisiting the same
// network state never creates ownership cycles.
package graph

import (
	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/lexer"
)

// NodeID addresses a node within its graph's arena.
type NodeID int

// NoNode is the absent-link marker for Parent, Next, and Alternative roots.
const NoNode NodeID = -1

// Kind discriminates traversal node kinds.
type Kind string

const (
	KindDecision     Kind = "decision"
	KindRuleEnter    Kind = "rule-enter"
	KindRuleExit     Kind = "rule-exit"
	KindTokenConsume Kind = "token-consume"
	// KindMismatch and KindInsufficientInput only occur as leaves of
	// expanded alternative subgraphs.
	KindMismatch          Kind = "mismatch"
	KindInsufficientInput Kind = "insufficient-input"
)

// Status is the terminal outcome of graph construction.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Alternative is one candidate outgoing path from a decision node. Its
// subgraph is absent until first exploration and memoized afterwards.
type Alternative struct {
	Index  int      // 1-based, grammar order
	Target int      // network state the alternative begins at
	Labels []string // predicted first matches
	Root   NodeID   // NoNode until expanded
}

// Node is one step of the traversal graph. Mutable only while the builder
// appends the chosen path, plus the one-time, idempotent attachment of an
// alternative subgraph root.
type Node struct {
	ID         NodeID
	Kind       Kind
	Rule       string
	StateID    int
	TokenIndex int // tokens consumed when this step was reached
	Token      lexer.Token
	Lookahead  []string
	Stack      []string // rule-call stack snapshot, outermost first

	Parent       NodeID
	Next         NodeID
	Alternatives []Alternative
	Chosen       int // 1-based; 0 while unknown; never changes once set

	Err       bool // the parse failed at this step
	Synthetic bool // created by alternative expansion, not the live parse
}

// IsDecision reports whether the node carries selectable alternatives.
func (n *Node) IsDecision() bool {
	return n.Kind == KindDecision
}

// Alternative returns the 1-based alternative, or nil when out of range.
func (n *Node) Alternative(index int) *Alternative {
	if index < 1 || index > len(n.Alternatives) {
		return nil
	}
	return &n.Alternatives[index-1]
}

// newAlternatives converts network alternatives into unexpanded slots.
func newAlternatives(alts []atn.Alt) []Alternative {
	out := make([]Alternative, len(alts))
	for i, a := range alts {
		labels := make([]string, len(a.Labels))
		copy(labels, a.Labels)
		out[i] = Alternative{Index: a.Index, Target: a.Target, Labels: labels, Root: NoNode}
	}
	return out
}
