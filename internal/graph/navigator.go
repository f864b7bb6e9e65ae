package graph

import (
	"errors"

	"github.com/HisQu/paredros-debugger/internal/metrics"
)

// NavState classifies the cursor's current position.
type NavState string

const (
	NavRoot     NavState = "Root"
	NavInternal NavState = "Internal"
	NavDecision NavState = "Decision"
	NavAccepted NavState = "Accepted"
	NavRejected NavState = "Rejected"
)

// Navigator is a stateful cursor over a frozen traversal graph. It is the
// only writer during a session, and the only mutation it triggers is the
// lazy, memoized attachment of alternative subgraphs. Failed operations
// leave the cursor where it was.
type Navigator struct {
	g        *Graph
	expander *Expander
	cur      NodeID
}

// NewNavigator creates a cursor positioned at the graph's root.
func NewNavigator(g *Graph) (*Navigator, error) {
	if g.Root == NoNode {
		return nil, errors.New("navigator: empty graph")
	}
	return &Navigator{g: g, expander: NewExpander(g), cur: g.Root}, nil
}

// Current returns the cursor's node id.
func (nav *Navigator) Current() NodeID {
	return nav.cur
}

// MoveToChild follows the sequential next link. At a node without one it
// reports ErrAtTerminal and stays put; no node is ever created by moving
// forward past the end.
func (nav *Navigator) MoveToChild() error {
	metrics.NavigationOps.WithLabelValues("child").Inc()
	n := nav.node()
	if n.Next == NoNode {
		return ErrAtTerminal
	}
	nav.cur = n.Next
	return nil
}

// MoveToParent follows the parent link, reporting ErrAtRoot at the root.
func (nav *Navigator) MoveToParent() error {
	metrics.NavigationOps.WithLabelValues("parent").Inc()
	n := nav.node()
	if n.Parent == NoNode {
		return ErrAtRoot
	}
	nav.cur = n.Parent
	return nil
}

// ExploreAlternative moves into one alternative of the current decision
// node. Index 0 and the chosen index both follow the actual parse path,
// observably equivalent to MoveToChild. Any other in-range index lazily
// expands that alternative's subgraph and moves to its root. Out-of-range
// indices (including any index above 0 on a non-decision node) fail with
// ErrInvalidSelection, cursor unchanged.
func (nav *Navigator) ExploreAlternative(index int) error {
	metrics.NavigationOps.WithLabelValues("alternative").Inc()
	n := nav.node()
	if index == 0 || (n.IsDecision() && index == n.Chosen) {
		return nav.MoveToChild()
	}
	if n.Alternative(index) == nil {
		return ErrInvalidSelection
	}
	root, err := nav.expander.Expand(nav.cur, index)
	if err != nil {
		return err
	}
	nav.cur = root
	return nil
}

// JumpToStep moves the cursor to any previously constructed node, expanded
// subgraphs included. Unknown ids fail with ErrUnknownStep.
func (nav *Navigator) JumpToStep(id NodeID) error {
	metrics.NavigationOps.WithLabelValues("jump").Inc()
	if _, err := nav.g.Node(id); err != nil {
		return err
	}
	nav.cur = id
	return nil
}

// MoveToNextDecision walks forward along next links until a decision node.
// Reports ErrAtTerminal when none remains, cursor unchanged.
func (nav *Navigator) MoveToNextDecision() error {
	metrics.NavigationOps.WithLabelValues("next-decision").Inc()
	for id := nav.node().Next; id != NoNode; {
		n, err := nav.g.Node(id)
		if err != nil {
			return err
		}
		if n.IsDecision() {
			nav.cur = id
			return nil
		}
		id = n.Next
	}
	return ErrAtTerminal
}

// MoveToPrevDecision walks backward along parent links until a decision
// node. Reports ErrAtRoot when none remains, cursor unchanged.
func (nav *Navigator) MoveToPrevDecision() error {
	metrics.NavigationOps.WithLabelValues("prev-decision").Inc()
	for id := nav.node().Parent; id != NoNode; {
		n, err := nav.g.Node(id)
		if err != nil {
			return err
		}
		if n.IsDecision() {
			nav.cur = id
			return nil
		}
		id = n.Parent
	}
	return ErrAtRoot
}

// CurrentView returns a read-only snapshot of the cursor's node.
func (nav *Navigator) CurrentView() View {
	return nav.g.ViewOf(nav.cur)
}

func (nav *Navigator) node() *Node {
	n, err := nav.g.Node(nav.cur)
	if err != nil {
		// The cursor only ever holds ids handed out by this graph.
		panic(err)
	}
	return n
}
