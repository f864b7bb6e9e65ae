package graph

import (
	"strings"

	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/lexer"
)

// Graph holds the arena of traversal nodes for one parse session. The chosen
// path is frozen once built; the only later mutation is attaching disjoint
// alternative subgraphs, so a single-owner session needs no locking.
type Graph struct {
	SessionID string
	Status    Status
	Root      NodeID
	Terminal  NodeID // last chosen-path node; Status says how it ended

	nodes  []*Node
	tokens []lexer.Token
	net    *atn.Network
}

// Node returns a node by id. Unknown ids yield ErrUnknownStep.
func (g *Graph) Node(id NodeID) (*Node, error) {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, ErrUnknownStep
	}
	return g.nodes[id], nil
}

// Len returns the total node count, expansions included.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// PathLen returns the number of chosen-path nodes (expansions excluded).
func (g *Graph) PathLen() int {
	count := 0
	for id := g.Root; id != NoNode; id = g.nodes[id].Next {
		count++
	}
	return count
}

// Tokens returns the full input token stream.
func (g *Graph) Tokens() []lexer.Token {
	return g.tokens
}

// Consumed returns the literals consumed before the node's position.
func (g *Graph) Consumed(n *Node) []string {
	return lexer.Literals(g.tokens[:n.TokenIndex])
}

// Remaining returns the literals not yet consumed at the node's position.
func (g *Graph) Remaining(n *Node) []string {
	return lexer.Literals(g.tokens[n.TokenIndex:])
}

// Network returns the transition network the graph was built against.
func (g *Graph) Network() *atn.Network {
	return g.net
}

// PathString renders the chosen path one step per line, indented by rule
// nesting depth, for the tree view.
func (g *Graph) PathString() string {
	var b strings.Builder
	for id := g.Root; id != NoNode; id = g.nodes[id].Next {
		n := g.nodes[id]
		b.WriteString(strings.Repeat("  ", len(n.Stack)))
		b.WriteString(describe(n))
		b.WriteByte('\n')
	}
	return b.String()
}

func describe(n *Node) string {
	var b strings.Builder
	b.WriteString(string(n.Kind))
	b.WriteString(" ")
	b.WriteString(n.Rule)
	switch n.Kind {
	case KindTokenConsume, KindMismatch:
		b.WriteString(" ")
		b.WriteString(n.Token.String())
	case KindDecision:
		b.WriteString(" [")
		for i, a := range n.Alternatives {
			if i > 0 {
				b.WriteString(" | ")
			}
			if a.Index == n.Chosen {
				b.WriteString("*")
			}
			b.WriteString(strings.Join(a.Labels, " "))
		}
		b.WriteString("]")
	}
	return b.String()
}

// append creates a node in the arena behind parent. With linkNext the parent
// gains the new node as its sequential successor; the first node of an
// alternative subgraph keeps its decision parent's Next untouched and is
// reached through the Alternative slot instead.
func (g *Graph) append(n *Node, parent NodeID, linkNext bool) NodeID {
	n.ID = NodeID(len(g.nodes))
	n.Parent = parent
	n.Next = NoNode
	g.nodes = append(g.nodes, n)
	if parent == NoNode {
		g.Root = n.ID
	} else if linkNext {
		g.nodes[parent].Next = n.ID
	}
	return n.ID
}
