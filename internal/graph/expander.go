package graph

import (
	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/metrics"
)

// synthLookahead matches the depth the live engine annotates events with.
const synthLookahead = 3

// synthBudget caps synthetic walk steps per expansion.
const synthBudget = 1 << 12

// Expander lazily derives the subgraph an unchosen alternative would have
// produced, by walking the network forward from the alternative's target and
// consuming the remaining input deterministically. No live parse is re-run.
type Expander struct {
	g *Graph
}

// NewExpander creates an Expander over a frozen graph.
func NewExpander(g *Graph) *Expander {
	return &Expander{g: g}
}

// Expand materializes the subgraph for one alternative of a decision node
// and returns the subgraph's root. The result is attached to the Alternative
// permanently: expanding the same alternative again returns the identical
// cached subgraph. An index without an Alternative slot yields
// ErrInvalidSelection.
func (x *Expander) Expand(nodeID NodeID, index int) (NodeID, error) {
	n, err := x.g.Node(nodeID)
	if err != nil {
		return NoNode, err
	}
	alt := n.Alternative(index)
	if alt == nil {
		return NoNode, ErrInvalidSelection
	}
	if alt.Root != NoNode {
		return alt.Root, nil
	}

	metrics.AlternativesExpanded.Inc()
	w := &synthWalk{g: x.g, pos: n.TokenIndex, base: n.Stack, budget: synthBudget}
	root := w.walk(alt.Target, nodeID)
	alt.Root = root
	metrics.ExpansionNodes.Add(float64(w.created))
	return root, nil
}

// synthFrame mirrors the engine's rule-call discipline during synthesis.
type synthFrame struct {
	rule   string
	follow int
}

type synthWalk struct {
	g       *Graph
	pos     int      // index into g.tokens
	base    []string // live rule stack at the decision node
	stack   []synthFrame
	budget  int
	created int
}

// walk synthesizes nodes from stateID until the alternative's rule would
// return to the live context, a decision it cannot resolve locally, a token
// mismatch, or exhausted input. Every stop condition leaves a node, so an
// expansion is never empty.
func (w *synthWalk) walk(stateID int, parent NodeID) NodeID {
	root := NoNode
	linkNext := false // the decision's own Next belongs to the chosen path
	emit := func(n *Node) {
		n.Synthetic = true
		id := w.g.append(n, parent, linkNext)
		if root == NoNode {
			root = id
		}
		parent = id
		linkNext = true
		w.created++
		metrics.NodesBuilt.WithLabelValues(string(n.Kind)).Inc()
	}

	for {
		s, err := w.g.net.State(stateID)
		if err != nil || w.budget <= 0 {
			emit(w.node(KindInsufficientInput, stateID, ""))
			return root
		}
		w.budget--

		switch s.Kind {
		case atn.StateRuleStop:
			if len(w.stack) == 0 {
				// The alternative's rule is complete; beyond this point the
				// live caller context would continue.
				emit(w.node(KindRuleExit, s.ID, s.Rule))
				return root
			}
			f := w.stack[len(w.stack)-1]
			emit(w.node(KindRuleExit, s.ID, f.rule))
			w.stack = w.stack[:len(w.stack)-1]
			stateID = f.follow

		case atn.StateTokenMatch:
			t := s.Transitions[0]
			if w.pos >= len(w.g.tokens) {
				emit(w.node(KindInsufficientInput, s.ID, s.Rule))
				return root
			}
			tok := w.g.tokens[w.pos]
			if tok.Type != t.Label {
				n := w.node(KindMismatch, s.ID, s.Rule)
				n.Token = tok
				n.Err = true
				emit(n)
				return root
			}
			w.pos++
			n := w.node(KindTokenConsume, s.ID, s.Rule)
			n.Token = tok
			n.TokenIndex = w.pos
			emit(n)
			stateID = t.To

		case atn.StateDecision:
			alts, err := w.g.net.Alternatives(s.ID)
			if err != nil {
				emit(w.node(KindInsufficientInput, s.ID, s.Rule))
				return root
			}
			n := w.node(KindDecision, s.ID, s.Rule)
			n.Alternatives = newAlternatives(alts)
			consistent := w.consistent(alts)
			switch len(consistent) {
			case 0:
				// No branch admits what comes next.
				n.Chosen = 0
				emit(n)
				if w.pos >= len(w.g.tokens) {
					emit(w.node(KindInsufficientInput, s.ID, s.Rule))
				} else {
					leaf := w.node(KindMismatch, s.ID, s.Rule)
					leaf.Token = w.g.tokens[w.pos]
					leaf.Err = true
					emit(leaf)
				}
				return root
			case 1:
				// Locally decidable; keep walking through it.
				n.Chosen = consistent[0]
				emit(n)
				stateID = s.Transitions[consistent[0]-1].To
			default:
				// Needs engine-level lookahead; stop and expose the
				// decision's own unexpanded alternatives.
				n.Chosen = 0
				emit(n)
				return root
			}

		default:
			t := s.Transitions[0]
			if t.Kind == atn.TransRuleCall {
				w.stack = append(w.stack, synthFrame{rule: t.Rule, follow: t.Follow})
				n := w.node(KindRuleEnter, t.To, t.Rule)
				emit(n)
			}
			stateID = t.To
		}
	}
}

// consistent returns the 1-based alternative indices admitting the next
// input token. With input exhausted only exiting branches remain; branches
// that begin with a rule call cannot be ruled out by one token and count as
// consistent.
func (w *synthWalk) consistent(alts []atn.Alt) []int {
	var out []int
	if w.pos >= len(w.g.tokens) {
		for _, a := range alts {
			if a.HasExit() {
				out = append(out, a.Index)
			}
		}
		return out
	}
	next := w.g.tokens[w.pos]
	for _, a := range alts {
		if a.ConsistentWithToken(next.Type) || hasRuleLabel(a) || a.HasExit() {
			out = append(out, a.Index)
		}
	}
	return out
}

func hasRuleLabel(a atn.Alt) bool {
	for _, l := range a.Labels {
		if len(l) > 5 && l[:5] == "rule " {
			return true
		}
	}
	return false
}

func (w *synthWalk) node(kind Kind, stateID int, rule string) *Node {
	stack := make([]string, 0, len(w.base)+len(w.stack))
	stack = append(stack, w.base...)
	for _, f := range w.stack {
		stack = append(stack, f.rule)
	}
	var look []string
	for i := w.pos; i < len(w.g.tokens) && i < w.pos+synthLookahead; i++ {
		look = append(look, w.g.tokens[i].String())
	}
	return &Node{
		Kind:       kind,
		Rule:       rule,
		StateID:    stateID,
		TokenIndex: w.pos,
		Lookahead:  look,
		Stack:      stack,
	}
}
