package graph

// AltView is the read-only projection of one alternative.
type AltView struct {
	Index    int      `json:"index"`
	Labels   []string `json:"labels"`
	Chosen   bool     `json:"chosen"`
	Expanded bool     `json:"expanded"`
}

// View is a read-only snapshot of one traversal step, safe to hand to any
// presentation layer and stable under later expansions elsewhere in the
// graph.
type View struct {
	Step         NodeID    `json:"step"`
	Kind         Kind      `json:"kind"`
	State        NavState  `json:"state"`
	Rule         string    `json:"rule"`
	StateID      int       `json:"state_id"`
	Token        string    `json:"token,omitempty"`
	Lookahead    []string  `json:"lookahead,omitempty"`
	Chosen       int       `json:"chosen,omitempty"`
	Alternatives []AltView `json:"alternatives,omitempty"`
	Consumed     []string  `json:"consumed"`
	Remaining    []string  `json:"remaining"`
	Stack        []string  `json:"stack,omitempty"`
	Synthetic    bool      `json:"synthetic,omitempty"`
	Err          bool      `json:"error,omitempty"`
}

// ViewOf snapshots an arbitrary node.
func (g *Graph) ViewOf(id NodeID) View {
	n, err := g.Node(id)
	if err != nil {
		return View{Step: NoNode}
	}
	v := View{
		Step:      n.ID,
		Kind:      n.Kind,
		State:     g.navState(n),
		Rule:      n.Rule,
		StateID:   n.StateID,
		Lookahead: append([]string(nil), n.Lookahead...),
		Chosen:    n.Chosen,
		Consumed:  g.Consumed(n),
		Remaining: g.Remaining(n),
		Stack:     append([]string(nil), n.Stack...),
		Synthetic: n.Synthetic,
		Err:       n.Err,
	}
	if n.Token.Literal != "" {
		v.Token = n.Token.String()
	}
	for _, a := range n.Alternatives {
		v.Alternatives = append(v.Alternatives, AltView{
			Index:    a.Index,
			Labels:   append([]string(nil), a.Labels...),
			Chosen:   a.Index == n.Chosen,
			Expanded: a.Root != NoNode,
		})
	}
	return v
}

// navState classifies a node: terminal outcome beats everything, then root,
// then decision, then plain internal.
func (g *Graph) navState(n *Node) NavState {
	if n.ID == g.Terminal {
		if g.Status == StatusRejected {
			return NavRejected
		}
		return NavAccepted
	}
	switch {
	case n.ID == g.Root:
		return NavRoot
	case n.IsDecision():
		return NavDecision
	default:
		return NavInternal
	}
}
