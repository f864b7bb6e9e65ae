package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/lexer"
	"github.com/HisQu/paredros-debugger/internal/metrics"
	"github.com/HisQu/paredros-debugger/internal/trace"
)

// Build consumes a recorded event stream and the network it was produced
// against, and returns the frozen chosen-path graph. Every decision node
// carries the complete alternative list; when an event does not report the
// taken alternative it is inferred from the stream suffix.
//
// A state id the network does not know is a ConstructionError: the whole
// build aborts, events are never silently dropped. An error event freezes
// the graph as Rejected at the node that was current when it arrived;
// everything built before it stays navigable.
func Build(net *atn.Network, tokens []lexer.Token, events []trace.Event) (*Graph, error) {
	g := &Graph{
		SessionID: uuid.NewString(),
		Root:      NoNode,
		Terminal:  NoNode,
		tokens:    tokens,
		net:       net,
	}

	cur := NoNode
	var stack []string

	for i, ev := range events {
		if _, err := net.State(ev.StateID); err != nil {
			return nil, &ConstructionError{StateID: ev.StateID, Err: err}
		}

		switch ev.Kind {
		case trace.KindError:
			if cur == NoNode {
				// Failure before any step: record the offender itself so
				// there is something to inspect.
				cur = g.append(newNodeFromEvent(ev, KindMismatch, stack), cur, true)
				metrics.NodesBuilt.WithLabelValues(string(KindMismatch)).Inc()
			}
			n := mustNode(g, cur)
			n.Err = true
			g.Status = StatusRejected
			g.Terminal = cur
			finish(g)
			return g, nil

		case trace.KindRuleEnter:
			stack = append(stack, ev.Rule)
			cur = g.append(newNodeFromEvent(ev, KindRuleEnter, stack), cur, true)

		case trace.KindRuleExit:
			cur = g.append(newNodeFromEvent(ev, KindRuleExit, stack), cur, true)
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case trace.KindTokenConsume:
			cur = g.append(newNodeFromEvent(ev, KindTokenConsume, stack), cur, true)

		case trace.KindDecision:
			n := newNodeFromEvent(ev, KindDecision, stack)
			n.Alternatives = newAlternatives(ev.Alternatives)
			n.Chosen = ev.Chosen
			if n.Chosen == 0 {
				n.Chosen = InferChosen(ev.Alternatives, events[i+1:])
			}
			cur = g.append(n, cur, true)

		default:
			return nil, &ConstructionError{
				StateID: ev.StateID,
				Err:     fmt.Errorf("unexpected event kind %q", ev.Kind),
			}
		}
		metrics.NodesBuilt.WithLabelValues(string(mustNode(g, cur).Kind)).Inc()
	}

	// No error signal: the engine consumed the whole input.
	g.Status = StatusAccepted
	g.Terminal = cur
	finish(g)
	return g, nil
}

func newNodeFromEvent(ev trace.Event, kind Kind, stack []string) *Node {
	return &Node{
		Kind:       kind,
		Rule:       ev.Rule,
		StateID:    ev.StateID,
		TokenIndex: ev.TokenIndex,
		Token:      ev.Token,
		Lookahead:  append([]string(nil), ev.Lookahead...),
		Stack:      append([]string(nil), stack...),
	}
}

func finish(g *Graph) {
	metrics.ParsesTotal.WithLabelValues(string(g.Status)).Inc()
	metrics.GraphNodes.Set(float64(g.Len()))
}

// mustNode is for ids the builder itself just created.
func mustNode(g *Graph, id NodeID) *Node {
	n, err := g.Node(id)
	if err != nil {
		panic(err)
	}
	return n
}
