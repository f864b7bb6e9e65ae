package graph_test

import (
	"testing"

	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/engine"
	"github.com/HisQu/paredros-debugger/internal/grammar"
	"github.com/HisQu/paredros-debugger/internal/graph"
	"github.com/HisQu/paredros-debugger/internal/lexer"
	"github.com/HisQu/paredros-debugger/internal/trace"
)

func abcGrammar() *grammar.Grammar {
	return &grammar.Grammar{
		Name:  "Abc",
		Start: "startRule",
		Tokens: map[string]string{
			"EINS": "1",
			"ZWEI": "2",
			"DREI": "3",
		},
		Rules: []grammar.Rule{
			{Name: "startRule", Alternatives: [][]string{
				{"EINS+"}, {"zwoelf"}, {"DREI", "DREI"}, {"EINS", "ZWEI", "DREI"},
			}},
			{Name: "zwoelf", Alternatives: [][]string{{"EINS", "zweiOderDrei"}}},
			{Name: "zweiOderDrei", Alternatives: [][]string{{"ZWEI"}, {"DREI"}}},
		},
	}
}

// buildGraph runs the full pipeline (compile, lex, parse, build) over input.
func buildGraph(t *testing.T, input string) *graph.Graph {
	t.Helper()
	g := abcGrammar()
	net, err := atn.Compile(g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	toks := lexer.Lex(input, g.Tokens)
	rec := trace.NewRecorder()
	engine.New(net).Parse(toks, rec)
	tg, err := graph.Build(net, toks, rec.Events())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tg
}

// pathKinds collects node kinds along the chosen path.
func pathKinds(t *testing.T, g *graph.Graph) []graph.Kind {
	t.Helper()
	var out []graph.Kind
	for id := g.Root; id != graph.NoNode; {
		n, err := g.Node(id)
		if err != nil {
			t.Fatalf("Node(%d): %v", id, err)
		}
		out = append(out, n.Kind)
		id = n.Next
	}
	return out
}

func node(t *testing.T, g *graph.Graph, id graph.NodeID) *graph.Node {
	t.Helper()
	n, err := g.Node(id)
	if err != nil {
		t.Fatalf("Node(%d): %v", id, err)
	}
	return n
}
