// Package repl is the text presentation layer: it owns a parse session and
// translates line commands into Navigator calls. Presentation policy such as
// "empty input means follow the chosen path" lives here, never in the
// Navigator.
package repl

import (
	"fmt"

	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/engine"
	"github.com/HisQu/paredros-debugger/internal/grammar"
	"github.com/HisQu/paredros-debugger/internal/graph"
	"github.com/HisQu/paredros-debugger/internal/lexer"
	"github.com/HisQu/paredros-debugger/internal/trace"
)

// Session is one complete debugging context: a compiled network, the token
// stream, the frozen traversal graph of a single parse run, and a cursor
// over it. A failed parse still yields a session; only a construction error
// does not.
type Session struct {
	Grammar  *grammar.Grammar
	Network  *atn.Network
	Tokens   []lexer.Token
	Graph    *graph.Graph
	Nav      *graph.Navigator
	Accepted bool
}

// NewSession compiles the grammar, runs one observed parse over the input,
// and builds the traversal graph.
func NewSession(g *grammar.Grammar, input string) (*Session, error) {
	net, err := atn.Compile(g)
	if err != nil {
		return nil, fmt.Errorf("compile grammar: %w", err)
	}
	tokens := lexer.Lex(input, g.Tokens)

	rec := trace.NewRecorder()
	accepted := engine.New(net).Parse(tokens, rec)

	gr, err := graph.Build(net, tokens, rec.Events())
	if err != nil {
		return nil, err
	}
	nav, err := graph.NewNavigator(gr)
	if err != nil {
		return nil, fmt.Errorf("parse produced no steps: %w", err)
	}
	return &Session{
		Grammar:  g,
		Network:  net,
		Tokens:   tokens,
		Graph:    gr,
		Nav:      nav,
		Accepted: accepted,
	}, nil
}
