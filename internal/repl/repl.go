package repl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/HisQu/paredros-debugger/internal/grammar"
	"github.com/HisQu/paredros-debugger/internal/graph"
)

// cursorMark separates consumed from remaining input in the step display.
const cursorMark = "⏺"

// REPL drives one interactive debugging session. It blocks on one command
// at a time and resolves it synchronously before the next prompt.
type REPL struct {
	loader    *grammar.Loader
	inputText string
	session   *Session
	in        *bufio.Scanner
	out       io.Writer

	grammarChanged atomic.Bool
}

// New creates a REPL with an initial session for the loader's grammar.
func New(loader *grammar.Loader, inputText string, in io.Reader, out io.Writer) (*REPL, error) {
	s, err := NewSession(loader.Grammar(), inputText)
	if err != nil {
		return nil, err
	}
	return &REPL{
		loader:    loader,
		inputText: inputText,
		session:   s,
		in:        bufio.NewScanner(in),
		out:       out,
	}, nil
}

// Session exposes the current session, mainly for tests and callers that
// want to log its outcome.
func (r *REPL) Session() *Session {
	return r.session
}

// NotifyGrammarChanged flags that the grammar file changed on disk. The
// frozen graph stays as is; the user decides when to re-parse via reload.
func (r *REPL) NotifyGrammarChanged() {
	r.grammarChanged.Store(true)
}

// Run reads commands until quit or EOF. Recoverable navigation errors are
// printed and leave the session usable.
func (r *REPL) Run() error {
	fmt.Fprintf(r.out, "session %s: parse %s (%d steps, %d tokens)\n",
		r.session.Graph.SessionID, r.session.Graph.Status, r.session.Graph.PathLen(), len(r.session.Tokens))
	r.printView()

	for {
		if r.grammarChanged.Swap(false) {
			fmt.Fprintln(r.out, "grammar file changed on disk; type 'reload' to re-parse")
		}
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			return r.in.Err()
		}
		line := strings.TrimSpace(r.in.Text())
		if quit := r.dispatch(line); quit {
			return nil
		}
	}
}

func (r *REPL) dispatch(line string) (quit bool) {
	nav := r.session.Nav
	fields := strings.Fields(line)
	cmd := ""
	if len(fields) > 0 {
		cmd = fields[0]
	}

	switch cmd {
	case "", "c", "child":
		// Empty input follows the chosen path: alternative 0.
		r.report(nav.ExploreAlternative(0))
	case "p", "parent":
		r.report(nav.MoveToParent())
	case "a", "alt":
		idx, err := argInt(fields)
		if err != nil {
			fmt.Fprintln(r.out, "usage: a <alternative index>")
			return false
		}
		r.report(nav.ExploreAlternative(idx))
	case "g", "goto":
		idx, err := argInt(fields)
		if err != nil {
			fmt.Fprintln(r.out, "usage: g <step id>")
			return false
		}
		r.report(nav.JumpToStep(graph.NodeID(idx)))
	case "d", "decision":
		r.report(nav.MoveToNextDecision())
	case "b", "back":
		r.report(nav.MoveToPrevDecision())
	case "v", "view":
		r.printView()
	case "json":
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nav.CurrentView()); err != nil {
			fmt.Fprintf(r.out, "json: %v\n", err)
		}
	case "t", "tree":
		fmt.Fprint(r.out, r.session.Graph.PathString())
	case "reload":
		r.reload()
	case "h", "help":
		r.printHelp()
	case "q", "quit", "exit":
		return true
	default:
		fmt.Fprintf(r.out, "unknown command %q (h for help)\n", cmd)
	}
	return false
}

// report prints the outcome of a navigation call and the resulting view.
// All navigator errors are recoverable; the cursor is unchanged on failure.
func (r *REPL) report(err error) {
	switch {
	case err == nil:
		r.printView()
	case errors.Is(err, graph.ErrAtTerminal):
		fmt.Fprintln(r.out, "at terminal: no further step")
	case errors.Is(err, graph.ErrAtRoot):
		fmt.Fprintln(r.out, "at root: no parent step")
	case errors.Is(err, graph.ErrInvalidSelection):
		fmt.Fprintln(r.out, "invalid selection: no such alternative here")
	case errors.Is(err, graph.ErrUnknownStep):
		fmt.Fprintln(r.out, "unknown step: that id was never built")
	default:
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
}

func (r *REPL) reload() {
	g, err := r.loader.Reload()
	if err != nil {
		fmt.Fprintf(r.out, "reload failed, keeping session: %v\n", err)
		return
	}
	s, err := NewSession(g, r.inputText)
	if err != nil {
		fmt.Fprintf(r.out, "reload failed, keeping session: %v\n", err)
		return
	}
	r.session = s
	fmt.Fprintf(r.out, "reloaded: session %s, parse %s\n", s.Graph.SessionID, s.Graph.Status)
	r.printView()
}

func (r *REPL) printView() {
	v := r.session.Nav.CurrentView()
	fmt.Fprintf(r.out, "[%d] %s %s  rule=%s state=%d\n", v.Step, v.State, v.Kind, v.Rule, v.StateID)
	if v.Token != "" {
		fmt.Fprintf(r.out, "    token: %s\n", v.Token)
	}
	if len(v.Lookahead) > 0 {
		fmt.Fprintf(r.out, "    lookahead: %s\n", strings.Join(v.Lookahead, ", "))
	}
	for _, a := range v.Alternatives {
		marker := "   "
		if a.Chosen {
			marker = " ✔ "
		}
		expanded := ""
		if a.Expanded {
			expanded = " (expanded)"
		}
		fmt.Fprintf(r.out, "    %s%d: %s%s\n", marker, a.Index, strings.Join(a.Labels, " "), expanded)
	}
	fmt.Fprintf(r.out, "    input: %s %s %s\n",
		strings.Join(v.Consumed, " "), cursorMark, strings.Join(v.Remaining, " "))
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `commands:
  <enter>, c   follow the chosen path (alternative 0)
  a <n>        explore alternative n (chosen index ≡ c)
  p            move to parent step
  d / b        next / previous decision
  g <id>       jump to step id
  v / json     show current step (text / JSON)
  t            print the chosen path
  reload       re-read grammar and re-parse the input
  q            quit
`)
}

func argInt(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, errors.New("missing argument")
	}
	return strconv.Atoi(fields[1])
}
