package engine_test

import (
	"testing"

	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/engine"
	"github.com/HisQu/paredros-debugger/internal/grammar"
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

// parse runs the reference engine over input and returns the recorded stream.
func parse(t *testing.T, input string) (bool, *trace.Recorder) {
	t.Helper()
	g := abcGrammar()
	net, err := atn.Compile(g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	rec := trace.NewRecorder()
	ok := engine.New(net).Parse(lexer.Lex(input, g.Tokens), rec)
	return ok, rec
}

func kinds(events []trace.Event) []trace.Kind {
	out := make([]trace.Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestParse_PrefersCompletingAlternative(t *testing.T) {
	ok, rec := parse(t, "123")
	if !ok {
		t.Fatal("parse rejected valid input")
	}
	want := []trace.Kind{
		trace.KindDecision,
		trace.KindTokenConsume,
		trace.KindTokenConsume,
		trace.KindTokenConsume,
	}
	got := kinds(rec.Events())
	if len(got) != len(want) {
		t.Fatalf("event kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event kinds = %v, want %v", got, want)
		}
	}
	dec := rec.Events()[0]
	if dec.Chosen != 4 {
		t.Errorf("chosen alternative = %d, want 4 (EINS ZWEI DREI)", dec.Chosen)
	}
	if len(dec.Alternatives) != 4 {
		t.Errorf("decision carries %d alternatives, want 4", len(dec.Alternatives))
	}
}

func TestParse_LoopDecisionsReportNoChoice(t *testing.T) {
	ok, rec := parse(t, "111")
	if !ok {
		t.Fatal("parse rejected valid input")
	}
	var tokens, loops int
	for i, ev := range rec.Events() {
		switch ev.Kind {
		case trace.KindTokenConsume:
			tokens++
			if ev.Token.Type != "EINS" {
				t.Errorf("event %d consumed %s, want EINS", i, ev.Token)
			}
		case trace.KindDecision:
			if i == 0 {
				if ev.Chosen != 1 {
					t.Errorf("rule decision chose %d, want 1 (EINS+)", ev.Chosen)
				}
				continue
			}
			loops++
			if ev.Chosen != 0 {
				t.Errorf("loop decision %d reported choice %d, want 0", i, ev.Chosen)
			}
		}
	}
	if tokens != 3 {
		t.Errorf("consumed %d tokens, want 3", tokens)
	}
	if loops != 3 {
		t.Errorf("saw %d loop decisions, want 3", loops)
	}
}

func TestParse_NestedRuleCalls(t *testing.T) {
	ok, rec := parse(t, "12")
	if !ok {
		t.Fatal("parse rejected valid input")
	}
	want := []trace.Kind{
		trace.KindDecision,     // startRule picks zwoelf
		trace.KindRuleEnter,    // zwoelf
		trace.KindTokenConsume, // 1
		trace.KindRuleEnter,    // zweiOderDrei
		trace.KindDecision,     // ZWEI | DREI
		trace.KindTokenConsume, // 2
		trace.KindRuleExit,     // zweiOderDrei
		trace.KindRuleExit,     // zwoelf
	}
	got := kinds(rec.Events())
	if len(got) != len(want) {
		t.Fatalf("event kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event kinds = %v, want %v", got, want)
		}
	}
	events := rec.Events()
	if events[0].Chosen != 2 {
		t.Errorf("start decision chose %d, want 2 (zwoelf)", events[0].Chosen)
	}
	if events[1].Rule != "zwoelf" || events[3].Rule != "zweiOderDrei" {
		t.Errorf("rule enters = %q, %q", events[1].Rule, events[3].Rule)
	}
	if events[6].Rule != "zweiOderDrei" || events[7].Rule != "zwoelf" {
		t.Errorf("rule exits = %q, %q", events[6].Rule, events[7].Rule)
	}
}

func TestParse_NoViableAlternative(t *testing.T) {
	ok, rec := parse(t, "4")
	if ok {
		t.Fatal("parse accepted invalid input")
	}
	events := rec.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want decision + error", len(events))
	}
	if events[0].Kind != trace.KindDecision || events[0].Chosen != 0 {
		t.Errorf("first event = %+v, want decision with no viable choice", events[0])
	}
	last := events[1]
	if last.Kind != trace.KindError {
		t.Fatalf("last event kind = %s, want error", last.Kind)
	}
	if last.Token.Literal != "4" {
		t.Errorf("error token = %s, want the offending '4'", last.Token)
	}
	if !rec.Failed() {
		t.Error("recorder did not mark the run failed")
	}
}

func TestParse_TrailingInputRejected(t *testing.T) {
	// EINS ZWEI DREI then one token too many.
	ok, rec := parse(t, "1231")
	if ok {
		t.Fatal("parse accepted input with trailing tokens")
	}
	events := rec.Events()
	if events[len(events)-1].Kind != trace.KindError {
		t.Fatalf("stream does not end in an error event: %v", kinds(events))
	}
}

func TestParse_LookaheadAnnotation(t *testing.T) {
	_, rec := parse(t, "123")
	dec := rec.Events()[0]
	want := []string{"EINS ('1')", "ZWEI ('2')", "DREI ('3')"}
	if len(dec.Lookahead) != len(want) {
		t.Fatalf("lookahead = %v, want %v", dec.Lookahead, want)
	}
	for i := range want {
		if dec.Lookahead[i] != want[i] {
			t.Fatalf("lookahead = %v, want %v", dec.Lookahead, want)
		}
	}
}

func TestRecorder_DropsEventsAfterError(t *testing.T) {
	rec := trace.NewRecorder()
	rec.Emit(trace.Event{Kind: trace.KindError})
	rec.Emit(trace.Event{Kind: trace.KindTokenConsume})
	if rec.Len() != 1 {
		t.Fatalf("recorder kept %d events, want 1", rec.Len())
	}
}
