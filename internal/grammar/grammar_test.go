package grammar_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HisQu/paredros-debugger/internal/grammar"
)

func validGrammar() *grammar.Grammar {
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

func TestValidate_OK(t *testing.T) {
	if err := grammar.Validate(validGrammar()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*grammar.Grammar)
		want   string
	}{
		{
			name:   "missing start",
			mutate: func(g *grammar.Grammar) { g.Start = "" },
			want:   "start rule is required",
		},
		{
			name:   "unknown start",
			mutate: func(g *grammar.Grammar) { g.Start = "nope" },
			want:   `start rule "nope" is not declared`,
		},
		{
			name: "duplicate rule",
			mutate: func(g *grammar.Grammar) {
				g.Rules = append(g.Rules, grammar.Rule{
					Name: "zwoelf", Alternatives: [][]string{{"EINS"}},
				})
			},
			want: `duplicate rule "zwoelf"`,
		},
		{
			name: "undeclared token",
			mutate: func(g *grammar.Grammar) {
				g.Rules[0].Alternatives = append(g.Rules[0].Alternatives, []string{"VIER"})
			},
			want: `undeclared token "VIER"`,
		},
		{
			name: "undeclared rule",
			mutate: func(g *grammar.Grammar) {
				g.Rules[0].Alternatives = append(g.Rules[0].Alternatives, []string{"missing"})
			},
			want: `undeclared rule "missing"`,
		},
		{
			name: "empty alternative",
			mutate: func(g *grammar.Grammar) {
				g.Rules[0].Alternatives = append(g.Rules[0].Alternatives, []string{})
			},
			want: "must not be empty",
		},
		{
			name: "shared literal",
			mutate: func(g *grammar.Grammar) {
				g.Tokens["ONE"] = "1"
			},
			want: `share literal "1"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := validGrammar()
			tc.mutate(g)
			err := grammar.Validate(g)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestSplitSuffix(t *testing.T) {
	cases := []struct{ in, name, suffix string }{
		{"EINS", "EINS", ""},
		{"EINS+", "EINS", "+"},
		{"item*", "item", "*"},
		{"opt?", "opt", "?"},
		{"+", "+", ""}, // single char never splits
	}
	for _, tc := range cases {
		name, suffix := grammar.SplitSuffix(tc.in)
		if name != tc.name || suffix != tc.suffix {
			t.Errorf("SplitSuffix(%q) = (%q, %q), want (%q, %q)", tc.in, name, suffix, tc.name, tc.suffix)
		}
	}
}

func TestLoader_LoadAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.yaml")
	write := func(start string) {
		t.Helper()
		data := "grammar: Mini\nstart: " + start + "\ntokens:\n  A: \"a\"\nrules:\n  - name: top\n    alternatives:\n      - [A]\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("top")

	l, err := grammar.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if got := l.Grammar().Start; got != "top" {
		t.Fatalf("start = %q, want top", got)
	}

	var notified *grammar.Grammar
	l.OnChange(func(g *grammar.Grammar) { notified = g })

	write("top") // same content, forced reload
	if _, err := l.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if notified == nil {
		t.Error("OnChange callback not invoked on Reload")
	}
}
