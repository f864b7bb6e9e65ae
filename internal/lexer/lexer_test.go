package lexer_test

import (
	"reflect"
	"testing"

	"github.com/HisQu/paredros-debugger/internal/lexer"
)

var abcTokens = map[string]string{
	"EINS": "1",
	"ZWEI": "2",
	"DREI": "3",
}

func types(toks []lexer.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLex_Basic(t *testing.T) {
	toks := lexer.Lex("123", abcTokens)
	if got, want := types(toks), []string{"EINS", "ZWEI", "DREI"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	for i, tok := range toks {
		if tok.Index != i {
			t.Errorf("token %d has Index %d", i, tok.Index)
		}
	}
	if toks[2].Start != 2 || toks[2].Stop != 3 {
		t.Errorf("offsets = [%d,%d), want [2,3)", toks[2].Start, toks[2].Stop)
	}
}

func TestLex_SkipsWhitespace(t *testing.T) {
	toks := lexer.Lex(" 1\t2\n3 ", abcTokens)
	if got, want := types(toks), []string{"EINS", "ZWEI", "DREI"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
}

func TestLex_LongestLiteralWins(t *testing.T) {
	table := map[string]string{"ONE": "1", "ONETWO": "12"}
	toks := lexer.Lex("121", table)
	if got, want := types(toks), []string{"ONETWO", "ONE"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
}

func TestLex_UnknownInputBecomesUntypedToken(t *testing.T) {
	toks := lexer.Lex("14", abcTokens)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	bad := toks[1]
	if bad.Type != "" || bad.Literal != "4" {
		t.Fatalf("unknown token = %+v, want empty type with literal %q", bad, "4")
	}
	if got, want := bad.String(), `?? ("4")`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestToken_String(t *testing.T) {
	tok := lexer.Token{Type: "EINS", Literal: "1"}
	if got, want := tok.String(), "EINS ('1')"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLiterals(t *testing.T) {
	toks := lexer.Lex("31", abcTokens)
	if got, want := lexer.Literals(toks), []string{"3", "1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Literals = %v, want %v", got, want)
	}
}
