// Package lexer turns plain input text into a token stream using the
// grammar's literal token definitions. Longest literal wins; whitespace
// separates tokens but is otherwise ignored.
package lexer

import (
	"fmt"
	"sort"
	"unicode"
)

// Token is one matched piece of input with its lexical classification.
type Token struct {
	Index   int    // position in the token stream
	Type    string // token name, e.g. "EINS"; empty for unrecognized input
	Literal string // the matched text, e.g. "1"
	Start   int    // byte offset in the input
	Stop    int    // byte offset one past the end
}

// String renders a token the way the debugger displays it: NAME ('literal').
func (t Token) String() string {
	if t.Type == "" {
		return fmt.Sprintf("?? (%q)", t.Literal)
	}
	return fmt.Sprintf("%s ('%s')", t.Type, t.Literal)
}

// Lex scans input against the token table (name → literal). A stretch of
// input no literal matches becomes a single-rune Token with empty Type, so
// the parser sees it and fails at the decision instead of the lexer aborting
// the whole session.
func Lex(input string, tokens map[string]string) []Token {
	// Longest literal first so "12" beats "1" at the same offset.
	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		li, lj := tokens[names[i]], tokens[names[j]]
		if len(li) != len(lj) {
			return len(li) > len(lj)
		}
		return names[i] < names[j]
	})

	var out []Token
	pos := 0
	for pos < len(input) {
		if unicode.IsSpace(rune(input[pos])) {
			pos++
			continue
		}
		matched := false
		for _, name := range names {
			lit := tokens[name]
			if len(lit) <= len(input)-pos && input[pos:pos+len(lit)] == lit {
				out = append(out, Token{
					Index:   len(out),
					Type:    name,
					Literal: lit,
					Start:   pos,
					Stop:    pos + len(lit),
				})
				pos += len(lit)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, Token{
				Index:   len(out),
				Literal: input[pos : pos+1],
				Start:   pos,
				Stop:    pos + 1,
			})
			pos++
		}
	}
	return out
}

// Literals renders just the literal texts of a token slice, for the
// consumed/remaining input views.
func Literals(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Literal
	}
	return out
}
