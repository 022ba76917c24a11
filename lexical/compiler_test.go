package lexical

import (
	"errors"
	"testing"

	"github.com/nihei9/fa/automaton"
	psr "github.com/nihei9/fa/lexical/parser"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		caption string
		pattern string
		opts    []CompileOption
		accept  []string
		reject  []string
		kind    psr.ParseErrorKind
	}{
		{
			caption: "a star of an alternation",
			pattern: "a(b|c)*",
			accept:  []string{"a", "abbcbc"},
			reject:  []string{"", "b"},
		},
		{
			caption: "the empty pattern accepts only the empty string",
			pattern: "",
			accept:  []string{""},
			reject:  []string{"a", " "},
		},
		{
			caption: "a custom epsilon sentinel",
			pattern: "a(b|#)",
			opts:    []CompileOption{WithEpsilon('#')},
			accept:  []string{"a", "ab"},
			reject:  []string{"a#", "b"},
		},
		{
			caption: "escaped metacharacters are literals",
			pattern: "\\(a\\|b\\)\\*",
			accept:  []string{"(a|b)*"},
			reject:  []string{"a", "b", ""},
		},
		{
			caption: "unbalanced parentheses",
			pattern: "(ab",
			kind:    psr.UnbalancedParens,
		},
		{
			caption: "a lone star",
			pattern: "*",
			kind:    psr.UnexpectedToken,
		},
		{
			caption: "an empty group",
			pattern: "a()",
			kind:    psr.EmptyPattern,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			n, d, err := CompileDFA(tt.pattern, tt.opts...)
			if tt.kind != "" {
				var parseErr *psr.ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("a parse error is expected; got: %v", err)
				}
				if parseErr.Kind != tt.kind {
					t.Fatalf("unexpected kind; want: %v, got: %v", tt.kind, parseErr.Kind)
				}
				if n != nil || d != nil {
					t.Fatal("no automaton must be returned on an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			for _, a := range []*automaton.Automaton{n, d} {
				for _, s := range tt.accept {
					if !automaton.Accepts(a, s) {
						t.Errorf("%v: %q must be accepted", a, s)
					}
				}
				for _, s := range tt.reject {
					if automaton.Accepts(a, s) {
						t.Errorf("%v: %q must be rejected", a, s)
					}
				}
			}
		})
	}
}

func TestCompileDFA_DeadState(t *testing.T) {
	_, d, err := CompileDFA("ab", WithDeadState(true))
	if err != nil {
		t.Fatal(err)
	}
	if d.NumTransitions() != d.NumStates()*len(d.Alphabet()) {
		t.Fatalf("the DFA must be total; got: %v", d)
	}
}
