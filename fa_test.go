package fa

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nihei9/fa/automaton"
	verr "github.com/nihei9/fa/error"
	"github.com/nihei9/fa/lexical/parser"
)

// genInputs returns every string up to the given length over the alphabet of an automaton and one symbol
// outside it.
func genInputs(a *automaton.Automaton, maxLen int) []string {
	syms := []string{"#"}
	for _, sym := range a.Alphabet() {
		syms = append(syms, sym.String())
	}
	inputs := []string{""}
	prev := []string{""}
	for i := 0; i < maxLen; i++ {
		var next []string
		for _, p := range prev {
			for _, sym := range syms {
				next = append(next, p+sym)
			}
		}
		inputs = append(inputs, next...)
		prev = next
	}
	return inputs
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		caption string
		pattern string
		accept  []string
		reject  []string
	}{
		{
			caption: "an alternation in a repetition",
			pattern: "a(b|c)*",
			accept:  []string{"a", "abbcbc"},
			reject:  []string{"", "b"},
		},
		{
			caption: "the classic subset construction example",
			pattern: "(a|b)*abb",
			accept:  []string{"abb", "aabb", "babb", "ababb"},
			reject:  []string{"ab", "abba", "abab"},
		},
		{
			caption: "the empty pattern",
			pattern: "",
			accept:  []string{""},
			reject:  []string{"a", " "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			nfa, err := CompileRegex(tt.pattern)
			require.NoError(t, err)
			dfa := Determinize(nfa)
			require.True(t, dfa.Deterministic())
			for _, a := range []*automaton.Automaton{nfa, dfa} {
				for _, input := range tt.accept {
					require.True(t, Accepts(a, input), "%v must accept %q", a, input)
				}
				for _, input := range tt.reject {
					require.False(t, Accepts(a, input), "%v must reject %q", a, input)
				}
			}
		})
	}

	t.Run("a chain grammar", func(t *testing.T) {
		nfa, err := CompileGrammar(strings.NewReader(`
S = {0, 1, 2, 3}
S0 = {0}
T = {3}
A = {a, b, c}
F(0,a) = {1}
F(1,b) = {2}
F(2,c) = {3}
`))
		require.NoError(t, err)
		dfa := Determinize(nfa)
		for _, input := range genInputs(nfa, 5) {
			require.Equal(t, input == "abc", Accepts(nfa, input), input)
			require.Equal(t, input == "abc", Accepts(dfa, input), input)
		}
	})

	t.Run("union branches with cycles determinize into a finite DFA", func(t *testing.T) {
		nfa, err := CompileRegex("(ab*)*|(ba*)*c")
		require.NoError(t, err)
		dfa := Determinize(nfa)
		require.LessOrEqual(t, dfa.NumStates(), 1<<nfa.NumStates())
		for _, input := range genInputs(nfa, 5) {
			require.Equal(t, Accepts(nfa, input), Accepts(dfa, input), input)
		}
	})
}

func TestProperties(t *testing.T) {
	patterns := []string{
		"a",
		"ab|ε",
		"a*b*",
		"(a|b)*abb",
		"((a|b)(a|b))*",
		"(a*|b*)*c",
		`a\*\(`,
		"a\uFFFDb",
		"",
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			nfa, err := CompileRegex(pattern)
			require.NoError(t, err)
			dfa := Determinize(nfa)
			total := Determinize(nfa, WithDeadState(true))
			again := Determinize(dfa)

			nfaText, err := Export(nfa)
			require.NoError(t, err)
			importedNFA, err := Import(nfaText)
			require.NoError(t, err)
			dfaText, err := Export(dfa)
			require.NoError(t, err)
			importedDFA, err := Import(dfaText)
			require.NoError(t, err)

			closure := nfa.EpsilonClosure(automaton.NewStateSet(nfa.Initial()))
			require.Equal(t, closure.Intersects(nfa.Finals()), Accepts(nfa, ""))

			for _, input := range genInputs(nfa, 4) {
				want := Accepts(nfa, input)
				require.Equal(t, want, Accepts(dfa, input), "determinized: %q", input)
				require.Equal(t, want, Accepts(total, input), "determinized with a dead state: %q", input)
				require.Equal(t, want, Accepts(again, input), "determinized twice: %q", input)
				require.Equal(t, want, Accepts(importedNFA, input), "imported NFA: %q", input)
				require.Equal(t, want, Accepts(importedDFA, input), "imported DFA: %q", input)
			}
			require.False(t, Accepts(dfa, "#"))
		})
	}
}

func TestWithEpsilon(t *testing.T) {
	nfa, err := CompileRegex("a|_", WithEpsilon('_'))
	require.NoError(t, err)
	require.True(t, Accepts(nfa, ""))
	require.True(t, Accepts(nfa, "a"))
	require.False(t, Accepts(nfa, "_"))

	nfa, err = CompileRegex("a|ε", WithEpsilon('_'))
	require.NoError(t, err)
	require.False(t, Accepts(nfa, ""))
	require.True(t, Accepts(nfa, "ε"))
}

func TestErrors(t *testing.T) {
	_, err := CompileRegex("(a")
	var pErr *parser.ParseError
	require.True(t, errors.As(err, &pErr), "%v", err)
	require.Equal(t, parser.UnbalancedParens, pErr.Kind)

	_, err = CompileRegex("a\xffb")
	require.True(t, errors.As(err, &pErr), "%v", err)
	require.Equal(t, parser.UnexpectedToken, pErr.Kind)
	require.Equal(t, 2, pErr.Pos)

	_, err = Import("S = {0}\nS0 = {1}\nT = {}\nA = {}\n")
	var gErrs verr.GrammarErrors
	require.True(t, errors.As(err, &gErrs), "%v", err)
	require.Equal(t, verr.UnknownStateReference, gErrs[0].Kind)
}
