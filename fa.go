// Package fa turns regular expressions and grammar text into finite automata and answers whether an
// automaton accepts a string.
//
// A pattern compiles into an NFA by Thompson's construction, and Determinize converts any NFA into an
// equivalent DFA by subset construction. Export writes an automaton as grammar text, and Import reads that
// text back. Every operation returns a new immutable automaton; none of them keeps state between calls.
package fa

import (
	"io"
	"strings"

	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/envconfig"
	"github.com/nihei9/fa/lexical"
	"github.com/nihei9/fa/lexical/dfa"
	"github.com/nihei9/fa/spec"
)

type config struct {
	epsilon   rune
	deadState bool
}

// Option changes a setting whose default comes from the environment (see envconfig).
type Option func(c *config)

// WithEpsilon sets the character a pattern uses to write the empty string.
func WithEpsilon(r rune) Option {
	return func(c *config) {
		c.epsilon = r
	}
}

// WithDeadState sets whether Determinize adds an explicit non-final sink state.
func WithDeadState(dead bool) Option {
	return func(c *config) {
		c.deadState = dead
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		epsilon:   envconfig.Epsilon,
		deadState: envconfig.DeadState,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompileRegex compiles a pattern into an NFA. A malformed pattern results in a *parser.ParseError.
func CompileRegex(pattern string, opts ...Option) (*automaton.Automaton, error) {
	c := newConfig(opts)
	return lexical.Compile(pattern, lexical.WithEpsilon(c.epsilon))
}

// CompileGrammar builds an NFA from grammar text. Malformed text results in verr.GrammarErrors.
func CompileGrammar(src io.Reader, opts ...spec.LoadOption) (*automaton.Automaton, error) {
	return spec.Load(src, opts...)
}

// Determinize returns a DFA recognizing the same language as an automaton. Determinizing a DFA is allowed
// and yields an equivalent DFA.
func Determinize(a *automaton.Automaton, opts ...Option) *automaton.Automaton {
	c := newConfig(opts)
	var dOpts []dfa.DeterminizeOption
	if c.deadState {
		dOpts = append(dOpts, dfa.WithDeadState())
	}
	return dfa.Determinize(a, dOpts...)
}

// Accepts reports whether an automaton accepts the input. A character outside the alphabet rejects the
// input.
func Accepts(a *automaton.Automaton, input string) bool {
	return automaton.Accepts(a, input)
}

// Export returns an automaton as grammar text.
func Export(a *automaton.Automaton) (string, error) {
	return spec.Export(a)
}

// Import reads grammar text Export produced. The result is always an NFA, even when the text describes a
// DFA; Determinize it to get a DFA back.
func Import(text string) (*automaton.Automaton, error) {
	return spec.Load(strings.NewReader(text))
}
