// Package lexical compiles patterns into automata. The pipeline parses a pattern into a syntax tree and
// compiles the tree into an NFA by Thompson's construction.
package lexical

import (
	"strings"

	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/lexical/dfa"
	"github.com/nihei9/fa/lexical/nfa"
	psr "github.com/nihei9/fa/lexical/parser"
)

type compileConfig struct {
	epsilon   rune
	deadState bool
}

type CompileOption func(c *compileConfig)

// WithEpsilon changes the character a pattern uses to write the empty string.
func WithEpsilon(r rune) CompileOption {
	return func(c *compileConfig) {
		c.epsilon = r
	}
}

// WithDeadState makes CompileDFA produce a total DFA.
func WithDeadState(dead bool) CompileOption {
	return func(c *compileConfig) {
		c.deadState = dead
	}
}

func newCompileConfig(opts []CompileOption) *compileConfig {
	c := &compileConfig{
		epsilon: psr.DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile returns an NFA recognizing the language of a pattern. A malformed pattern results in a
// *parser.ParseError and no automaton.
func Compile(pattern string, opts ...CompileOption) (*automaton.Automaton, error) {
	c := newCompileConfig(opts)
	root, err := psr.NewParser(strings.NewReader(pattern), psr.EpsilonSentinel(c.epsilon)).Parse()
	if err != nil {
		return nil, err
	}
	return nfa.Compile(root)
}

// CompileDFA compiles a pattern and determinizes the NFA.
func CompileDFA(pattern string, opts ...CompileOption) (*automaton.Automaton, *automaton.Automaton, error) {
	c := newCompileConfig(opts)
	n, err := Compile(pattern, opts...)
	if err != nil {
		return nil, nil, err
	}
	var dOpts []dfa.DeterminizeOption
	if c.deadState {
		dOpts = append(dOpts, dfa.WithDeadState())
	}
	return n, dfa.Determinize(n, dOpts...), nil
}
