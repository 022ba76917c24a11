// Package nfa compiles a syntax tree into an NFA by Thompson's construction.
package nfa

import (
	"fmt"
	"log/slog"

	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/lexical/parser"
)

// fragment is a partial automaton with one entry state and one exit state. Nothing leaves the exit
// state until the fragment is composed into a larger one.
type fragment struct {
	start  automaton.State
	accept automaton.State
}

type compiler struct {
	b *automaton.Builder
}

// Compile returns an NFA recognizing the language of a tree. The alphabet lists the symbols in the order they
// appear in the tree. States are numbered in creation order, so the same tree always yields the same NFA.
func Compile(root parser.Node) (*automaton.Automaton, error) {
	b := automaton.NewNFABuilder()
	for _, sym := range parser.CollectAlphabet(root).Symbols() {
		b.AddSymbol(sym)
	}
	c := &compiler{
		b: b,
	}
	frag := c.compile(root)
	b.SetInitial(frag.start)
	b.AddFinal(frag.accept)
	nfa, err := b.Build()
	if err != nil {
		return nil, err
	}
	slog.Debug("compiled an NFA", "states", nfa.NumStates(), "symbols", len(nfa.Alphabet()), "transitions", nfa.NumTransitions())
	return nfa, nil
}

func (c *compiler) compile(n parser.Node) fragment {
	switch n := n.(type) {
	case *parser.SymbolNode:
		start := c.b.AddState("")
		accept := c.b.AddState("")
		c.b.AddTransition(start, n.Symbol, accept)
		return fragment{
			start:  start,
			accept: accept,
		}
	case *parser.ConcatNode:
		left := c.compile(n.Left)
		right := c.compile(n.Right)
		c.b.AddTransition(left.accept, automaton.Epsilon, right.start)
		return fragment{
			start:  left.start,
			accept: right.accept,
		}
	case *parser.AltNode:
		start := c.b.AddState("")
		left := c.compile(n.Left)
		right := c.compile(n.Right)
		accept := c.b.AddState("")
		c.b.AddTransition(start, automaton.Epsilon, left.start, right.start)
		c.b.AddTransition(left.accept, automaton.Epsilon, accept)
		c.b.AddTransition(right.accept, automaton.Epsilon, accept)
		return fragment{
			start:  start,
			accept: accept,
		}
	case *parser.StarNode:
		start := c.b.AddState("")
		inner := c.compile(n.Inner)
		accept := c.b.AddState("")
		c.b.AddTransition(start, automaton.Epsilon, inner.start, accept)
		c.b.AddTransition(inner.accept, automaton.Epsilon, inner.start, accept)
		return fragment{
			start:  start,
			accept: accept,
		}
	case *parser.EmptyNode:
		s := c.b.AddState("")
		return fragment{
			start:  s,
			accept: s,
		}
	}
	panic(fmt.Errorf("unknown node: %T", n))
}
