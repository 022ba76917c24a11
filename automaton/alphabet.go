package automaton

import (
	"fmt"
	"strings"
)

// Symbol is a single input character.
type Symbol rune

// Epsilon labels an empty-string transition. It is never a member of an alphabet.
const Epsilon Symbol = -1

// EpsilonText is how Epsilon is written in textual forms.
const EpsilonText = "ε"

func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

func (s Symbol) String() string {
	if s == Epsilon {
		return EpsilonText
	}
	return string(rune(s))
}

// Alphabet is a set of symbols that remembers the order in which the symbols were first added.
// Every iteration over an alphabet follows that order, so every algorithm that walks an alphabet
// produces reproducible output.
type Alphabet struct {
	syms  []Symbol
	index map[Symbol]int
}

func NewAlphabet(syms ...Symbol) *Alphabet {
	a := &Alphabet{
		index: map[Symbol]int{},
	}
	for _, sym := range syms {
		a.Add(sym)
	}
	return a
}

// Add adds a symbol and reports whether it was new. Epsilon is ignored.
func (a *Alphabet) Add(sym Symbol) bool {
	if sym == Epsilon {
		return false
	}
	if _, ok := a.index[sym]; ok {
		return false
	}
	a.index[sym] = len(a.syms)
	a.syms = append(a.syms, sym)
	return true
}

func (a *Alphabet) Contains(sym Symbol) bool {
	_, ok := a.index[sym]
	return ok
}

// Index returns the position at which the symbol was first added.
func (a *Alphabet) Index(sym Symbol) (int, bool) {
	i, ok := a.index[sym]
	return i, ok
}

func (a *Alphabet) Len() int {
	return len(a.syms)
}

func (a *Alphabet) Symbols() []Symbol {
	syms := make([]Symbol, len(a.syms))
	copy(syms, a.syms)
	return syms
}

func (a *Alphabet) clone() *Alphabet {
	return NewAlphabet(a.syms...)
}

func (a *Alphabet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "{")
	for i, sym := range a.syms {
		if i > 0 {
			fmt.Fprintf(&b, ", ")
		}
		fmt.Fprintf(&b, "%v", sym)
	}
	fmt.Fprintf(&b, "}")
	return b.String()
}
