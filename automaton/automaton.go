// Package automaton provides the finite automaton shared by the NFA and DFA forms, its builder,
// and the simulator deciding membership of input strings.
package automaton

import (
	"fmt"
	"strconv"
	"strings"
)

// Automaton is an immutable finite automaton. An NFA may have epsilon transitions and any number of
// destinations per (state, symbol) pair. A DFA has no epsilon transitions and at most one destination
// per pair; transitions left undefined reject the input.
//
// Automata are created only through a Builder, which checks every invariant, so an *Automaton value is
// always complete and consistent.
type Automaton struct {
	deterministic bool
	labels        []string
	label2State   map[string]State
	alphabet      *Alphabet
	initial       State
	finals        StateSet
	transitions   []map[Symbol]StateSet

	// origins holds, for each DFA state built by subset construction, the set of NFA states it stands for.
	origins []StateSet

	// originLabels holds the labels of the NFA states the origins refer to.
	originLabels []string
}

func (a *Automaton) Deterministic() bool {
	return a.deterministic
}

func (a *Automaton) NumStates() int {
	return len(a.labels)
}

// States returns all states in ascending order.
func (a *Automaton) States() []State {
	states := make([]State, len(a.labels))
	for i := range states {
		states[i] = State(i)
	}
	return states
}

func (a *Automaton) validState(s State) bool {
	return s >= 0 && int(s) < len(a.labels)
}

func (a *Automaton) Label(s State) string {
	if !a.validState(s) {
		return fmt.Sprintf("<invalid state %v>", int(s))
	}
	return a.labels[s]
}

func (a *Automaton) StateByLabel(label string) (State, bool) {
	s, ok := a.label2State[label]
	return s, ok
}

// Alphabet returns the symbols in their defined order.
func (a *Automaton) Alphabet() []Symbol {
	return a.alphabet.Symbols()
}

func (a *Automaton) HasSymbol(sym Symbol) bool {
	return a.alphabet.Contains(sym)
}

func (a *Automaton) Initial() State {
	return a.initial
}

func (a *Automaton) Finals() StateSet {
	return a.finals
}

func (a *Automaton) IsFinal(s State) bool {
	return a.finals.Contains(s)
}

// Targets returns the destinations of the transitions from s on sym. sym may be Epsilon.
func (a *Automaton) Targets(s State, sym Symbol) StateSet {
	if !a.validState(s) {
		return StateSet{}
	}
	return a.transitions[s][sym]
}

// Next returns the only destination of the transition from s on sym. It reports false when the
// transition is undefined or, in an NFA, has several destinations.
func (a *Automaton) Next(s State, sym Symbol) (State, bool) {
	to := a.Targets(s, sym)
	if to.Len() != 1 {
		return 0, false
	}
	return to.s[0], true
}

// Symbols returns the symbols having at least one transition from s. Epsilon comes first when present,
// the others follow the alphabet order.
func (a *Automaton) Symbols(s State) []Symbol {
	if !a.validState(s) {
		return nil
	}
	tab := a.transitions[s]
	var syms []Symbol
	if _, ok := tab[Epsilon]; ok {
		syms = append(syms, Epsilon)
	}
	for _, sym := range a.alphabet.syms {
		if _, ok := tab[sym]; ok {
			syms = append(syms, sym)
		}
	}
	return syms
}

func (a *Automaton) HasEpsilonTransitions() bool {
	for _, tab := range a.transitions {
		if _, ok := tab[Epsilon]; ok {
			return true
		}
	}
	return false
}

// NumTransitions returns the number of populated (state, symbol) pairs.
func (a *Automaton) NumTransitions() int {
	n := 0
	for _, tab := range a.transitions {
		n += len(tab)
	}
	return n
}

// Origin returns the set of NFA states a DFA state was constructed from.
func (a *Automaton) Origin(s State) (StateSet, bool) {
	if a.origins == nil || !a.validState(s) {
		return StateSet{}, false
	}
	return a.origins[s], true
}

func (a *Automaton) HasOrigins() bool {
	return a.origins != nil
}

// OriginString formats the origin of a DFA state with the labels of its NFA states, such as {q0, q2}.
// States whose labels are unknown are shown by number.
func (a *Automaton) OriginString(s State) string {
	origin, ok := a.Origin(s)
	if !ok {
		return "{}"
	}
	labels := make([]string, 0, origin.Len())
	for _, o := range origin.States() {
		if int(o) < len(a.originLabels) {
			labels = append(labels, a.originLabels[o])
		} else {
			labels = append(labels, strconv.Itoa(o.Int()))
		}
	}
	return "{" + strings.Join(labels, ", ") + "}"
}

func (a *Automaton) String() string {
	kind := "NFA"
	if a.deterministic {
		kind = "DFA"
	}
	return fmt.Sprintf("%v: %v states, %v symbols, %v transitions", kind, a.NumStates(), a.alphabet.Len(), a.NumTransitions())
}
