// Package dfa converts an NFA into an equivalent DFA by the subset construction.
package dfa

import (
	"fmt"
	"log/slog"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/logutil"
)

type determinizer struct {
	deadState bool
}

type DeterminizeOption func(d *determinizer)

// WithDeadState makes the DFA total. Every undefined transition enters a non-final state that loops on every
// symbol. The state is added only when some transition needs it.
func WithDeadState() DeterminizeOption {
	return func(d *determinizer) {
		d.deadState = true
	}
}

// composite is a DFA state under construction together with the set of NFA states it stands for.
type composite struct {
	state automaton.State
	set   automaton.StateSet
}

// Determinize returns a DFA recognizing the same language as the NFA.
//
// A DFA state stands for the epsilon closure of a set of NFA states, and two DFA states never stand for the
// same set. The DFA keeps that set as the origin of each state. A DFA state is final iff its set contains a
// final NFA state. States are discovered breadth-first, walking the alphabet in its defined order, so the
// same NFA always yields the same DFA.
//
// The number of DFA states is bounded by 2^n, where n is the number of NFA states, so the construction always
// terminates.
func Determinize(nfa *automaton.Automaton, opts ...DeterminizeOption) *automaton.Automaton {
	d := &determinizer{}
	for _, opt := range opts {
		opt(d)
	}

	alphabet := nfa.Alphabet()
	nfaFinals := nfa.Finals()

	b := automaton.NewDFABuilder()
	for _, sym := range alphabet {
		b.AddSymbol(sym)
	}
	nfaLabels := make([]string, nfa.NumStates())
	for _, s := range nfa.States() {
		nfaLabels[s] = nfa.Label(s)
	}
	b.SetOriginLabels(nfaLabels)

	key2State := map[string]automaton.State{}
	unmarked := linkedlistqueue.New()
	add := func(set automaton.StateSet) automaton.State {
		if s, ok := key2State[set.Key()]; ok {
			return s
		}
		s := b.AddState("")
		key2State[set.Key()] = s
		b.SetOrigin(s, set)
		if set.Intersects(nfaFinals) {
			b.AddFinal(s)
		}
		unmarked.Enqueue(&composite{
			state: s,
			set:   set,
		})
		logutil.Trace("found a composite state", "state", s, "nfa_states", set)
		return s
	}

	initial := add(nfa.EpsilonClosure(automaton.NewStateSet(nfa.Initial())))
	b.SetInitial(initial)

	for !unmarked.Empty() {
		v, _ := unmarked.Dequeue()
		from := v.(*composite)
		for _, sym := range alphabet {
			next := nfa.EpsilonClosure(nfa.Move(from.set, sym))
			if next.Empty() && !d.deadState {
				continue
			}
			// With WithDeadState, the empty set becomes the dead state.
			b.AddTransition(from.state, sym, add(next))
		}
	}

	dfa, err := b.Build()
	if err != nil {
		// The construction satisfies every invariant the builder checks, so an error here is a bug.
		panic(fmt.Errorf("failed to build a DFA: %w", err))
	}
	slog.Debug("determinized an NFA", "nfa_states", nfa.NumStates(), "dfa_states", dfa.NumStates(), "symbols", len(alphabet))
	return dfa
}
