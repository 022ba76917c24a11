package automaton

import (
	"fmt"
	"strconv"
)

// InvariantError reports an automaton that violates a structural invariant.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invalid automaton: %v", e.Reason)
}

func invariantErrorf(format string, a ...interface{}) *InvariantError {
	return &InvariantError{
		Reason: fmt.Sprintf(format, a...),
	}
}

type transition struct {
	from State
	sym  Symbol
	to   []State
}

// Builder collects the parts of an automaton. Build checks the invariants and returns an immutable
// automaton; a Builder may be discarded after an error without leaving anything half-built.
type Builder struct {
	deterministic bool
	labels        []string
	alphabet      *Alphabet
	initial       State
	hasInitial    bool
	finals        []State
	transitions   []transition
	origins       map[State]StateSet
	originLabels  []string
}

func NewNFABuilder() *Builder {
	return &Builder{
		alphabet: NewAlphabet(),
	}
}

func NewDFABuilder() *Builder {
	return &Builder{
		deterministic: true,
		alphabet:      NewAlphabet(),
	}
}

// AddState adds a new state. An empty label is replaced with the state number.
func (b *Builder) AddState(label string) State {
	s := State(len(b.labels))
	if label == "" {
		label = strconv.Itoa(s.Int())
	}
	b.labels = append(b.labels, label)
	return s
}

func (b *Builder) NumStates() int {
	return len(b.labels)
}

func (b *Builder) AddSymbol(sym Symbol) {
	b.alphabet.Add(sym)
}

func (b *Builder) SetInitial(s State) {
	b.initial = s
	b.hasInitial = true
}

func (b *Builder) AddFinal(s State) {
	b.finals = append(b.finals, s)
}

// AddTransition adds destinations to the transition from `from` on sym. Calling it with no destination
// leaves the transition undefined.
func (b *Builder) AddTransition(from State, sym Symbol, to ...State) {
	if len(to) == 0 {
		return
	}
	b.transitions = append(b.transitions, transition{
		from: from,
		sym:  sym,
		to:   append([]State{}, to...),
	})
}

// SetOrigin records the set of NFA states a DFA state stands for.
func (b *Builder) SetOrigin(s State, origin StateSet) {
	if b.origins == nil {
		b.origins = map[State]StateSet{}
	}
	b.origins[s] = origin
}

// SetOriginLabels records the labels of the NFA the origins refer to, indexed by NFA state number.
func (b *Builder) SetOriginLabels(labels []string) {
	b.originLabels = append([]string{}, labels...)
}

func (b *Builder) validState(s State) bool {
	return s >= 0 && int(s) < len(b.labels)
}

func (b *Builder) Build() (*Automaton, error) {
	if len(b.labels) == 0 {
		return nil, invariantErrorf("an automaton must have at least one state")
	}

	label2State := make(map[string]State, len(b.labels))
	for i, l := range b.labels {
		if prev, ok := label2State[l]; ok {
			return nil, invariantErrorf("states %v and %v have the same label %q", int(prev), i, l)
		}
		label2State[l] = State(i)
	}

	if !b.hasInitial {
		return nil, invariantErrorf("an initial state is not set")
	}
	if !b.validState(b.initial) {
		return nil, invariantErrorf("the initial state %v is not a member of the states", int(b.initial))
	}

	for _, f := range b.finals {
		if !b.validState(f) {
			return nil, invariantErrorf("the final state %v is not a member of the states", int(f))
		}
	}

	tabs := make([]map[Symbol]StateSet, len(b.labels))
	for i := range tabs {
		tabs[i] = map[Symbol]StateSet{}
	}
	for _, t := range b.transitions {
		if !b.validState(t.from) {
			return nil, invariantErrorf("a transition leaves the unknown state %v", int(t.from))
		}
		if t.sym == Epsilon {
			if b.deterministic {
				return nil, invariantErrorf("a DFA cannot have an epsilon transition; state: %v", b.labels[t.from])
			}
		} else if !b.alphabet.Contains(t.sym) {
			return nil, invariantErrorf("a transition from %v uses the symbol %q missing from the alphabet", b.labels[t.from], string(rune(t.sym)))
		}
		for _, to := range t.to {
			if !b.validState(to) {
				return nil, invariantErrorf("a transition from %v on %v enters the unknown state %v", b.labels[t.from], t.sym, int(to))
			}
		}
		tabs[t.from][t.sym] = tabs[t.from][t.sym].Union(NewStateSet(t.to...))
	}
	if b.deterministic {
		for from, tab := range tabs {
			for sym, to := range tab {
				if to.Len() > 1 {
					return nil, invariantErrorf("a DFA transition must have at most one destination; state: %v, symbol: %v, destinations: %v", b.labels[from], sym, to)
				}
			}
		}
	}

	var origins []StateSet
	if len(b.origins) > 0 {
		origins = make([]StateSet, len(b.labels))
		for s, o := range b.origins {
			if !b.validState(s) {
				return nil, invariantErrorf("an origin is attached to the unknown state %v", int(s))
			}
			origins[s] = o
			for _, n := range o.States() {
				if b.originLabels != nil && int(n) >= len(b.originLabels) {
					return nil, invariantErrorf("the origin of %v refers to the unknown NFA state %v", b.labels[s], int(n))
				}
			}
		}
	}

	return &Automaton{
		deterministic: b.deterministic,
		labels:        append([]string{}, b.labels...),
		label2State:   label2State,
		alphabet:      b.alphabet.clone(),
		initial:       b.initial,
		finals:        NewStateSet(b.finals...),
		transitions:   tabs,
		origins:       origins,
		originLabels:  b.originLabels,
	}, nil
}
