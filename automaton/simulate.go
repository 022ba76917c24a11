package automaton

// Accepts reports whether the automaton accepts the input. Each rune of the input is one symbol.
//
// A DFA follows one transition per symbol and rejects as soon as a transition is undefined. An NFA keeps the
// epsilon closure of the set of active states. In both forms a symbol outside the alphabet rejects the input,
// and the empty input is accepted iff the initial state (or its closure) is final.
func Accepts(a *Automaton, input string) bool {
	return AcceptsSymbols(a, toSymbols(input))
}

func AcceptsSymbols(a *Automaton, input []Symbol) bool {
	if a.deterministic {
		return acceptsDeterministically(a, input)
	}
	active := a.EpsilonClosure(NewStateSet(a.initial))
	for _, sym := range input {
		if !a.alphabet.Contains(sym) {
			return false
		}
		active = a.EpsilonClosure(a.Move(active, sym))
		if active.Empty() {
			return false
		}
	}
	return active.Intersects(a.finals)
}

func acceptsDeterministically(a *Automaton, input []Symbol) bool {
	s := a.initial
	for _, sym := range input {
		if !a.alphabet.Contains(sym) {
			return false
		}
		next, ok := a.Next(s, sym)
		if !ok {
			return false
		}
		s = next
	}
	return a.finals.Contains(s)
}

// Step is a snapshot of a simulation after consuming one symbol.
type Step struct {
	// Pos is the number of symbols consumed so far. The first step, taken before consuming anything, has Pos 0.
	Pos int

	// Symbol is the symbol consumed to reach this step. It is Epsilon for the first step.
	Symbol Symbol

	// Active is the set of active states. An empty set means the input has been rejected.
	Active StateSet
}

// Trace simulates the automaton on the input and returns every intermediate set of active states. The trace
// stops at the first step whose active set is empty.
func Trace(a *Automaton, input string) []Step {
	active := a.EpsilonClosure(NewStateSet(a.initial))
	steps := []Step{
		{
			Pos:    0,
			Symbol: Epsilon,
			Active: active,
		},
	}
	for i, sym := range toSymbols(input) {
		if a.alphabet.Contains(sym) {
			active = a.EpsilonClosure(a.Move(active, sym))
		} else {
			active = StateSet{}
		}
		steps = append(steps, Step{
			Pos:    i + 1,
			Symbol: sym,
			Active: active,
		})
		if active.Empty() {
			break
		}
	}
	return steps
}

// Accepted reports whether the last step of a trace contains a final state.
func Accepted(a *Automaton, steps []Step) bool {
	if len(steps) == 0 {
		return false
	}
	return steps[len(steps)-1].Active.Intersects(a.finals)
}

func toSymbols(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, Symbol(r))
	}
	return syms
}
