package automaton

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is a serializable form of an automaton. Symbols are one-character strings, and the empty string
// stands for Epsilon.
type Snapshot struct {
	Deterministic bool                  `json:"deterministic" cbor:"1,keyasint"`
	States        []string              `json:"states" cbor:"2,keyasint"`
	Alphabet      []string              `json:"alphabet" cbor:"3,keyasint"`
	Initial       int                   `json:"initial" cbor:"4,keyasint"`
	Finals        []int                 `json:"finals" cbor:"5,keyasint"`
	Transitions   []*SnapshotTransition `json:"transitions" cbor:"6,keyasint"`
	Origins       [][]int               `json:"origins,omitempty" cbor:"7,keyasint,omitempty"`
	OriginLabels  []string              `json:"origin_labels,omitempty" cbor:"8,keyasint,omitempty"`
}

type SnapshotTransition struct {
	From   int    `json:"from" cbor:"1,keyasint"`
	Symbol string `json:"symbol" cbor:"2,keyasint"`
	To     []int  `json:"to" cbor:"3,keyasint"`
}

func (a *Automaton) Snapshot() *Snapshot {
	snap := &Snapshot{
		Deterministic: a.deterministic,
		States:        append([]string{}, a.labels...),
		Alphabet:      []string{},
		Initial:       a.initial.Int(),
		Finals:        statesToInts(a.finals.s),
		Transitions:   []*SnapshotTransition{},
	}
	for _, sym := range a.alphabet.syms {
		snap.Alphabet = append(snap.Alphabet, sym.String())
	}
	for _, from := range a.States() {
		for _, sym := range a.Symbols(from) {
			text := ""
			if sym != Epsilon {
				text = sym.String()
			}
			snap.Transitions = append(snap.Transitions, &SnapshotTransition{
				From:   from.Int(),
				Symbol: text,
				To:     statesToInts(a.Targets(from, sym).s),
			})
		}
	}
	if a.origins != nil {
		snap.Origins = make([][]int, len(a.origins))
		for i, o := range a.origins {
			snap.Origins[i] = statesToInts(o.s)
		}
		snap.OriginLabels = append([]string{}, a.originLabels...)
	}
	return snap
}

// FromSnapshot rebuilds an automaton, checking the same invariants as Builder.Build.
func FromSnapshot(snap *Snapshot) (*Automaton, error) {
	var b *Builder
	if snap.Deterministic {
		b = NewDFABuilder()
	} else {
		b = NewNFABuilder()
	}
	for _, l := range snap.States {
		b.AddState(l)
	}
	for _, text := range snap.Alphabet {
		sym, err := decodeSymbol(text)
		if err != nil {
			return nil, err
		}
		if sym == Epsilon {
			return nil, invariantErrorf("an alphabet cannot contain epsilon")
		}
		b.AddSymbol(sym)
	}
	b.SetInitial(State(snap.Initial))
	for _, f := range snap.Finals {
		b.AddFinal(State(f))
	}
	for _, t := range snap.Transitions {
		sym, err := decodeSymbol(t.Symbol)
		if err != nil {
			return nil, err
		}
		b.AddTransition(State(t.From), sym, intsToStates(t.To)...)
	}
	for i, o := range snap.Origins {
		b.SetOrigin(State(i), NewStateSet(intsToStates(o)...))
	}
	if len(snap.OriginLabels) > 0 {
		b.SetOriginLabels(snap.OriginLabels)
	}
	return b.Build()
}

func MarshalJSON(a *Automaton) ([]byte, error) {
	return json.Marshal(a.Snapshot())
}

func UnmarshalJSON(data []byte) (*Automaton, error) {
	snap := &Snapshot{}
	err := json.Unmarshal(data, snap)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap)
}

func MarshalCBOR(a *Automaton) ([]byte, error) {
	return cbor.Marshal(a.Snapshot())
}

func UnmarshalCBOR(data []byte) (*Automaton, error) {
	snap := &Snapshot{}
	err := cbor.Unmarshal(data, snap)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap)
}

func decodeSymbol(text string) (Symbol, error) {
	if text == "" {
		return Epsilon, nil
	}
	r, size := utf8.DecodeRuneInString(text)
	if (r == utf8.RuneError && size == 1) || size != len(text) {
		return Epsilon, invariantErrorf("a symbol must be exactly one character: %q", text)
	}
	return Symbol(r), nil
}

func statesToInts(states []State) []int {
	ns := make([]int, len(states))
	for i, s := range states {
		ns[i] = s.Int()
	}
	return ns
}

func intsToStates(ns []int) []State {
	states := make([]State, len(ns))
	for i, n := range ns {
		states[i] = State(n)
	}
	return states
}
