package spec

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nihei9/fa/automaton"
)

var stateLabelRE = regexp.MustCompile(`^[0-9A-Z_a-z]+$`)

// Write writes an automaton as grammar text:
//
//	S = {0, 1}
//	S0 = {0}
//	T = {1}
//	A = {a}
//	F(0,a) = {1}
//
// States appear in numeric order, symbols in alphabet order, and transitions from each state list epsilon
// first. When the automaton is a DFA built by subset construction, a comment after the transitions shows the
// NFA states each DFA state stands for. Load reads the text back into an automaton with the same structure.
func Write(w io.Writer, a *automaton.Automaton) error {
	for _, s := range a.States() {
		if !stateLabelRE.MatchString(a.Label(s)) {
			return fmt.Errorf("a state label must consist of [0-9A-Z_a-z]: %q", a.Label(s))
		}
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "S = %v\n", formatStates(a, a.States()))
	fmt.Fprintf(bw, "S0 = %v\n", formatStates(a, []automaton.State{a.Initial()}))
	fmt.Fprintf(bw, "T = %v\n", formatStates(a, a.Finals().States()))
	syms := make([]string, len(a.Alphabet()))
	for i, sym := range a.Alphabet() {
		syms[i] = formatSymbol(sym)
	}
	fmt.Fprintf(bw, "A = {%v}\n", strings.Join(syms, ", "))
	for _, from := range a.States() {
		for _, sym := range a.Symbols(from) {
			fmt.Fprintf(bw, "F(%v,%v) = %v\n", a.Label(from), formatSymbol(sym), formatStates(a, a.Targets(from, sym).States()))
		}
	}

	if a.HasOrigins() {
		for _, s := range a.States() {
			fmt.Fprintf(bw, "// %v = %v\n", a.Label(s), a.OriginString(s))
		}
	}

	return bw.Flush()
}

// Export returns the grammar text Write writes.
func Export(a *automaton.Automaton) (string, error) {
	var b strings.Builder
	err := Write(&b, a)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatStates(a *automaton.Automaton, states []automaton.State) string {
	labels := make([]string, len(states))
	for i, s := range states {
		labels[i] = a.Label(s)
	}
	return "{" + strings.Join(labels, ", ") + "}"
}

func formatSymbol(sym automaton.Symbol) string {
	if sym.IsEpsilon() {
		return automaton.EpsilonText
	}
	return escape(sym.String())
}
