package automaton

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteDOT writes a Graphviz representation of the automaton. Edges between the same pair of states are
// merged into one edge whose label lists the symbols.
func WriteDOT(w io.Writer, a *Automaton) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	fmt.Fprintln(bw, "    _start [shape=point];")
	for _, s := range a.States() {
		shape := "circle"
		if a.IsFinal(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    s%v [label=%v, shape=%v];\n", s, strconv.Quote(a.Label(s)), shape)
	}
	fmt.Fprintf(bw, "    _start -> s%v;\n", a.initial)
	for _, from := range a.States() {
		var order []State
		labels := map[State][]string{}
		for _, sym := range a.Symbols(from) {
			for _, to := range a.Targets(from, sym).s {
				if _, ok := labels[to]; !ok {
					order = append(order, to)
				}
				labels[to] = append(labels[to], sym.String())
			}
		}
		for _, to := range order {
			fmt.Fprintf(bw, "    s%v -> s%v [label=%v];\n", from, to, strconv.Quote(strings.Join(labels[to], ",")))
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
