package dfa

import (
	"fmt"

	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/compressor"
)

// Table is a DFA flattened into a state-by-symbol table. Row i stands for the DFA state i-1; row 0 is
// reserved because 0 in the table means that no transition is defined. The table is stored compressed: the
// distinct rows are overlaid by row displacement.
type Table struct {
	Alphabet        []automaton.Symbol
	InitialState    int
	AcceptingStates []bool
	RowCount        int
	ColCount        int

	sym2Col    map[automaton.Symbol]int
	uniqueRows *compressor.UniqueRowsTable
	rows       *compressor.RowDisplacementTable
}

func GenTable(dfa *automaton.Automaton) (*Table, error) {
	if !dfa.Deterministic() {
		return nil, fmt.Errorf("a transition table can be generated only from a DFA")
	}

	alphabet := dfa.Alphabet()
	sym2Col := make(map[automaton.Symbol]int, len(alphabet))
	for i, sym := range alphabet {
		sym2Col[sym] = i
	}

	rowCount := dfa.NumStates() + 1
	colCount := len(alphabet)
	acc := make([]bool, rowCount)
	tran := make([]int, rowCount*colCount)
	for _, s := range dfa.States() {
		row := stateToRow(s)
		acc[row] = dfa.IsFinal(s)
		for _, sym := range dfa.Symbols(s) {
			to, ok := dfa.Next(s, sym)
			if !ok {
				continue
			}
			tran[row*colCount+sym2Col[sym]] = stateToRow(to)
		}
	}

	tab := &Table{
		Alphabet:        alphabet,
		InitialState:    stateToRow(dfa.Initial()),
		AcceptingStates: acc,
		RowCount:        rowCount,
		ColCount:        colCount,
		sym2Col:         sym2Col,
	}
	if colCount == 0 {
		return tab, nil
	}

	ueTab := compressor.NewUniqueRowsTable()
	{
		orig, err := compressor.NewDenseTable(tran, colCount)
		if err != nil {
			return nil, err
		}
		err = ueTab.Compress(orig)
		if err != nil {
			return nil, err
		}
	}
	rdTab := compressor.NewRowDisplacementTable(0)
	{
		orig, err := compressor.NewDenseTable(ueTab.UniqueRows, colCount)
		if err != nil {
			return nil, err
		}
		err = rdTab.Compress(orig)
		if err != nil {
			return nil, err
		}
	}
	tab.uniqueRows = ueTab
	tab.rows = rdTab

	return tab, nil
}

func stateToRow(s automaton.State) int {
	return s.Int() + 1
}

// Next returns the row reached from a row on a symbol. It reports false when the transition is undefined or
// the symbol is outside the alphabet.
func (t *Table) Next(row int, sym automaton.Symbol) (int, bool) {
	col, ok := t.sym2Col[sym]
	if !ok || t.rows == nil || row <= 0 || row >= t.RowCount {
		return 0, false
	}
	next, err := t.rows.Lookup(t.uniqueRows.RowNums[row], col)
	if err != nil || next == 0 {
		return 0, false
	}
	return next, true
}

// State returns the DFA state a row stands for.
func (t *Table) State(row int) automaton.State {
	return automaton.State(row - 1)
}

func (t *Table) Accepts(input string) bool {
	row := t.InitialState
	for _, r := range input {
		next, ok := t.Next(row, automaton.Symbol(r))
		if !ok {
			return false
		}
		row = next
	}
	return t.AcceptingStates[row]
}

// CompressedSize returns the number of transition entries the table stores.
func (t *Table) CompressedSize() int {
	if t.rows == nil {
		return 0
	}
	return len(t.rows.Entries)
}
