// Package compressor shrinks dense tables of integers, such as DFA transition tables, while keeping
// constant-time lookups.
package compressor

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// DenseTable is a row-major table of integers.
type DenseTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewDenseTable(entries []int, colCount int) (*DenseTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("a table must have at least one entry")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("a column count must be >=1; got: %v", colCount)
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("the entry count is not a multiple of the column count; entries: %v, columns: %v", len(entries), colCount)
	}

	return &DenseTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (t *DenseTable) Size() (int, int) {
	return t.rowCount, t.colCount
}

func (t *DenseTable) row(r int) []int {
	return t.entries[r*t.colCount : (r+1)*t.colCount]
}

// Compressor is a compressed form of a DenseTable. Lookup returns the same value as the original table
// for every valid index.
type Compressor interface {
	Compress(orig *DenseTable) error
	Lookup(row, col int) (int, error)
	OriginalTableSize() (int, int)
}

var (
	_ Compressor = &UniqueRowsTable{}
	_ Compressor = &RowDisplacementTable{}
)

// UniqueRowsTable stores each distinct row once. RowNums maps an original row to its distinct row.
type UniqueRowsTable struct {
	UniqueRows       []int
	RowNums          []int
	OriginalRowCount int
	OriginalColCount int
}

func NewUniqueRowsTable() *UniqueRowsTable {
	return &UniqueRowsTable{}
}

func (tab *UniqueRowsTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return tab.UniqueRows[tab.RowNums[row]*tab.OriginalColCount+col], nil
}

func (tab *UniqueRowsTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

// UniqueRowCount returns the number of distinct rows.
func (tab *UniqueRowsTable) UniqueRowCount() int {
	if tab.OriginalColCount == 0 {
		return 0
	}
	return len(tab.UniqueRows) / tab.OriginalColCount
}

func (tab *UniqueRowsTable) Compress(orig *DenseTable) error {
	var uniqueRows []int
	rowNums := make([]int, orig.rowCount)
	key2RowNum := map[string]int{}
	buf := make([]byte, binary.MaxVarintLen64)
	for r := 0; r < orig.rowCount; r++ {
		row := orig.row(r)
		key := make([]byte, 0, len(row)*2)
		for _, v := range row {
			n := binary.PutVarint(buf, int64(v))
			key = append(key, buf[:n]...)
		}
		num, ok := key2RowNum[string(key)]
		if !ok {
			num = len(key2RowNum)
			key2RowNum[string(key)] = num
			uniqueRows = append(uniqueRows, row...)
		}
		rowNums[r] = num
	}

	tab.UniqueRows = uniqueRows
	tab.RowNums = rowNums
	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount

	return nil
}

// ForbiddenValue marks a slot of RowDisplacementTable.Bounds owned by no row.
const ForbiddenValue = -1

// RowDisplacementTable overlays the rows of a sparse table onto one array. Each row is shifted by its
// displacement so that its non-empty entries land on free slots; Bounds records which row owns a slot.
type RowDisplacementTable struct {
	OriginalRowCount int
	OriginalColCount int
	EmptyValue       int
	Entries          []int
	Bounds           []int
	RowDisplacement  []int
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Lookup(row int, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	i := tab.RowDisplacement[row] + col
	if i >= len(tab.Bounds) || tab.Bounds[i] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[i], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

type sparseRow struct {
	num  int
	cols []int
}

func (tab *RowDisplacementTable) Compress(orig *DenseTable) error {
	rows := make([]sparseRow, orig.rowCount)
	for r := range rows {
		rows[r].num = r
		for c, v := range orig.row(r) {
			if v != tab.EmptyValue {
				rows[r].cols = append(rows[r].cols, c)
			}
		}
	}
	// Placing dense rows first leaves the gaps for sparse rows.
	sort.SliceStable(rows, func(i, j int) bool {
		return len(rows[i].cols) > len(rows[j].cols)
	})

	// A row placed at displacement d never needs a slot beyond d+colCount, and d never exceeds the total
	// width of the rows placed before it.
	size := orig.rowCount * orig.colCount
	entries := make([]int, size)
	bounds := make([]int, size)
	for i := range entries {
		entries[i] = tab.EmptyValue
		bounds[i] = ForbiddenValue
	}
	displacement := make([]int, orig.rowCount)
	used := 0
	d := 0
	for _, row := range rows {
		if len(row.cols) == 0 {
			continue
		}
		for !fits(bounds, d, row.cols) {
			d++
		}
		displacement[row.num] = d
		for _, c := range row.cols {
			entries[d+c] = orig.row(row.num)[c]
			bounds[d+c] = row.num
		}
		if d+orig.colCount > used {
			used = d + orig.colCount
		}
		d++
	}

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = entries[:used]
	tab.Bounds = bounds[:used]
	tab.RowDisplacement = displacement

	return nil
}

func fits(bounds []int, d int, cols []int) bool {
	for _, c := range cols {
		if bounds[d+c] != ForbiddenValue {
			return false
		}
	}
	return true
}
