package grid

// Grid is a read-only rectangular view over cells addressed by zero-based
// row and column.
type Grid interface {
	Width() int
	Height() int
	// Get returns the cell at (row, col). The second result is false when the
	// coordinate has no cell.
	Get(row, col int) (Cell, bool)
}

// Range is a dense, in-memory Grid.
type Range struct {
	startRow, startCol int
	width              int
	rows               [][]Cell
}

// NewRange creates a Range from row-major cells. Rows may have different
// lengths; the width is the length of the longest row.
func NewRange(rows [][]Cell) *Range {
	r := &Range{rows: rows}
	for _, row := range rows {
		if len(row) > r.width {
			r.width = len(row)
		}
	}
	return r
}

// WithStart records the zero-based sheet position of the top-left cell.
func (r *Range) WithStart(row, col int) *Range {
	r.startRow, r.startCol = row, col
	return r
}

// Start returns the zero-based sheet position of the top-left cell.
func (r *Range) Start() (row, col int) {
	return r.startRow, r.startCol
}

// Width returns the number of columns.
func (r *Range) Width() int { return r.width }

// Height returns the number of rows.
func (r *Range) Height() int { return len(r.rows) }

// Get returns the cell at (row, col). Empty cells inside the range are
// reported as present.
func (r *Range) Get(row, col int) (Cell, bool) {
	if row < 0 || col < 0 || row >= len(r.rows) || col >= r.width {
		return Cell{}, false
	}
	if col >= len(r.rows[row]) {
		return Cell{}, false
	}
	return r.rows[row][col], true
}

// Set stores a cell, growing the range as needed.
func (r *Range) Set(row, col int, c Cell) {
	for len(r.rows) <= row {
		r.rows = append(r.rows, nil)
	}
	if len(r.rows[row]) <= col {
		grown := make([]Cell, col+1)
		copy(grown, r.rows[row])
		r.rows[row] = grown
	}
	r.rows[row][col] = c
	if col+1 > r.width {
		r.width = col + 1
	}
}

// Sub returns the inclusive sub-range [r0, r1] x [c0, c1]. Bounds are clamped
// to the range; the returned Range shares no storage with r.
func (r *Range) Sub(r0, c0, r1, c1 int) *Range {
	r0, c0 = max(r0, 0), max(c0, 0)
	r1, c1 = min(r1, len(r.rows)-1), min(c1, r.width-1)
	sub := &Range{startRow: r.startRow + r0, startCol: r.startCol + c0}
	if r0 > r1 || c0 > c1 {
		return sub
	}
	sub.width = c1 - c0 + 1
	sub.rows = make([][]Cell, 0, r1-r0+1)
	for i := r0; i <= r1; i++ {
		row := make([]Cell, sub.width)
		for j := c0; j <= c1; j++ {
			row[j-c0], _ = r.Get(i, j)
		}
		sub.rows = append(sub.rows, row)
	}
	return sub
}
