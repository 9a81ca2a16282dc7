package parser

import (
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/grid"
)

// UsedRange trims r to the bounding box of its non-empty cells. The result
// records where the box starts in r. A range without data yields an empty
// range.
func UsedRange(r *grid.Range) *grid.Range {
	minRow, maxRow, minCol, maxCol := findDataBounds(r)
	if minRow < 0 {
		return grid.NewRange(nil)
	}
	return r.Sub(minRow, minCol, maxRow, maxCol)
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(r *grid.Range) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx := 0; rowIdx < r.Height(); rowIdx++ {
		for colIdx := 0; colIdx < r.Width(); colIdx++ {
			cell, ok := r.Get(rowIdx, colIdx)
			if !ok || cell.IsEmpty() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}
