package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Area is an inclusive, zero-based cell rectangle.
type Area struct {
	R1, C1 int
	R2, C2 int
}

// ParseRange parses a range reference like B2:E40, $B$2:$E$40 or
// 'Sheet 1'!B2:E40 into an Area. A single cell reference selects one cell.
func ParseRange(ref string) (Area, error) {
	rangeStr := strings.TrimSpace(ref)
	// Drop a sheet qualifier
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		rangeStr = rangeStr[idx+1:]
	}
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Area{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Area{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Area{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	if endRow < startRow || endCol < startCol {
		return Area{}, fmt.Errorf("invalid range %q: end before start", ref)
	}

	return Area{
		R1: startRow - 1,
		C1: startCol - 1,
		R2: endRow - 1,
		C2: endCol - 1,
	}, nil
}

func (a Area) String() string {
	start, _ := excelize.CoordinatesToCellName(a.C1+1, a.R1+1)
	end, _ := excelize.CoordinatesToCellName(a.C2+1, a.R2+1)
	return start + ":" + end
}
