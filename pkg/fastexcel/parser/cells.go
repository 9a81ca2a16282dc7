// Package parser reads spreadsheet files into typed cell grids.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/grid"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads every cell of a sheet into a grid with typed cells. The grid
// starts at A1; use UsedRange to trim leading and trailing blank space.
// date1904 selects the workbook's date system for date-formatted numbers.
func ReadXLSX(f *excelize.File, sheetName string, date1904 bool) (*grid.Range, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	dates := dateStyles{f: f, cache: make(map[int]bool)}
	result := make([][]grid.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]grid.Cell, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}

			switch cellType {
			case excelize.CellTypeBool:
				cells[colIdx] = grid.Bool(raw == "1" || strings.EqualFold(raw, "true"))
			case excelize.CellTypeError:
				cells[colIdx] = grid.Error(raw)
			case excelize.CellTypeDate:
				cells[colIdx] = parseISODate(raw)
			case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
				cells[colIdx] = grid.String(raw)
			default:
				isDate, err := dates.isDate(sheetName, cellName)
				if err != nil {
					return nil, err
				}
				cells[colIdx] = parseNumber(raw, isDate, date1904)
			}
		}
		result[rowIdx] = cells
	}

	return grid.NewRange(result), nil
}

// parseNumber types the raw value of a numeric cell. Date-formatted numbers
// become date/time cells.
func parseNumber(raw string, isDate, date1904 bool) grid.Cell {
	if isDate {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, date1904); err == nil {
				return grid.DateTime(t)
			}
		}
	}
	return parseValue(raw)
}

// parseISODate reads the ISO-8601 value of a t="d" cell, keeping it as text
// when it does not parse.
func parseISODate(raw string) grid.Cell {
	if t, ok := grid.String(raw).AsTime(); ok {
		return grid.DateTime(t)
	}
	return grid.String(raw)
}

// parseValue attempts to parse a string value as a number.
// Returns an Int cell for integers, a Float cell for finite decimals, or a
// String cell holding the original text. Spellings like NaN, inf and hex
// floats stay text.
func parseValue(s string) grid.Cell {
	if s == "" {
		return grid.Cell{}
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return grid.Int(i)
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && isDecimal(s, f) {
		return grid.Float(f)
	}
	return grid.String(s)
}

// isDecimal reports whether s, which parsed to f, is a plain finite decimal.
func isDecimal(s string, f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return !strings.ContainsAny(s, "xX_")
}

// dateStyles remembers which cell styles carry a date or time number format.
type dateStyles struct {
	f     *excelize.File
	cache map[int]bool
}

func (d dateStyles) isDate(sheetName, cellName string) (bool, error) {
	styleID, err := d.f.GetCellStyle(sheetName, cellName)
	if err != nil {
		return false, err
	}
	if isDate, ok := d.cache[styleID]; ok {
		return isDate, nil
	}

	isDate := false
	if style, err := d.f.GetStyle(styleID); err == nil {
		if style.CustomNumFmt != nil {
			isDate = IsDateFormat(*style.CustomNumFmt)
		} else {
			isDate = isBuiltInDateFormat(style.NumFmt)
		}
	}
	d.cache[styleID] = isDate
	return isDate, nil
}

// isBuiltInDateFormat reports whether a built-in number format id renders a
// date or time, including the CJK language formats.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// IsDateFormat reports whether a custom number format code renders a date or
// time. Quoted literals, escaped characters and bracketed sections other than
// elapsed-time tokens are ignored.
func IsDateFormat(code string) bool {
	// only the positive section decides
	if idx := strings.IndexByte(code, ';'); idx >= 0 {
		code = code[:idx]
	}
	if strings.EqualFold(strings.TrimSpace(code), "general") {
		return false
	}

	inQuote := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case ch == '"':
			inQuote = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			section := strings.ToLower(code[i+1 : i+end])
			if strings.Trim(section, "hms") == "" && section != "" {
				return true
			}
			i += end
		default:
			switch ch | 0x20 {
			case 'y', 'd', 'h', 's', 'm':
				return true
			}
		}
	}
	return false
}
