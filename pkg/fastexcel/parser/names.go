package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// builtinPrefix marks names Excel reserves, like _xlnm.Print_Area.
const builtinPrefix = "_xlnm."

// DefinedArea resolves a defined name to the first area it refers to on
// sheetName. Built-in names match with or without their _xlnm. prefix, and
// names scoped to sheetName win over workbook names. ok is false when no
// name refers to a cell rectangle on the sheet.
func DefinedArea(f *excelize.File, sheetName, name string) (area Area, ok bool) {
	want := strings.TrimPrefix(strings.ToLower(name), strings.ToLower(builtinPrefix))

	for _, dn := range f.GetDefinedName() {
		dnName := strings.TrimPrefix(strings.ToLower(dn.Name), strings.ToLower(builtinPrefix))
		if dnName != want {
			continue
		}
		if dn.Scope != "Workbook" && !strings.EqualFold(dn.Scope, sheetName) {
			continue
		}

		areas := parseReference(dn.RefersTo, sheetName)
		if len(areas) == 0 {
			continue
		}
		if dn.Scope != "Workbook" {
			return areas[0], true
		}
		if !ok {
			area, ok = areas[0], true
		}
	}

	return area, ok
}

// parseReference parses a reference like 'Sheet 1'!$A$1:$D$10,Sheet2!$B$2
// and returns the areas on sheetName.
func parseReference(ref, sheetName string) []Area {
	var areas []Area

	// Split by comma for multiple areas
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}

		sheet := part[:idx]
		// A quoted sheet name writes each apostrophe twice
		if len(sheet) >= 2 && sheet[0] == '\'' && sheet[len(sheet)-1] == '\'' {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
		if !strings.EqualFold(sheet, sheetName) {
			continue
		}

		if area, err := ParseRange(part[idx+1:]); err == nil {
			areas = append(areas, area)
		}
	}

	return areas
}
