// Package models defines the JSON summaries printed for workbooks and sheets.
package models

// WorkbookInfo describes a workbook and the sheets it contains.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists the sheets in workbook order.
	Sheets []SheetInfo `json:"sheets"`
}

// SheetNames returns the sheet names in workbook order.
func (w WorkbookInfo) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}
