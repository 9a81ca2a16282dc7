package models

// SheetInfo describes the geometry and columns of a loaded sheet.
type SheetInfo struct {
	Name string `json:"name"`
	// Width is the number of grid columns.
	Width int `json:"width"`
	// Height is the number of data rows after the header.
	Height int `json:"height"`
	// Offset is the number of leading rows consumed by the header.
	Offset int `json:"offset"`
	// Header is the header configuration, e.g. "at(0)" or "none".
	Header string `json:"header"`
	// Range is the cell rectangle the grid was read from, e.g. "B2:E40".
	Range   string       `json:"range,omitempty"`
	Columns []ColumnInfo `json:"columns"`
}

// ColumnInfo is a named, typed output column.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
