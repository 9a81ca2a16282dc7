// Package fastexcel converts spreadsheet sheets into typed Arrow records.
package fastexcel

import "log/slog"

// Options configures how a workbook is opened.
type Options struct {
	// Date1904 overrides the workbook's date system.
	// If nil, the workbook properties decide.
	Date1904 *bool
	// Charset is the text encoding of csv input, e.g. "windows-1252".
	// If empty, csv input is UTF-8. Ignored for xlsx.
	Charset string
	// Logger receives debug output. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default workbook options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// SheetOptions configures how a single sheet is loaded.
type SheetOptions struct {
	// HeaderRow is the zero-based row holding the column names.
	// If nil, defaults to 0 unless NoHeader or ColumnNames is set.
	HeaderRow *int
	// NoHeader treats every row as data.
	NoHeader bool
	// ColumnNames supplies the column names; the sheet then starts with data.
	ColumnNames []string
	// Types declares column types by position. Missing types are String.
	Types []ColumnType
	// Schema declares the columns fully. Fields with an empty name take the
	// resolved column name at that position. Schema wins over Types.
	Schema Schema
	// Range restricts the sheet to a cell rectangle such as "B2:E40", or to
	// the area of a defined name such as "Print_Area".
	// If empty, the used range of the sheet is read.
	Range string
}

// ShouldUseRange returns whether an explicit cell range was requested.
func (o SheetOptions) ShouldUseRange() bool {
	return o.Range != ""
}

// header resolves the header configuration. Column names win over a header
// row, which wins over no header.
func (o SheetOptions) header() Header {
	if o.ColumnNames != nil {
		return NewHeader(nil, o.ColumnNames)
	}
	if o.NoHeader {
		return NewHeader(nil, nil)
	}
	row := 0
	if o.HeaderRow != nil {
		row = *o.HeaderRow
	}
	return NewHeader(&row, nil)
}
