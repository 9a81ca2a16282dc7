package fastexcel

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is neither xlsx nor csv.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrHeaderOutOfRange indicates the header consumes more rows than the grid has.
var ErrHeaderOutOfRange = errors.New("header row out of range")

// ErrSchemaTooWide indicates the schema declares more columns than the grid has.
var ErrSchemaTooWide = errors.New("schema wider than sheet")

// ErrUnknownColumnType indicates a column type outside the supported set.
var ErrUnknownColumnType = errors.New("unknown column type")

// Stages reported by ConversionError.
const (
	StageLoad    = "load"
	StageRecord  = "record"
	StageIPC     = "ipc"
	StageParquet = "parquet"
)

// ConversionError represents a failure to turn a sheet into a record.
type ConversionError struct {
	SheetName string
	Stage     string // one of the Stage constants
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("could not convert sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new ConversionError.
func NewConversionError(sheetName, stage string, err error) *ConversionError {
	return &ConversionError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
