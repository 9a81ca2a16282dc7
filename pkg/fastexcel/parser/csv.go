package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/grid"
)

// ReadCSV reads comma-separated records into a grid. Numbers become Int or
// Float cells, true/false become Bool cells and empty fields are empty cells.
// Typed cells keep the field text, so text columns read it back unchanged.
// Records may have different numbers of fields.
//
// charset names the text encoding ("windows-1252", "shift_jis", ...); empty
// means UTF-8. A UTF-8 or UTF-16 byte order mark overrides charset.
func ReadCSV(r io.Reader, charset string) (*grid.Range, error) {
	dec, err := decoder(charset)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(dec)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]grid.Cell, len(records))
	for rowIdx, record := range records {
		cells := make([]grid.Cell, len(record))
		for colIdx, field := range record {
			cells[colIdx] = parseField(field)
		}
		rows[rowIdx] = cells
	}
	return grid.NewRange(rows), nil
}

// parseField types a CSV field.
func parseField(s string) grid.Cell {
	switch strings.ToLower(s) {
	case "true":
		return grid.Bool(true).WithText(s)
	case "false":
		return grid.Bool(false).WithText(s)
	}
	return parseValue(s).WithText(s)
}

func decoder(charset string) (transform.Transformer, error) {
	if charset == "" {
		return unicode.UTF8.NewDecoder(), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	return enc.NewDecoder(), nil
}
