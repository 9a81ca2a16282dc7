package fastexcel

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/grid"
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/output"
)

// lazy is a value computed on first use and kept for good.
type lazy struct {
	set   bool
	value int
}

func (l *lazy) get(compute func() int) int {
	if !l.set {
		l.value, l.set = compute(), true
	}
	return l.value
}

// Sheet is one worksheet ready to be converted to an Arrow record.
//
// Width and Height are computed on first call and cached; a Sheet must not be
// used from several goroutines at once without external locking.
type Sheet struct {
	name   string
	schema Schema
	header Header
	data   grid.Grid

	width  lazy
	height lazy
}

// NewSheet creates a sheet over g. It fails when the header consumes more
// rows than g has, or when schema declares more columns than a non-empty g.
func NewSheet(name string, schema Schema, g grid.Grid, header Header) (*Sheet, error) {
	if err := schema.Validate(); err != nil {
		return nil, NewConversionError(name, StageLoad, err)
	}
	if row, ok := header.Row(); ok && row < 0 {
		return nil, NewConversionError(name, StageLoad,
			fmt.Errorf("%w: row %d", ErrHeaderOutOfRange, row))
	}
	if offset := header.Offset(); offset > g.Height() {
		return nil, NewConversionError(name, StageLoad,
			fmt.Errorf("%w: header needs %d rows, sheet has %d", ErrHeaderOutOfRange, offset, g.Height()))
	}
	if g.Height() > 0 && len(schema) > g.Width() {
		return nil, NewConversionError(name, StageLoad,
			fmt.Errorf("%w: %d columns declared, sheet has %d", ErrSchemaTooWide, len(schema), g.Width()))
	}

	return &Sheet{
		name:   name,
		schema: schema,
		header: header,
		data:   g,
	}, nil
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Schema returns the declared columns.
func (s *Sheet) Schema() Schema { return s.schema }

// Header returns the header configuration.
func (s *Sheet) Header() Header { return s.header }

// Grid returns the underlying cell grid.
func (s *Sheet) Grid() grid.Grid { return s.data }

// Width returns the number of grid columns.
func (s *Sheet) Width() int {
	return s.width.get(s.data.Width)
}

// Height returns the number of data rows, i.e. grid rows after the header.
func (s *Sheet) Height() int {
	return s.height.get(func() int {
		return s.data.Height() - s.Offset()
	})
}

// Offset returns the number of leading grid rows that are not data.
func (s *Sheet) Offset() int {
	// only the header defines the offset for now
	return s.header.Offset()
}

func (s *Sheet) String() string {
	return fmt.Sprintf("ExcelSheet<%s>", s.name)
}

// ToRecord materializes every schema column and assembles them into a
// record. The caller owns the record and must Release it.
func (s *Sheet) ToRecord(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	offset := s.Offset()
	height := s.data.Height()
	rows := int64(max(height-offset, 0))

	cols := make([]arrow.Array, 0, len(s.schema))
	defer func() {
		for _, col := range cols {
			col.Release()
		}
	}()

	for i, field := range s.schema {
		cols = append(cols, projectColumn(mem, s.data, i, offset, height, field.Type))
	}

	schema := s.schema.Arrow()
	if err := checkColumns(schema, cols, rows); err != nil {
		return nil, NewConversionError(s.name, StageRecord, err)
	}

	// NewRecord retains the columns; the deferred release drops our references.
	return array.NewRecord(schema, cols, rows), nil
}

// ToArrowIPC converts the sheet and serializes the record as an Arrow IPC
// stream.
func (s *Sheet) ToArrowIPC(mem memory.Allocator) ([]byte, error) {
	rec, err := s.ToRecord(mem)
	if err != nil {
		return nil, err
	}
	defer rec.Release()

	var buf bytes.Buffer
	if err := output.WriteIPC(&buf, rec, mem); err != nil {
		return nil, NewConversionError(s.name, StageIPC, err)
	}
	return buf.Bytes(), nil
}

// checkColumns verifies that every column matches its field type and the
// record row count.
func checkColumns(schema *arrow.Schema, cols []arrow.Array, rows int64) error {
	if len(cols) != schema.NumFields() {
		return fmt.Errorf("%d columns for %d fields", len(cols), schema.NumFields())
	}
	for i, col := range cols {
		field := schema.Field(i)
		if int64(col.Len()) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", field.Name, col.Len(), rows)
		}
		if !arrow.TypeEqual(col.DataType(), field.Type) {
			return fmt.Errorf("column %q is %s, declared %s", field.Name, col.DataType(), field.Type)
		}
	}
	return nil
}
