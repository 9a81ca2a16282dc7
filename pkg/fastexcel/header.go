package fastexcel

import (
	"fmt"
	"strings"
)

// HeaderKind identifies how a sheet's header is provided.
type HeaderKind uint8

const (
	// HeaderNone means the sheet has no header; every row is data.
	HeaderNone HeaderKind = iota
	// HeaderAt means the header occupies a row of the grid.
	HeaderAt
	// HeaderWith means the column names are supplied by the caller and the
	// grid starts with data.
	HeaderWith
)

// Header decides how many leading grid rows are header rather than data.
type Header struct {
	kind  HeaderKind
	row   int
	names []string
}

// NewHeader resolves a header from optional inputs. Column names win over a
// header row, which wins over no header.
func NewHeader(row *int, names []string) Header {
	switch {
	case names != nil:
		return Header{kind: HeaderWith, names: names}
	case row != nil:
		return Header{kind: HeaderAt, row: *row}
	default:
		return Header{kind: HeaderNone}
	}
}

// NoHeader returns a header that consumes no rows.
func NoHeader() Header { return Header{kind: HeaderNone} }

// HeaderRow returns a header read from the given zero-based grid row.
func HeaderRow(row int) Header { return Header{kind: HeaderAt, row: row} }

// HeaderNames returns a header supplied as literal column names.
func HeaderNames(names ...string) Header {
	if names == nil {
		names = []string{}
	}
	return Header{kind: HeaderWith, names: names}
}

// Kind reports which variant the header is.
func (h Header) Kind() HeaderKind { return h.kind }

// Row returns the header row index; ok is false unless the kind is HeaderAt.
func (h Header) Row() (row int, ok bool) {
	return h.row, h.kind == HeaderAt
}

// Names returns the literal column names of a HeaderWith header.
func (h Header) Names() []string { return h.names }

// Offset returns the number of leading grid rows that are not data.
func (h Header) Offset() int {
	switch h.kind {
	case HeaderAt:
		return h.row + 1
	default:
		return 0
	}
}

func (h Header) String() string {
	switch h.kind {
	case HeaderAt:
		return fmt.Sprintf("at(%d)", h.row)
	case HeaderWith:
		return fmt.Sprintf("with(%s)", strings.Join(h.names, ","))
	default:
		return "none"
	}
}
