package fastexcel

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/grid"
)

// projectColumn builds the typed array for column col over grid rows
// [offset, height). A missing or mistyped cell becomes a null in its row.
func projectColumn(mem memory.Allocator, g grid.Grid, col, offset, height int, typ ColumnType) arrow.Array {
	switch typ {
	case TypeBoolean:
		return buildBooleanArray(mem, g, col, offset, height)
	case TypeInt64:
		return buildInt64Array(mem, g, col, offset, height)
	case TypeFloat64:
		return buildFloat64Array(mem, g, col, offset, height)
	case TypeString:
		return buildStringArray(mem, g, col, offset, height)
	case TypeDatetime:
		return buildDatetimeArray(mem, g, col, offset, height)
	case TypeNull:
		return array.NewNull(max(height-offset, 0))
	}
	panic(fmt.Sprintf("fastexcel: unsupported column type %v", typ))
}

func buildBooleanArray(mem memory.Allocator, g grid.Grid, col, offset, height int) arrow.Array {
	b := array.NewBooleanBuilder(mem)
	defer b.Release()
	b.Reserve(max(height-offset, 0))

	for row := offset; row < height; row++ {
		if v, ok := cellAt(g, row, col).AsBool(); ok {
			b.Append(v)
		} else {
			b.AppendNull()
		}
	}
	return b.NewArray()
}

func buildInt64Array(mem memory.Allocator, g grid.Grid, col, offset, height int) arrow.Array {
	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.Reserve(max(height-offset, 0))

	for row := offset; row < height; row++ {
		if v, ok := cellAt(g, row, col).AsInt(); ok {
			b.Append(v)
		} else {
			b.AppendNull()
		}
	}
	return b.NewArray()
}

func buildFloat64Array(mem memory.Allocator, g grid.Grid, col, offset, height int) arrow.Array {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.Reserve(max(height-offset, 0))

	for row := offset; row < height; row++ {
		if v, ok := cellAt(g, row, col).AsFloat(); ok {
			b.Append(v)
		} else {
			b.AppendNull()
		}
	}
	return b.NewArray()
}

func buildStringArray(mem memory.Allocator, g grid.Grid, col, offset, height int) arrow.Array {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.Reserve(max(height-offset, 0))

	for row := offset; row < height; row++ {
		if v, ok := cellAt(g, row, col).AsString(); ok {
			b.Append(v)
		} else {
			b.AppendNull()
		}
	}
	return b.NewArray()
}

func buildDatetimeArray(mem memory.Allocator, g grid.Grid, col, offset, height int) arrow.Array {
	b := array.NewTimestampBuilder(mem, datetimeType)
	defer b.Release()
	b.Reserve(max(height-offset, 0))

	for row := offset; row < height; row++ {
		if v, ok := cellAt(g, row, col).AsTime(); ok {
			b.Append(arrow.Timestamp(v.UnixMilli()))
		} else {
			b.AppendNull()
		}
	}
	return b.NewArray()
}

// cellAt returns the cell at (row, col), or an empty cell when there is none.
func cellAt(g grid.Grid, row, col int) grid.Cell {
	c, _ := g.Get(row, col)
	return c
}
