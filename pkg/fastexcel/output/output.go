// Package output serializes converted sheets as Arrow IPC streams, Parquet files or JSON.
package output

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/goccy/go-json"
)

// WriteIPC writes rec to w as a single-batch Arrow IPC stream. Extra
// options such as those returned by Compression are passed to the writer.
func WriteIPC(w io.Writer, rec arrow.Record, mem memory.Allocator, opts ...ipc.Option) error {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	opts = append([]ipc.Option{ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem)}, opts...)
	writer := ipc.NewWriter(w, opts...)
	if err := writer.Write(rec); err != nil {
		writer.Close()
		return fmt.Errorf("write arrow record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close arrow writer: %w", err)
	}
	return nil
}

// Compression returns the IPC writer options for a body compression codec:
// "zstd", "lz4", or "" and "none" for uncompressed buffers.
func Compression(codec string) ([]ipc.Option, error) {
	switch codec {
	case "", "none":
		return nil, nil
	case "zstd":
		return []ipc.Option{ipc.WithZstd()}, nil
	case "lz4":
		return []ipc.Option{ipc.WithLZ4()}, nil
	}
	return nil, fmt.Errorf("unknown compression %q (must be none, zstd or lz4)", codec)
}

// ReadIPC reads every record of an Arrow IPC stream. The caller releases the
// returned records.
func ReadIPC(data []byte, mem memory.Allocator) ([]arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	reader, err := ipc.NewReader(bytes.NewReader(data), ipc.WithAllocator(mem))
	if err != nil {
		return nil, fmt.Errorf("open arrow reader: %w", err)
	}
	defer reader.Release()

	var recs []arrow.Record
	for reader.Next() {
		rec := reader.Record()
		rec.Retain()
		recs = append(recs, rec)
	}
	if err := reader.Err(); err != nil {
		for _, rec := range recs {
			rec.Release()
		}
		return nil, fmt.Errorf("read arrow records: %w", err)
	}
	return recs, nil
}

// RecordRows converts rec into JSON-ready row maps keyed by column name.
// Returns an empty (non-nil) slice for a record without rows.
func RecordRows(rec arrow.Record) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, rec.NumRows())
	for i := 0; i < int(rec.NumRows()); i++ {
		row := make(map[string]interface{}, rec.NumCols())
		for j := 0; j < int(rec.NumCols()); j++ {
			row[rec.ColumnName(j)] = ValueToInterface(rec.Column(j), i)
		}
		rows = append(rows, row)
	}
	return rows
}

// ValueToInterface extracts a single value from an Arrow column at the given
// index. Returns nil for null values.
func ValueToInterface(col arrow.Array, idx int) interface{} {
	if col.IsNull(idx) {
		return nil
	}
	switch c := col.(type) {
	case *array.Boolean:
		return c.Value(idx)
	case *array.Int64:
		return c.Value(idx)
	case *array.Float64:
		// JSON has no NaN or infinity
		if v := c.Value(idx); !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
		return c.ValueStr(idx)
	case *array.String:
		return c.Value(idx)
	case *array.Timestamp:
		dt := c.DataType().(*arrow.TimestampType)
		return c.Value(idx).ToTime(dt.Unit).UTC().Format(time.RFC3339Nano)
	default:
		return col.ValueStr(idx)
	}
}

// ToJSON serializes v, optionally indented.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
