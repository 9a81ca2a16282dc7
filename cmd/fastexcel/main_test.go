package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/models"
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/output"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "id"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "label"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 1))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "one"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 2))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", "two"))

	_, err := f.NewSheet("Totals")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Totals", "A1", "sum"))
	require.NoError(t, f.SetCellValue("Totals", "A2", 3.5))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestConvertJSON(t *testing.T) {
	path := writeCSV(t, "name,age\nann,30\nbob,\n")

	out, err := execute(t, "convert", path, "--format", "json", "--schema", "name:string,age:int64")
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "ann", rows[0]["name"])
	assert.Equal(t, float64(30), rows[0]["age"])
	assert.Equal(t, "bob", rows[1]["name"])
	assert.Nil(t, rows[1]["age"])
}

func TestConvertIPCToFile(t *testing.T) {
	path := writeWorkbook(t)
	outPath := filepath.Join(t.TempDir(), "out.arrow")

	_, err := execute(t, "convert", path, "--sheet", "Sheet1", "--schema", "int64,string", "-o", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	recs, err := output.ReadIPC(data, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	defer recs[0].Release()

	rec := recs[0]
	assert.Equal(t, int64(2), rec.NumRows())
	assert.Equal(t, "id", rec.ColumnName(0))
	assert.Equal(t, "label", rec.ColumnName(1))
	assert.Equal(t, "1", rec.Column(0).ValueStr(0))
	assert.Equal(t, "two", rec.Column(1).ValueStr(1))
}

func TestConvertParquet(t *testing.T) {
	path := writeWorkbook(t)
	outPath := filepath.Join(t.TempDir(), "out.parquet")

	_, err := execute(t, "convert", path, "--format", "parquet", "--schema", "int64,string", "-o", outPath)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	tbl, err := pqarrow.ReadTable(context.Background(), f, nil, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	require.NoError(t, err)
	defer tbl.Release()

	assert.Equal(t, int64(2), tbl.NumRows())
	assert.Equal(t, "id", tbl.Schema().Field(0).Name)
	assert.Equal(t, arrow.PrimitiveTypes.Int64, tbl.Schema().Field(0).Type)
}

func TestConvertCompressedIPC(t *testing.T) {
	path := writeCSV(t, "n\n1\n2\n3\n")

	for _, codec := range []string{"zstd", "lz4"} {
		t.Run(codec, func(t *testing.T) {
			out, err := execute(t, "convert", path, "--schema", "int64", "--compression", codec)
			require.NoError(t, err)

			recs, err := output.ReadIPC([]byte(out), nil)
			require.NoError(t, err)
			require.Len(t, recs, 1)
			defer recs[0].Release()
			assert.Equal(t, int64(3), recs[0].NumRows())
		})
	}
}

func TestConvertNoHeader(t *testing.T) {
	path := writeCSV(t, "a,b\n1,2\n")

	out, err := execute(t, "convert", path, "--format", "json", "--no-header")
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0]["__UNNAMED__0"])
	assert.Equal(t, "2", rows[1]["__UNNAMED__1"])
}

func TestConvertSheetsDir(t *testing.T) {
	path := writeWorkbook(t)
	dir := filepath.Join(t.TempDir(), "sheets")

	_, err := execute(t, "convert", path, "--format", "json", "--sheets-dir", dir)
	require.NoError(t, err)

	for _, name := range []string{"Sheet1.json", "Totals.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	_, err = execute(t, "convert", path, "--format", "parquet", "--sheets-dir", dir)
	require.NoError(t, err)
	for _, name := range []string{"Sheet1.parquet", "Totals.parquet"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestConvertErrors(t *testing.T) {
	csvPath := writeCSV(t, "a\n1\n")
	bookPath := writeWorkbook(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"convert", filepath.Join(t.TempDir(), "nope.xlsx")}},
		{"bad format", []string{"convert", csvPath, "--format", "xml"}},
		{"bad schema", []string{"convert", csvPath, "--schema", "a:decimal"}},
		{"schema too wide", []string{"convert", csvPath, "--schema", "a:int64,b:int64"}},
		{"header out of range", []string{"convert", csvPath, "--header-row", "5"}},
		{"exclusive sheet flags", []string{"convert", bookPath, "--sheet", "Sheet1", "--sheet-index", "1"}},
		{"exclusive header flags", []string{"convert", csvPath, "--no-header", "--header-row", "1"}},
		{"unknown sheet", []string{"convert", bookPath, "--sheet", "Missing"}},
		{"ipc of all sheets", []string{"convert", bookPath, "--all-sheets"}},
		{"parquet of all sheets", []string{"convert", bookPath, "--all-sheets", "--format", "parquet"}},
		{"bad compression", []string{"convert", csvPath, "--compression", "gzip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSheets(t *testing.T) {
	path := writeWorkbook(t)

	out, err := execute(t, "sheets", path)
	require.NoError(t, err)

	var info models.WorkbookInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "book.xlsx", info.BookName)
	assert.Equal(t, []string{"Sheet1", "Totals"}, info.SheetNames())

	sheet := info.Sheets[0]
	assert.Equal(t, 2, sheet.Width)
	assert.Equal(t, 2, sheet.Height)
	assert.Equal(t, 1, sheet.Offset)
	assert.Equal(t, "at(0)", sheet.Header)
	assert.Equal(t, "A1:B3", sheet.Range)
	assert.Equal(t, []models.ColumnInfo{
		{Name: "id", Type: "string"},
		{Name: "label", Type: "string"},
	}, sheet.Columns)
}
