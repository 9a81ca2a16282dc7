// Package main provides the CLI entry point for fastexcel-go.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ukaji3/fastexcel-go/internal/config"
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel"
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/output"
)

var (
	outputPath  string
	pretty      bool
	format      string
	sheetName   string
	sheetIndex  int
	headerRow   int
	noHeader    bool
	columnNames []string
	schemaSpec  string
	schemaPath  string
	cellRange   string
	allSheets   bool
	sheetsDir   string
	charset     string
	compression string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fastexcel",
		Short: "Convert spreadsheet sheets to Arrow record batches",
		Long: `fastexcel-go reads xlsx and csv files and converts sheets into typed
columnar Arrow records, written as Arrow IPC streams, Parquet files or JSON rows.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&charset, "charset", "", "Text encoding of csv input (default: $FASTEXCEL_CSV_CHARSET or utf-8)")

	rootCmd.AddCommand(newSheetsCmd(), newConvertCmd())
	return rootCmd
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [input]",
		Short: "List the sheets of a workbook with their geometry and columns",
		Args:  cobra.ExactArgs(1),
		RunE:  runSheets,
	}
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Convert a sheet to an Arrow IPC stream, Parquet file or JSON rows",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "ipc", "Output format: ipc, parquet, json")
	cmd.Flags().StringVar(&compression, "compression", "none", "IPC body compression: none, zstd, lz4")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name (default: first sheet)")
	cmd.Flags().IntVar(&sheetIndex, "sheet-index", 0, "Zero-based sheet position")
	cmd.Flags().IntVar(&headerRow, "header-row", 0, "Zero-based row holding the column names")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat every row as data")
	cmd.Flags().StringSliceVar(&columnNames, "column-names", nil, "Column names; the sheet starts with data")
	cmd.Flags().StringVar(&schemaSpec, "schema", "", `Column types, e.g. "id:int64,name:string,at:datetime"`)
	cmd.Flags().StringVar(&schemaPath, "schema-file", "", "YAML or JSON schema file")
	cmd.Flags().StringVar(&cellRange, "range", "", `Cell range to read, e.g. "B2:E40"`)
	cmd.Flags().BoolVar(&allSheets, "all-sheets", false, "Convert every sheet")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")

	cmd.MarkFlagsMutuallyExclusive("sheet", "sheet-index")
	cmd.MarkFlagsMutuallyExclusive("schema", "schema-file")
	cmd.MarkFlagsMutuallyExclusive("header-row", "no-header", "column-names")
	return cmd
}

// setup configures logging and defaults from the environment.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	slog.SetDefault(cfg.Logger(cmd.ErrOrStderr()))
	if charset == "" {
		charset = cfg.CSVCharset
	}
	return nil
}

func openWorkbook(inputPath string) (*fastexcel.Workbook, error) {
	wb, err := fastexcel.Open(inputPath, fastexcel.Options{Charset: charset})
	if err != nil {
		if errors.Is(err, fastexcel.ErrFileNotFound) {
			return nil, fmt.Errorf("file not found: %s", inputPath)
		}
		return nil, fmt.Errorf("open failed: %w", err)
	}
	return wb, nil
}

func runSheets(cmd *cobra.Command, args []string) error {
	wb, err := openWorkbook(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	info, err := wb.Describe(cmd.Context(), fastexcel.SheetOptions{})
	if err != nil {
		return fmt.Errorf("describe failed: %w", err)
	}

	jsonData, err := output.ToJSON(info, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	switch format {
	case "ipc", "parquet", "json":
	default:
		return fmt.Errorf("invalid format: %s (must be ipc, parquet or json)", format)
	}
	if _, err := output.Compression(compression); err != nil {
		return err
	}

	opts, err := sheetOptions(cmd)
	if err != nil {
		return err
	}

	wb, err := openWorkbook(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	if allSheets || sheetsDir != "" {
		sheets, err := wb.LoadAll(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
		if sheetsDir != "" {
			if err := writeSheetFiles(sheets, sheetsDir); err != nil {
				return fmt.Errorf("failed to write sheet files: %w", err)
			}
			return nil
		}
		if format != "json" {
			return fmt.Errorf("%s output of several sheets needs --sheets-dir", format)
		}
		data, err := sheetsToJSON(sheets)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		return writeOutput(cmd.OutOrStdout(), data)
	}

	var sheet *fastexcel.Sheet
	if sheetName != "" {
		sheet, err = wb.LoadSheet(sheetName, opts)
	} else {
		sheet, err = wb.LoadSheetByIndex(sheetIndex, opts)
	}
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	data, err := encodeSheet(sheet)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), data)
}

// sheetOptions builds the per-sheet options from the convert flags.
func sheetOptions(cmd *cobra.Command) (fastexcel.SheetOptions, error) {
	opts := fastexcel.SheetOptions{
		NoHeader:    noHeader,
		ColumnNames: columnNames,
		Range:       cellRange,
	}
	if cmd.Flags().Changed("header-row") {
		if headerRow < 0 {
			return opts, fmt.Errorf("invalid header row: %d", headerRow)
		}
		row := headerRow
		opts.HeaderRow = &row
	}

	switch {
	case schemaPath != "":
		schema, err := fastexcel.LoadSchemaFile(schemaPath)
		if err != nil {
			return opts, fmt.Errorf("invalid schema file: %w", err)
		}
		opts.Schema = schema
	case schemaSpec != "":
		schema, err := fastexcel.ParseSchema(schemaSpec)
		if err != nil {
			return opts, fmt.Errorf("invalid schema: %w", err)
		}
		opts.Schema = schema
	}
	return opts, nil
}

// encodeSheet converts a sheet in the selected output format.
func encodeSheet(sheet *fastexcel.Sheet) ([]byte, error) {
	rec, err := sheet.ToRecord(nil)
	if err != nil {
		return nil, err
	}
	defer rec.Release()

	var buf bytes.Buffer
	switch format {
	case "json":
		return output.ToJSON(output.RecordRows(rec), pretty)
	case "parquet":
		err = output.WriteParquet(&buf, rec, nil)
	default:
		opts, optErr := output.Compression(compression)
		if optErr != nil {
			return nil, optErr
		}
		err = output.WriteIPC(&buf, rec, nil, opts...)
	}
	if err != nil {
		return nil, fastexcel.NewConversionError(sheet.Name(), format, err)
	}
	return buf.Bytes(), nil
}

type sheetRows struct {
	Sheet string                   `json:"sheet"`
	Rows  []map[string]interface{} `json:"rows"`
}

func sheetsToJSON(sheets []*fastexcel.Sheet) ([]byte, error) {
	all := make([]sheetRows, 0, len(sheets))
	for _, sheet := range sheets {
		rec, err := sheet.ToRecord(nil)
		if err != nil {
			return nil, err
		}
		all = append(all, sheetRows{Sheet: sheet.Name(), Rows: output.RecordRows(rec)})
		rec.Release()
	}
	return output.ToJSON(all, pretty)
}

func writeOutput(stdout io.Writer, data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if format == "json" {
		data = append(data, '\n')
	}
	_, err := stdout.Write(data)
	return err
}

func writeSheetFiles(sheets []*fastexcel.Sheet, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	ext := map[string]string{"ipc": ".arrow", "parquet": ".parquet", "json": ".json"}[format]
	for _, sheet := range sheets {
		data, err := encodeSheet(sheet)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheet.Name()+ext)
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}
