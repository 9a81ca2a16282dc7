package fastexcel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/grid"
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/models"
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/parser"
)

// Workbook is an opened spreadsheet file. An xlsx workbook holds one sheet
// per worksheet; a csv file holds a single sheet named after the file.
type Workbook struct {
	name     string
	log      *slog.Logger
	date1904 bool

	// mu serializes reads from file.
	mu   sync.Mutex
	file *excelize.File

	// csv is the whole grid of a csv workbook.
	csv *grid.Range
}

// Open opens the xlsx or csv file at path.
func Open(path string, opts Options) (*Workbook, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	start := time.Now()
	var (
		w   *Workbook
		err error
	)
	switch format(path) {
	case formatXLSX:
		f, openErr := excelize.OpenFile(path)
		if openErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, openErr)
		}
		w, err = newXLSXWorkbook(f, filepath.Base(path), opts)
	case formatCSV:
		file, openErr := os.Open(path)
		if openErr != nil {
			return nil, openErr
		}
		defer file.Close()
		w, err = newCSVWorkbook(file, filepath.Base(path), opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, path)
	}
	if err != nil {
		return nil, err
	}

	w.log.Debug("opened workbook", "path", path, "sheets", len(w.SheetNames()), "elapsed", time.Since(start))
	return w, nil
}

// OpenReader opens a workbook read from r. name is the file name; its
// extension selects the format.
func OpenReader(r io.Reader, name string, opts Options) (*Workbook, error) {
	switch format(name) {
	case formatXLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, name, err)
		}
		return newXLSXWorkbook(f, filepath.Base(name), opts)
	case formatCSV:
		return newCSVWorkbook(r, filepath.Base(name), opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, name)
}

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatXLSX
	formatCSV
)

func format(name string) fileFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return formatXLSX
	case ".csv":
		return formatCSV
	}
	return formatUnknown
}

func newXLSXWorkbook(f *excelize.File, name string, opts Options) (*Workbook, error) {
	w := &Workbook{name: name, log: opts.logger(), file: f}

	if opts.Date1904 != nil {
		w.date1904 = *opts.Date1904
	} else {
		props, err := f.GetWorkbookProps()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, name, err)
		}
		if props.Date1904 != nil {
			w.date1904 = *props.Date1904
		}
	}
	return w, nil
}

func newCSVWorkbook(r io.Reader, name string, opts Options) (*Workbook, error) {
	g, err := parser.ReadCSV(r, opts.Charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, name, err)
	}
	return &Workbook{name: name, log: opts.logger(), csv: g}, nil
}

// Name returns the workbook file name without its directory.
func (w *Workbook) Name() string { return w.name }

// Date1904 reports whether date serials use the 1904 date system.
func (w *Workbook) Date1904() bool { return w.date1904 }

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	if w.file == nil {
		return []string{strings.TrimSuffix(w.name, filepath.Ext(w.name))}
	}
	return w.file.GetSheetList()
}

// LoadSheetByIndex loads the sheet at the zero-based position idx.
func (w *Workbook) LoadSheetByIndex(idx int, opts SheetOptions) (*Sheet, error) {
	names := w.SheetNames()
	if idx < 0 || idx >= len(names) {
		return nil, fmt.Errorf("%w: index %d, workbook has %d sheets", ErrSheetNotFound, idx, len(names))
	}
	return w.LoadSheet(names[idx], opts)
}

// LoadSheet reads the named sheet and resolves its header and schema.
func (w *Workbook) LoadSheet(name string, opts SheetOptions) (*Sheet, error) {
	start := time.Now()

	full, err := w.readGrid(name)
	if err != nil {
		return nil, err
	}

	var g *grid.Range
	if opts.ShouldUseRange() {
		area, err := w.resolveArea(name, opts.Range)
		if err != nil {
			return nil, NewConversionError(name, StageLoad, err)
		}
		g = full.Sub(area.R1, area.C1, area.R2, area.C2)
	} else {
		g = parser.UsedRange(full)
	}

	header := opts.header()
	if g.Height() == 0 && header.Kind() == HeaderAt && opts.HeaderRow == nil {
		// a blank sheet has no header row to read
		header = NoHeader()
	}
	sheet, err := NewSheet(name, resolveSchema(opts, header, g), g, header)
	if err != nil {
		return nil, err
	}

	w.log.Debug("loaded sheet",
		"sheet", name,
		"header", header.String(),
		"rows", sheet.Height(),
		"columns", sheet.Width(),
		"elapsed", time.Since(start),
	)
	return sheet, nil
}

// readGrid returns every cell of the named sheet, starting at A1.
func (w *Workbook) readGrid(name string) (*grid.Range, error) {
	if w.file == nil {
		if name != w.SheetNames()[0] {
			return nil, NewConversionError(name, StageLoad, ErrSheetNotFound)
		}
		return w.csv, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if idx, err := w.file.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, NewConversionError(name, StageLoad, ErrSheetNotFound)
	}
	g, err := parser.ReadXLSX(w.file, name, w.date1904)
	if err != nil {
		return nil, NewConversionError(name, StageLoad, err)
	}
	return g, nil
}

// resolveArea reads ref as a cell range, or else as a defined name such as
// Print_Area.
func (w *Workbook) resolveArea(sheetName, ref string) (parser.Area, error) {
	area, err := parser.ParseRange(ref)
	if err == nil || w.file == nil {
		return area, err
	}

	w.mu.Lock()
	defined, ok := parser.DefinedArea(w.file, sheetName, ref)
	w.mu.Unlock()
	if !ok {
		return parser.Area{}, err
	}
	return defined, nil
}

// resolveSchema picks the columns to materialize: an explicit schema, with
// blank names filled from the header, or one String column per grid column
// typed by opts.Types.
func resolveSchema(opts SheetOptions, header Header, g grid.Grid) Schema {
	if opts.Schema != nil {
		names := ResolveColumnNames(header, g, len(opts.Schema))
		schema := make(Schema, len(opts.Schema))
		for i, field := range opts.Schema {
			if field.Name == "" {
				field.Name = names[i]
			}
			schema[i] = field
		}
		return schema
	}
	return BuildSchema(ResolveColumnNames(header, g, g.Width()), opts.Types)
}

// LoadAll loads every sheet with the same options. Sheets are returned in
// workbook order; the first failure cancels the remaining loads.
func (w *Workbook) LoadAll(ctx context.Context, opts SheetOptions) ([]*Sheet, error) {
	names := w.SheetNames()
	sheets := make([]*Sheet, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sheet, err := w.LoadSheet(name, opts)
			if err != nil {
				return err
			}
			sheets[i] = sheet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sheets, nil
}

// Describe loads every sheet and summarizes its geometry and columns.
func (w *Workbook) Describe(ctx context.Context, opts SheetOptions) (*models.WorkbookInfo, error) {
	sheets, err := w.LoadAll(ctx, opts)
	if err != nil {
		return nil, err
	}

	info := &models.WorkbookInfo{
		BookName: w.name,
		Sheets:   make([]models.SheetInfo, len(sheets)),
	}
	for i, s := range sheets {
		info.Sheets[i] = s.Info()
	}
	return info, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
