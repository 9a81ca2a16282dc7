package fastexcel

import (
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/grid"
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/models"
	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/parser"
)

// Info summarizes the sheet for display.
func (s *Sheet) Info() models.SheetInfo {
	info := models.SheetInfo{
		Name:    s.name,
		Width:   s.Width(),
		Height:  s.Height(),
		Offset:  s.Offset(),
		Header:  s.header.String(),
		Columns: make([]models.ColumnInfo, len(s.schema)),
	}
	for i, f := range s.schema {
		info.Columns[i] = models.ColumnInfo{Name: f.Name, Type: f.Type.String()}
	}

	if r, ok := s.data.(*grid.Range); ok && r.Width() > 0 && r.Height() > 0 {
		row, col := r.Start()
		info.Range = parser.Area{R1: row, C1: col, R2: row + r.Height() - 1, C2: col + r.Width() - 1}.String()
	}
	return info
}
