package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/models"
)

// XLSXSource loads records from an Excel workbook. When no sheet name
// is configured the first sheet of the workbook is used.
type XLSXSource struct {
	path   string
	sheet  string
	logger *slog.Logger
}

func NewXLSXSource(path, sheet string, logger *slog.Logger) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet, logger: logger}
}

func (s *XLSXSource) Fetch(ctx context.Context) ([]models.SalesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	start := time.Now()
	index := headerIndex(rows[0])

	records := make([]models.SalesRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		record := recordFromRow(row, index)
		enrichRecord(&record)
		records = append(records, record)
	}

	s.logger.Info("workbook load complete",
		"path", s.path,
		"sheet", sheet,
		"records", len(records),
		"duration", time.Since(start),
	)
	return records, nil
}
