package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

// CSVSource loads records from a local CSV export of the sales sheet.
// The first row must be the upstream header row.
type CSVSource struct {
	path   string
	logger *slog.Logger
}

func NewCSVSource(path string, logger *slog.Logger) *CSVSource {
	return &CSVSource{path: path, logger: logger}
}

func (s *CSVSource) Fetch(ctx context.Context) ([]models.SalesRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := headerIndex(header)

	start := time.Now()
	var records []models.SalesRecord
	batch := make([][]string, 0, batchSize)

	flush := func() error {
		parsed, err := parseBatch(ctx, batch, index)
		if err != nil {
			return err
		}
		records = append(records, parsed...)
		batch = batch[:0]
		return nil
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if emptyRow(row) {
			continue
		}

		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	s.logger.Info("csv load complete",
		"path", s.path,
		"records", len(records),
		"duration", time.Since(start),
	)
	return records, nil
}

// parseBatch materializes and enriches one batch of rows with a bounded
// worker pool, writing each result to its own slot so input order is
// preserved.
func parseBatch(ctx context.Context, batch [][]string, index map[string]int) ([]models.SalesRecord, error) {
	out := make([]models.SalesRecord, len(batch))

	var g errgroup.Group
	g.SetLimit(maxWorkers)

	for i, row := range batch {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			record := recordFromRow(row, index)
			enrichRecord(&record)
			out[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
