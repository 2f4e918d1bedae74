package services

import (
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/source"
)

const (
	cacheVersion = "v1"
	cacheDir     = ".cache"
)

// Snapshot is the persisted state of one successful refresh.
type Snapshot struct {
	Records     []models.SalesRecord
	Summary     models.Summary
	RefreshedAt time.Time
}

// Dashboard owns the current record set and its precomputed summary.
// All reads go through the RWMutex; every derived view is recomputed
// from immutable inputs, so concurrent readers never observe a
// half-updated state.
type Dashboard struct {
	mu          sync.RWMutex
	records     []models.SalesRecord
	summary     models.Summary
	refreshedAt time.Time

	src      source.DataSource
	cacheKey string
	logger   *slog.Logger
}

func NewDashboard(src source.DataSource, cacheKey string, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		src:      src,
		cacheKey: cacheKey,
		logger:   logger,
	}
}

// SetRecords installs a record set and precomputes its summary.
func (d *Dashboard) SetRecords(records []models.SalesRecord) {
	summary := analytics.CalculateSummary(records)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = records
	d.summary = summary
	d.refreshedAt = time.Now()
}

// Refresh pulls a fresh record set from the data source. On failure the
// previous state is kept.
func (d *Dashboard) Refresh(ctx context.Context) error {
	start := time.Now()

	records, err := d.src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}

	d.SetRecords(records)

	if err := d.saveSnapshot(); err != nil {
		d.logger.Warn("failed to save snapshot", "error", err)
	}

	d.logger.Info("refresh complete",
		"records", len(records),
		"duration", time.Since(start),
	)
	return nil
}

// RefreshLoop re-pulls the source on every tick until the context ends.
func (d *Dashboard) RefreshLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.Refresh(ctx); err != nil {
				d.logger.Error("background refresh failed", "error", err)
			}
		}
	}
}

// LoadSnapshot restores the most recent persisted snapshot if it is
// younger than maxAge. Returns false when no usable snapshot exists.
func (d *Dashboard) LoadSnapshot(maxAge time.Duration) bool {
	file, err := os.Open(d.snapshotFilename())
	if err != nil {
		return false
	}
	defer file.Close()

	var snap Snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		d.logger.Warn("snapshot decode failed", "error", err)
		return false
	}
	if time.Since(snap.RefreshedAt) > maxAge {
		return false
	}

	d.mu.Lock()
	d.records = snap.Records
	d.summary = snap.Summary
	d.refreshedAt = snap.RefreshedAt
	d.mu.Unlock()

	d.logger.Info("restored from snapshot",
		"records", len(snap.Records),
		"refreshed_at", snap.RefreshedAt,
	)
	return true
}

func (d *Dashboard) saveSnapshot() error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}

	file, err := os.Create(d.snapshotFilename())
	if err != nil {
		return err
	}
	defer file.Close()

	d.mu.RLock()
	snap := Snapshot{
		Records:     d.records,
		Summary:     d.summary,
		RefreshedAt: d.refreshedAt,
	}
	d.mu.RUnlock()

	return gob.NewEncoder(file).Encode(snap)
}

func (d *Dashboard) snapshotFilename() string {
	key := strings.NewReplacer("/", "_", ":", "_", " ", "_").Replace(d.cacheKey)
	return fmt.Sprintf("%s/%s_%s.gob", cacheDir, key, cacheVersion)
}

// Summary returns the precomputed aggregate view.
func (d *Dashboard) Summary() models.Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.summary
}

// Monthly returns the calendar-ordered monthly rollup.
func (d *Dashboard) Monthly() []models.MonthlySummary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.summary.MonthlyData
}

// revenueMap picks the summary's revenue map for one dimension.
func (d *Dashboard) revenueMap(field models.Field) map[string]float64 {
	switch field {
	case models.FieldCategory:
		return d.summary.RevenueByCategory
	case models.FieldProduct:
		return d.summary.RevenueByProduct
	case models.FieldLocation:
		return d.summary.SalesByLocation
	case models.FieldAssociate:
		return d.summary.SalesByAssociate
	case models.FieldMethod:
		return d.summary.SalesByMethod
	default:
		return nil
	}
}

// Performers returns the top and bottom n performers for one dimension.
func (d *Dashboard) Performers(field models.Field, n int) (top, bottom []models.ChartPoint) {
	d.mu.RLock()
	values := d.revenueMap(field)
	d.mu.RUnlock()

	if values == nil {
		return nil, nil
	}
	return analytics.TopPerformers(values, n), analytics.BottomPerformers(values, n)
}

// Breakdown returns the per-key group totals for one dimension.
func (d *Dashboard) Breakdown(field models.Field) map[string]models.GroupTotals {
	d.mu.RLock()
	records := d.records
	d.mu.RUnlock()

	return analytics.CalculateGroupTotals(analytics.GroupByField(records, field))
}

// Records returns the record subset matching the filters.
func (d *Dashboard) Records(f models.Filters) []models.SalesRecord {
	d.mu.RLock()
	records := d.records
	d.mu.RUnlock()

	return analytics.Apply(records, f)
}

// MetricsFor computes the standalone calculators over a filtered subset.
func (d *Dashboard) MetricsFor(f models.Filters) models.KeyMetrics {
	return analytics.Metrics(d.Records(f))
}

// Stats reports service state for the admin endpoint.
func (d *Dashboard) Stats() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return map[string]any{
		"record_count":   len(d.records),
		"last_refreshed": d.refreshedAt,
		"total_sales":    d.summary.TotalSales,
		"products":       d.summary.TotalProducts,
		"unique_clients": d.summary.TotalUniqueClients,
		"months":         len(d.summary.MonthlyData),
	}
}
