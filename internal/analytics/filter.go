package analytics

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"sales-dashboard/internal/models"
)

// FilterByDays keeps records whose payment date falls within the last
// `days` days. A zero window means no filtering. Records with an
// unparseable date are dropped, not kept.
func FilterByDays(records []models.SalesRecord, days int) []models.SalesRecord {
	if days == 0 {
		return records
	}

	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	var filtered []models.SalesRecord
	for _, r := range records {
		if date, ok := ParseDate(r.PaymentDate); ok && !date.Before(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// searchFields lists the record fields the free-text search scans.
func searchFields(r models.SalesRecord) []string {
	return []string{
		r.CustomerName,
		r.CustomerEmail,
		r.PaymentItem,
		r.CalculatedLocation,
		r.CleanedProduct,
		r.PaymentTransactionID,
		r.CleanedCategory,
		r.SoldBy,
	}
}

// FilterBySearch keeps records where any searchable field contains the
// query, case-insensitively. An empty query imposes no constraint.
func FilterBySearch(records []models.SalesRecord, query string) []models.SalesRecord {
	if query == "" {
		return records
	}

	needle := strings.ToLower(query)
	var filtered []models.SalesRecord
	for _, r := range records {
		for _, field := range searchFields(r) {
			if strings.Contains(strings.ToLower(field), needle) {
				filtered = append(filtered, r)
				break
			}
		}
	}
	return filtered
}

// FilterByValueRange keeps records whose parsed payment value lies in
// [min, max] inclusive.
func FilterByValueRange(records []models.SalesRecord, min, max float64) []models.SalesRecord {
	var filtered []models.SalesRecord
	for _, r := range records {
		if v := ParseAmount(r.PaymentValue); v >= min && v <= max {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterByDateRange keeps records whose parsed payment date lies in
// [start, end] inclusive; records without a parseable date are dropped.
func FilterByDateRange(records []models.SalesRecord, start, end time.Time) []models.SalesRecord {
	var filtered []models.SalesRecord
	for _, r := range records {
		date, ok := ParseDate(r.PaymentDate)
		if ok && !date.Before(start) && !date.After(end) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func filterByMembership(records []models.SalesRecord, field models.Field, allowed []string) []models.SalesRecord {
	if len(allowed) == 0 {
		return records
	}

	var filtered []models.SalesRecord
	for _, r := range records {
		if slices.Contains(allowed, r.FieldValue(field)) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Apply runs every configured filter over the record set. All filters
// are conjunctive, so application order does not change the result.
func Apply(records []models.SalesRecord, f models.Filters) []models.SalesRecord {
	records = FilterByDays(records, f.Days)
	records = FilterBySearch(records, f.Search)

	if f.MinValue != nil || f.MaxValue != nil {
		min, max := 0.0, math.MaxFloat64
		if f.MinValue != nil {
			min = *f.MinValue
		}
		if f.MaxValue != nil {
			max = *f.MaxValue
		}
		records = FilterByValueRange(records, min, max)
	}

	records = filterByMembership(records, models.FieldLocation, f.Locations)
	records = filterByMembership(records, models.FieldProduct, f.Products)
	records = filterByMembership(records, models.FieldCategory, f.Categories)
	records = filterByMembership(records, models.FieldAssociate, f.Sellers)
	records = filterByMembership(records, models.FieldMethod, f.PaymentMethods)

	if f.Start != nil && f.End != nil {
		records = FilterByDateRange(records, *f.Start, *f.End)
	}

	return records
}

// Period selects the bucket width for date-based grouping.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// GroupByPeriod buckets records by the calendar period of their payment
// date. Records without a parseable date are skipped.
func GroupByPeriod(records []models.SalesRecord, period Period) map[string][]models.SalesRecord {
	groups := make(map[string][]models.SalesRecord)

	for _, r := range records {
		date, ok := ParseDate(r.PaymentDate)
		if !ok {
			continue
		}

		var key string
		switch period {
		case PeriodDay:
			key = date.Format("2006-01-02")
		case PeriodWeek:
			year, week := date.ISOWeek()
			key = fmt.Sprintf("Week %d, %d", week, year)
		case PeriodMonth:
			key = date.Format("January 2006")
		case PeriodQuarter:
			quarter := (int(date.Month())-1)/3 + 1
			key = fmt.Sprintf("Q%d %d", quarter, date.Year())
		case PeriodYear:
			key = date.Format("2006")
		default:
			continue
		}

		groups[key] = append(groups[key], r)
	}
	return groups
}
