package analytics

import (
	"slices"
	"strings"

	"sales-dashboard/internal/models"
)

// GroupByField partitions records by one dimension, keyed by the raw
// field value or "Unknown" when blank. Relative record order within a
// group is preserved.
func GroupByField(records []models.SalesRecord, field models.Field) map[string][]models.SalesRecord {
	groups := make(map[string][]models.SalesRecord)
	for _, r := range records {
		key := orLabel(r.FieldValue(field), labelUnknown)
		groups[key] = append(groups[key], r)
	}
	return groups
}

// CalculateGroupTotals aggregates each group into revenue, tax and
// client/transaction counts. Tax here uses the direct-VAT policy (plain
// sum of parsed VAT, no estimate), unlike the monthly rollup.
func CalculateGroupTotals(groups map[string][]models.SalesRecord) map[string]models.GroupTotals {
	totals := make(map[string]models.GroupTotals, len(groups))

	for key, groupRecords := range groups {
		var t models.GroupTotals
		clients := make(map[string]struct{})
		transactions := make(map[string]struct{})

		for _, r := range groupRecords {
			t.TotalRevenue += ParseAmount(r.PaymentValue)
			t.TaxAmount += directVAT(r.PaymentVAT)

			if r.MemberID != "" {
				clients[r.MemberID] = struct{}{}
			}
			if r.PaymentTransactionID != "" {
				transactions[r.PaymentTransactionID] = struct{}{}
			}
		}

		t.PreTaxRevenue = t.TotalRevenue - t.TaxAmount
		t.UnitsSold = len(groupRecords)
		t.Transactions = len(transactions)
		t.UniqueClients = len(clients)
		t.ATV = t.TotalRevenue / atLeastOne(t.UnitsSold)
		t.AUV = t.TotalRevenue / atLeastOne(t.UniqueClients)

		totals[key] = t
	}
	return totals
}

// ToChartData projects a label-to-value map into chart points sorted by
// value descending. Ties break on name so the output is deterministic.
func ToChartData(values map[string]float64) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(values))
	for name, value := range values {
		points = append(points, models.ChartPoint{Name: name, Value: value})
	}
	slices.SortFunc(points, comparePoints)
	return points
}

func comparePoints(a, b models.ChartPoint) int {
	if a.Value > b.Value {
		return -1
	}
	if a.Value < b.Value {
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}

// TopPerformers returns the n highest-valued entries, best first.
func TopPerformers(values map[string]float64, n int) []models.ChartPoint {
	points := ToChartData(values)
	if len(points) > n {
		points = points[:n]
	}
	return points
}

// BottomPerformers returns up to n entries with strictly positive
// value, worst first. Zero and negative entries are excluded outright,
// so the result may be shorter than n, or empty, even for a large map.
func BottomPerformers(values map[string]float64, n int) []models.ChartPoint {
	points := ToChartData(values)

	positive := points[:0:0]
	for _, p := range points {
		if p.Value > 0 {
			positive = append(positive, p)
		}
	}

	slices.Reverse(positive)
	if len(positive) > n {
		positive = positive[:n]
	}
	return positive
}

// TopItems keeps the n largest points and collapses the remainder into
// a single synthetic "Others" point, keeping pie and bar charts legible.
func TopItems(points []models.ChartPoint, n int) []models.ChartPoint {
	if len(points) <= n {
		return slices.Clone(points)
	}

	top := slices.Clone(points[:n])
	var others float64
	for _, p := range points[n:] {
		others += p.Value
	}
	return append(top, models.ChartPoint{Name: "Others", Value: others})
}
