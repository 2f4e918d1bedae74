package analytics

import (
	"slices"
	"strings"

	"sales-dashboard/internal/models"
)

type monthAccumulator struct {
	summary models.MonthlySummary
	clients map[string]struct{}
}

// MonthlyData buckets records by calendar month, accumulating sales,
// tax, units and unique clients, then derives the per-month average
// metrics. Records without a parseable payment date contribute nothing.
// Tax uses the estimated-VAT policy: explicit VAT when present, else a
// flat 15% of the sale value. The result is sorted by calendar order.
func MonthlyData(records []models.SalesRecord) []models.MonthlySummary {
	buckets := make(map[string]*monthAccumulator)

	for _, r := range records {
		date, ok := ParseDate(r.PaymentDate)
		if !ok {
			continue
		}

		sortKey := date.Format("2006-01")
		bucket, exists := buckets[sortKey]
		if !exists {
			bucket = &monthAccumulator{
				summary: models.MonthlySummary{
					MonthYear: date.Format("Jan 2006"),
					SortKey:   sortKey,
				},
				clients: make(map[string]struct{}),
			}
			buckets[sortKey] = bucket
		}

		saleValue := ParseAmount(r.PaymentValue)
		taxValue := estimatedVAT(saleValue, r.PaymentVAT)

		bucket.summary.TotalSales += saleValue
		bucket.summary.TotalTax += taxValue
		bucket.summary.UnitsSold++
		bucket.summary.Transactions++
		bucket.summary.PreTaxRevenue += saleValue - taxValue
		bucket.summary.PostTaxRevenue += saleValue

		if r.MemberID != "" {
			bucket.clients[r.MemberID] = struct{}{}
		}
	}

	months := make([]models.MonthlySummary, 0, len(buckets))
	for _, bucket := range buckets {
		m := bucket.summary
		m.UniqueClients = len(bucket.clients)
		m.ATV = m.TotalSales / atLeastOne(m.Transactions)
		m.AUV = m.TotalSales / atLeastOne(m.UniqueClients)
		m.AverageSpend = m.AUV
		months = append(months, m)
	}

	// Zero-padded fixed-width keys make the lexicographic sort a
	// calendar sort.
	slices.SortFunc(months, func(a, b models.MonthlySummary) int {
		return strings.Compare(a.SortKey, b.SortKey)
	})
	return months
}

// MonthlyDataByGroup computes a monthly rollup per group key, as used by
// the per-category and per-product drill-down views.
func MonthlyDataByGroup(records []models.SalesRecord, field models.Field) map[string][]models.MonthlySummary {
	grouped := GroupByField(records, field)

	result := make(map[string][]models.MonthlySummary, len(grouped))
	for key, groupRecords := range grouped {
		result[key] = MonthlyData(groupRecords)
	}
	return result
}
