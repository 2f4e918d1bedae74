package analytics

import (
	"time"

	"sales-dashboard/internal/models"
)

// Default labels applied when a record is missing a dimension value.
const (
	labelUncategorized = "Uncategorized"
	labelOther         = "Other"
	labelUnknown       = "Unknown"
)

// CalculateSummary derives the full aggregate view from a record set in
// a single pass per concern. It never fails: malformed numeric fields
// count as zero, unparseable dates are skipped, and an empty input
// yields a well-formed zero-valued summary with empty maps.
func CalculateSummary(records []models.SalesRecord) models.Summary {
	summary := models.Summary{
		TotalTransactions: len(records),
		RevenueByCategory: make(map[string]float64),
		RevenueByProduct:  make(map[string]float64),
		SalesByMethod:     make(map[string]float64),
		SalesByLocation:   make(map[string]float64),
		SalesByAssociate:  make(map[string]float64),
	}

	uniqueProducts := make(map[string]struct{})
	uniqueClients := make(map[string]struct{})

	var minDate, maxDate time.Time

	for _, r := range records {
		value := ParseAmount(r.PaymentValue)
		summary.TotalSales += value

		if r.CleanedProduct != "" {
			uniqueProducts[r.CleanedProduct] = struct{}{}
		}
		if r.MemberID != "" {
			uniqueClients[r.MemberID] = struct{}{}
		}

		summary.RevenueByCategory[orLabel(r.CleanedCategory, labelUncategorized)] += value
		summary.RevenueByProduct[orLabel(r.CleanedProduct, labelOther)] += value
		summary.SalesByMethod[orLabel(r.PaymentMethod, labelOther)] += value
		summary.SalesByLocation[orLabel(r.CalculatedLocation, labelUnknown)] += value
		summary.SalesByAssociate[orLabel(r.SoldBy, labelUnknown)] += value

		if date, ok := ParseDate(r.PaymentDate); ok {
			if minDate.IsZero() || date.Before(minDate) {
				minDate = date
			}
			if maxDate.IsZero() || date.After(maxDate) {
				maxDate = date
			}
		}
	}

	summary.TotalProducts = len(uniqueProducts)
	summary.TotalUniqueClients = len(uniqueClients)
	summary.AverageOrderValue = summary.TotalSales / atLeastOne(summary.TotalTransactions)
	summary.DateRange = models.DateRange{Start: minDate, End: maxDate}
	summary.MonthlyData = MonthlyData(records)

	return summary
}

func orLabel(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// atLeastOne guards ratio denominators so a zero-record set renders as
// 0 instead of NaN.
func atLeastOne(n int) float64 {
	if n < 1 {
		return 1
	}
	return float64(n)
}
