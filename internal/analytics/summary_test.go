package analytics

import (
	"math"
	"testing"
	"time"

	"sales-dashboard/internal/models"
)

func twoMemberRecords() []models.SalesRecord {
	return []models.SalesRecord{
		{
			MemberID:           "M1",
			PaymentValue:       "100",
			PaymentVAT:         "10",
			PaymentDate:        "01/01/2024",
			CalculatedLocation: "A",
			CleanedProduct:     "Membership",
			CleanedCategory:    "Fitness",
		},
		{
			MemberID:           "M1",
			PaymentValue:       "200",
			PaymentVAT:         "",
			PaymentDate:        "15/01/2024",
			CalculatedLocation: "B",
			CleanedProduct:     "Day Pass",
			CleanedCategory:    "Fitness",
		},
	}
}

func TestCalculateSummary(t *testing.T) {
	summary := CalculateSummary(twoMemberRecords())

	if summary.TotalSales != 300 {
		t.Errorf("TotalSales = %v, want 300", summary.TotalSales)
	}
	if summary.TotalTransactions != 2 {
		t.Errorf("TotalTransactions = %d, want 2", summary.TotalTransactions)
	}
	if summary.TotalUniqueClients != 1 {
		t.Errorf("TotalUniqueClients = %d, want 1", summary.TotalUniqueClients)
	}
	if summary.TotalProducts != 2 {
		t.Errorf("TotalProducts = %d, want 2", summary.TotalProducts)
	}
	if summary.AverageOrderValue != 150 {
		t.Errorf("AverageOrderValue = %v, want 150", summary.AverageOrderValue)
	}

	if got := summary.SalesByLocation["A"]; got != 100 {
		t.Errorf("SalesByLocation[A] = %v, want 100", got)
	}
	if got := summary.SalesByLocation["B"]; got != 200 {
		t.Errorf("SalesByLocation[B] = %v, want 200", got)
	}
	if got := summary.RevenueByCategory["Fitness"]; got != 300 {
		t.Errorf("RevenueByCategory[Fitness] = %v, want 300", got)
	}

	wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local)
	if !summary.DateRange.Start.Equal(wantStart) {
		t.Errorf("DateRange.Start = %v, want %v", summary.DateRange.Start, wantStart)
	}
	if !summary.DateRange.End.Equal(wantEnd) {
		t.Errorf("DateRange.End = %v, want %v", summary.DateRange.End, wantEnd)
	}

	if len(summary.MonthlyData) != 1 {
		t.Fatalf("MonthlyData length = %d, want 1", len(summary.MonthlyData))
	}
}

func TestCalculateSummary_RevenueConservation(t *testing.T) {
	summary := CalculateSummary(twoMemberRecords())

	// Every dimension map partitions the same records, so each must sum
	// back to the grand total.
	maps := map[string]map[string]float64{
		"category":  summary.RevenueByCategory,
		"product":   summary.RevenueByProduct,
		"method":    summary.SalesByMethod,
		"location":  summary.SalesByLocation,
		"associate": summary.SalesByAssociate,
	}
	for name, m := range maps {
		var sum float64
		for _, v := range m {
			sum += v
		}
		if math.Abs(sum-summary.TotalSales) > 1e-9 {
			t.Errorf("%s map sums to %v, want %v", name, sum, summary.TotalSales)
		}
	}
}

func TestCalculateSummary_DefaultLabels(t *testing.T) {
	summary := CalculateSummary([]models.SalesRecord{
		{PaymentValue: "50"},
	})

	if got := summary.RevenueByCategory["Uncategorized"]; got != 50 {
		t.Errorf("blank category should land in Uncategorized, got map %v", summary.RevenueByCategory)
	}
	if got := summary.RevenueByProduct["Other"]; got != 50 {
		t.Errorf("blank product should land in Other, got map %v", summary.RevenueByProduct)
	}
	if got := summary.SalesByMethod["Other"]; got != 50 {
		t.Errorf("blank method should land in Other, got map %v", summary.SalesByMethod)
	}
	if got := summary.SalesByLocation["Unknown"]; got != 50 {
		t.Errorf("blank location should land in Unknown, got map %v", summary.SalesByLocation)
	}
	if got := summary.SalesByAssociate["Unknown"]; got != 50 {
		t.Errorf("blank associate should land in Unknown, got map %v", summary.SalesByAssociate)
	}
}

func TestCalculateSummary_Empty(t *testing.T) {
	summary := CalculateSummary(nil)

	if summary.TotalSales != 0 {
		t.Errorf("TotalSales = %v, want 0", summary.TotalSales)
	}
	if summary.AverageOrderValue != 0 {
		t.Errorf("AverageOrderValue = %v, want 0 (not NaN)", summary.AverageOrderValue)
	}
	if summary.RevenueByCategory == nil {
		t.Error("RevenueByCategory should be an empty map, not nil")
	}
	if !summary.DateRange.Start.IsZero() || !summary.DateRange.End.IsZero() {
		t.Errorf("empty set should have zero-time date range, got %+v", summary.DateRange)
	}
	if len(summary.MonthlyData) != 0 {
		t.Errorf("MonthlyData length = %d, want 0", len(summary.MonthlyData))
	}
}

func TestCalculateSummary_Idempotent(t *testing.T) {
	records := twoMemberRecords()
	first := CalculateSummary(records)
	second := CalculateSummary(records)

	if first.TotalSales != second.TotalSales ||
		first.TotalUniqueClients != second.TotalUniqueClients ||
		first.AverageOrderValue != second.AverageOrderValue {
		t.Error("CalculateSummary() should be deterministic over the same input")
	}
}

func TestCalculateSummary_MalformedFieldsDegradeToZero(t *testing.T) {
	summary := CalculateSummary([]models.SalesRecord{
		{PaymentValue: "abc", PaymentDate: "not-a-date"},
		{PaymentValue: "100", PaymentDate: "01/06/2024"},
	})

	if summary.TotalSales != 100 {
		t.Errorf("TotalSales = %v, want 100", summary.TotalSales)
	}
	if summary.TotalTransactions != 2 {
		t.Errorf("malformed record still counts as a transaction, got %d", summary.TotalTransactions)
	}

	// The unparseable date must not pin the range to the zero time.
	want := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)
	if !summary.DateRange.Start.Equal(want) {
		t.Errorf("DateRange.Start = %v, want %v", summary.DateRange.Start, want)
	}
}

func BenchmarkCalculateSummary(b *testing.B) {
	records := make([]models.SalesRecord, 1000)
	for i := range records {
		records[i] = models.SalesRecord{
			MemberID:           "M" + string(rune('A'+i%26)),
			PaymentValue:       "150",
			PaymentVAT:         "15",
			PaymentDate:        "15/03/2024",
			CalculatedLocation: "Location" + string(rune('A'+i%5)),
			CleanedProduct:     "Product" + string(rune('A'+i%50)),
			CleanedCategory:    "Category" + string(rune('A'+i%8)),
		}
	}

	b.ResetTimer()
	for b.Loop() {
		_ = CalculateSummary(records)
	}
}
