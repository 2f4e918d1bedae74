package analytics

import "sales-dashboard/internal/models"

// UnitsSold counts units in a record set. The upstream sheet has no
// quantity column, so one record is exactly one unit.
func UnitsSold(records []models.SalesRecord) int {
	return len(records)
}

// ATVAndAUV computes the average transaction value and average user
// value of a record set. ATV divides total sales by the record count.
// AUV sums per-customer totals over records with an identified customer
// and divides by the number of distinct customers; anonymous records
// are excluded from both sides of that ratio.
func ATVAndAUV(records []models.SalesRecord) (atv, auv float64) {
	var totalSales float64
	perCustomer := make(map[string]float64)

	for _, r := range records {
		value := ParseAmount(r.PaymentValue)
		totalSales += value

		if r.MemberID != "" {
			perCustomer[r.MemberID] += value
		}
	}

	atv = totalSales / atLeastOne(len(records))

	var customerTotal float64
	for _, total := range perCustomer {
		customerTotal += total
	}
	auv = customerTotal / atLeastOne(len(perCustomer))

	return atv, auv
}

// UPT computes units per transaction: record count over the number of
// distinct non-empty transaction IDs. Records lacking a transaction ID
// still count as units but never as transactions.
func UPT(records []models.SalesRecord) float64 {
	transactions := make(map[string]struct{})
	for _, r := range records {
		if r.PaymentTransactionID != "" {
			transactions[r.PaymentTransactionID] = struct{}{}
		}
	}
	return float64(len(records)) / atLeastOne(len(transactions))
}

// Metrics bundles the standalone calculators for one record set.
func Metrics(records []models.SalesRecord) models.KeyMetrics {
	atv, auv := ATVAndAUV(records)
	return models.KeyMetrics{
		UnitsSold: UnitsSold(records),
		ATV:       atv,
		AUV:       auv,
		UPT:       UPT(records),
	}
}
