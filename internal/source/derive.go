package source

import (
	"strconv"
	"strings"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/models"
)

// Tax estimate applied at ingest when the sheet leaves VAT blank. This
// is distinct from the 15% estimate inside the monthly rollup; both
// rates are carried over from the upstream dashboard unchanged.
const ingestTaxRate = 0.18

// Enrich computes the derived fields on every record in place: month and
// year labels from the payment date, the ingest tax amount, pre/post-tax
// revenue and the sales-associate label.
func Enrich(records []models.SalesRecord) {
	for i := range records {
		enrichRecord(&records[i])
	}
}

func enrichRecord(r *models.SalesRecord) {
	if date, ok := analytics.ParseDate(r.PaymentDate); ok {
		r.Month = int(date.Month())
		r.Year = date.Year()
		r.MonthYear = date.Format("Jan 2006")
	}

	value := analytics.ParseAmount(r.PaymentValue)

	// An explicit VAT wins even when it is zero; only a blank or
	// unparseable VAT falls back to the estimate.
	if vat := strings.TrimSpace(r.PaymentVAT); vat != "" && parseable(vat) {
		r.TaxAmount = analytics.ParseAmount(vat)
	} else if r.PaymentValue != "" {
		r.TaxAmount = value * ingestTaxRate
	}

	r.RevenuePostTax = value
	r.RevenuePreTax = value - r.TaxAmount

	r.SalesAssociate = r.SoldBy
	if r.SalesAssociate == "" {
		r.SalesAssociate = "Unknown"
	}
}

func parseable(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
