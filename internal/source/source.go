package source

import (
	"context"
	"strings"

	"sales-dashboard/internal/models"
)

// DataSource supplies the engine with raw sales records. Implementations
// own their transport (file, workbook, Sheets API); callers treat a
// failed fetch as an empty record set.
type DataSource interface {
	Fetch(ctx context.Context) ([]models.SalesRecord, error)
}

// Upstream header names, exactly as they appear in the sheet's header
// row. The schema is external and versioned; lookups tolerate missing
// columns by leaving the field empty.
const (
	colMemberID        = "Member ID"
	colCustomerName    = "Customer Name"
	colCustomerEmail   = "Customer Email"
	colPaymentDate     = "Payment Date"
	colPaymentValue    = "Payment Value"
	colPaymentVAT      = "Payment VAT"
	colPaymentItem     = "Payment Item"
	colPaymentMethod   = "Payment Method"
	colPaymentStatus   = "Payment Status"
	colTransactionID   = "Payment Transaction ID"
	colSoldBy          = "Sold By"
	colLocation        = "Calculated Location"
	colCleanedProduct  = "Cleaned Product"
	colCleanedCategory = "Cleaned Category"
)

// headerIndex maps trimmed header names to their column position.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	return index
}

func cell(row []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// recordFromRow materializes one record from a header-keyed row.
func recordFromRow(row []string, index map[string]int) models.SalesRecord {
	return models.SalesRecord{
		MemberID:             cell(row, index, colMemberID),
		CustomerName:         cell(row, index, colCustomerName),
		CustomerEmail:        cell(row, index, colCustomerEmail),
		PaymentDate:          cell(row, index, colPaymentDate),
		PaymentValue:         cell(row, index, colPaymentValue),
		PaymentVAT:           cell(row, index, colPaymentVAT),
		PaymentItem:          cell(row, index, colPaymentItem),
		PaymentMethod:        cell(row, index, colPaymentMethod),
		PaymentStatus:        cell(row, index, colPaymentStatus),
		PaymentTransactionID: cell(row, index, colTransactionID),
		SoldBy:               cell(row, index, colSoldBy),
		CalculatedLocation:   cell(row, index, colLocation),
		CleanedProduct:       cell(row, index, colCleanedProduct),
		CleanedCategory:      cell(row, index, colCleanedCategory),
	}
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
