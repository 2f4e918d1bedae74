package analytics

import (
	"testing"

	"sales-dashboard/internal/models"
)

func TestUnitsSold(t *testing.T) {
	// One record is one unit; the sheet has no quantity column.
	if got := UnitsSold(make([]models.SalesRecord, 7)); got != 7 {
		t.Errorf("UnitsSold() = %d, want 7", got)
	}
	if got := UnitsSold(nil); got != 0 {
		t.Errorf("UnitsSold(nil) = %d, want 0", got)
	}
}

func TestATVAndAUV(t *testing.T) {
	records := []models.SalesRecord{
		{MemberID: "M1", PaymentValue: "100"},
		{MemberID: "M1", PaymentValue: "200"},
		{MemberID: "M2", PaymentValue: "300"},
	}

	atv, auv := ATVAndAUV(records)
	if atv != 200 {
		t.Errorf("ATV = %v, want 200", atv)
	}
	if auv != 300 {
		t.Errorf("AUV = %v, want 300", auv)
	}
}

func TestATVAndAUV_AnonymousExcludedFromAUV(t *testing.T) {
	records := []models.SalesRecord{
		{MemberID: "M1", PaymentValue: "100"},
		{MemberID: "", PaymentValue: "900"},
	}

	atv, auv := ATVAndAUV(records)
	// ATV sees every record, AUV only the identified one.
	if atv != 500 {
		t.Errorf("ATV = %v, want 500", atv)
	}
	if auv != 100 {
		t.Errorf("AUV = %v, want 100", auv)
	}
}

func TestATVAndAUV_Empty(t *testing.T) {
	atv, auv := ATVAndAUV(nil)
	if atv != 0 || auv != 0 {
		t.Errorf("ATVAndAUV(nil) = %v, %v, want 0, 0", atv, auv)
	}
}

func TestUPT(t *testing.T) {
	records := []models.SalesRecord{
		{PaymentTransactionID: "T1"},
		{PaymentTransactionID: "T1"},
		{PaymentTransactionID: "T1"},
		{PaymentTransactionID: "T2"},
	}

	if got := UPT(records); got != 2 {
		t.Errorf("UPT() = %v, want 2", got)
	}
}

func TestUPT_MissingTransactionIDs(t *testing.T) {
	records := []models.SalesRecord{
		{PaymentTransactionID: "T1"},
		{PaymentTransactionID: ""},
		{PaymentTransactionID: ""},
	}

	// Blank IDs count as units but never as transactions.
	if got := UPT(records); got != 3 {
		t.Errorf("UPT() = %v, want 3", got)
	}

	if got := UPT(nil); got != 0 {
		t.Errorf("UPT(nil) = %v, want 0", got)
	}
}

func TestMetrics(t *testing.T) {
	records := []models.SalesRecord{
		{MemberID: "M1", PaymentValue: "100", PaymentTransactionID: "T1"},
		{MemberID: "M2", PaymentValue: "200", PaymentTransactionID: "T2"},
	}

	m := Metrics(records)
	if m.UnitsSold != 2 {
		t.Errorf("UnitsSold = %d, want 2", m.UnitsSold)
	}
	if m.ATV != 150 {
		t.Errorf("ATV = %v, want 150", m.ATV)
	}
	if m.AUV != 150 {
		t.Errorf("AUV = %v, want 150", m.AUV)
	}
	if m.UPT != 1 {
		t.Errorf("UPT = %v, want 1", m.UPT)
	}
}
