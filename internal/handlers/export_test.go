package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportHandlers_HandleMonthlyExport(t *testing.T) {
	handlers := NewExportHandlers(createTestDashboard(), quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/export/monthly.xlsx", nil)
	w := httptest.NewRecorder()

	handlers.HandleMonthlyExport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content-type = %q, want an XLSX type", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "monthly-performance.xlsx") {
		t.Errorf("content-disposition = %q, want an attachment filename", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Monthly Performance")
	if err != nil {
		t.Fatalf("missing sheet: %v", err)
	}

	// Header plus one row per month (Jan and Feb in the fixture).
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Month" || rows[0][1] != "Total Sales" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "Jan 2024" {
		t.Errorf("first data row = %v, want Jan 2024 first", rows[1])
	}
}
