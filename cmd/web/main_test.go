package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/source"
)

type stubSource struct {
	records []models.SalesRecord
}

func (s *stubSource) Fetch(ctx context.Context) ([]models.SalesRecord, error) {
	return s.records, nil
}

func newTestDashboard() *services.Dashboard {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	d := services.NewDashboard(&stubSource{}, "main-test", logger)
	d.SetRecords([]models.SalesRecord{
		{
			MemberID:             "M1",
			PaymentValue:         "100",
			PaymentVAT:           "10",
			PaymentDate:          "01/01/2024",
			PaymentTransactionID: "T1",
			CalculatedLocation:   "Mumbai",
			CleanedProduct:       "Membership",
			CleanedCategory:      "Fitness",
		},
		{
			MemberID:             "M2",
			PaymentValue:         "200",
			PaymentDate:          "15/02/2024",
			PaymentTransactionID: "T2",
			CalculatedLocation:   "Pune",
			CleanedProduct:       "Day Pass",
			CleanedCategory:      "Fitness",
		},
	})
	return d
}

// Integration tests for HTTP routes
func TestServer_Routes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := server.NewServer(newTestDashboard(), logger)

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/health", http.StatusOK, "application/json"},
		{"/admin/stats", http.StatusOK, "application/json"},
		{"/api/summary", http.StatusOK, "application/json"},
		{"/api/monthly", http.StatusOK, "application/json"},
		{"/api/performers?dim=location", http.StatusOK, "application/json"},
		{"/api/breakdown?field=category", http.StatusOK, "application/json"},
		{"/api/records", http.StatusOK, "application/json"},
		{"/api/metrics", http.StatusOK, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			if tt.contentType == "application/json" {
				var result any
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}
		})
	}
}

func TestServer_SSERoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := server.NewServer(newTestDashboard(), logger)

	sseRoutes := []string{
		"/sse/summary",
		"/sse/monthly",
	}

	for _, route := range sseRoutes {
		t.Run(route, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", route, nil)

			srv.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
				t.Errorf("content-type = %q, should contain 'text/event-stream'", ct)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
				t.Errorf("cache-control = %q, want 'no-cache'", cc)
			}
		})
	}
}

func TestServer_ExportRoute(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := server.NewServer(newTestDashboard(), logger)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/export/monthly.xlsx", nil)

	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content-type = %q, want an XLSX type", ct)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := server.NewServer(newTestDashboard(), logger)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/refresh", nil)

	srv.ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on a POST route: status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := server.NewServer(newTestDashboard(), logger)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/no/such/route", nil)

	srv.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestNewDataSource(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	if _, ok := newDataSource(config.SourceConfig{Kind: "csv"}, logger).(*source.CSVSource); !ok {
		t.Error("kind csv should select CSVSource")
	}
	if _, ok := newDataSource(config.SourceConfig{Kind: "xlsx"}, logger).(*source.XLSXSource); !ok {
		t.Error("kind xlsx should select XLSXSource")
	}
	if _, ok := newDataSource(config.SourceConfig{Kind: "sheets"}, logger).(*source.SheetsSource); !ok {
		t.Error("kind sheets should select SheetsSource")
	}
	// Config validation rejects unknown kinds; the constructor still
	// defaults to CSV rather than returning nil.
	if _, ok := newDataSource(config.SourceConfig{Kind: "other"}, logger).(*source.CSVSource); !ok {
		t.Error("unknown kind should fall back to CSVSource")
	}
}
