package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const defaultPerformerCount = 5

type APIHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": "public, max-age=300",
	}
	errors.WriteSuccessWithHeaders(w, h.dashboard.Summary(), headers)
}

func (h *APIHandlers) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": "public, max-age=300",
	}
	errors.WriteSuccessWithHeaders(w, h.dashboard.Monthly(), headers)
}

// fieldFromQuery maps a dimension query parameter to a record field.
func fieldFromQuery(value string) (models.Field, bool) {
	switch value {
	case "category":
		return models.FieldCategory, true
	case "product":
		return models.FieldProduct, true
	case "location":
		return models.FieldLocation, true
	case "associate":
		return models.FieldAssociate, true
	case "method":
		return models.FieldMethod, true
	case "status":
		return models.FieldStatus, true
	default:
		return "", false
	}
}

func (h *APIHandlers) HandlePerformers(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	field, ok := fieldFromQuery(r.URL.Query().Get("dim"))
	if !ok {
		errors.WriteError(w, h.logger, errors.BadRequest("unknown dimension, use one of: category, product, location, associate, method"), requestID)
		return
	}

	n := defaultPerformerCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			errors.WriteError(w, h.logger, errors.BadRequest("n must be a positive integer"), requestID)
			return
		}
		n = parsed
	}

	top, bottom := h.dashboard.Performers(field, n)
	errors.WriteSuccess(w, map[string]any{
		"top":    top,
		"bottom": bottom,
	})
}

func (h *APIHandlers) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	field, ok := fieldFromQuery(r.URL.Query().Get("field"))
	if !ok {
		errors.WriteError(w, h.logger, errors.BadRequest("unknown field, use one of: category, product, location, associate, method, status"), requestID)
		return
	}

	errors.WriteSuccess(w, h.dashboard.Breakdown(field))
}

// filtersFromQuery builds the record filters from query parameters.
// Malformed numeric or date parameters are ignored rather than
// rejected; the dashboard always renders a best-effort view.
func filtersFromQuery(r *http.Request) models.Filters {
	q := r.URL.Query()

	var f models.Filters
	if days, err := strconv.Atoi(q.Get("days")); err == nil && days > 0 {
		f.Days = days
	}
	f.Search = q.Get("q")

	if min, err := strconv.ParseFloat(q.Get("min"), 64); err == nil {
		f.MinValue = &min
	}
	if max, err := strconv.ParseFloat(q.Get("max"), 64); err == nil {
		f.MaxValue = &max
	}

	f.Locations = splitList(q.Get("locations"))
	f.Products = splitList(q.Get("products"))
	f.Categories = splitList(q.Get("categories"))
	f.Sellers = splitList(q.Get("sellers"))
	f.PaymentMethods = splitList(q.Get("methods"))

	if start, ok := analytics.ParseDate(q.Get("start")); ok {
		f.Start = &start
	}
	if end, ok := analytics.ParseDate(q.Get("end")); ok {
		f.End = &end
	}

	return f
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}

func (h *APIHandlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	records := h.dashboard.Records(filtersFromQuery(r))
	if records == nil {
		records = []models.SalesRecord{}
	}
	errors.WriteSuccess(w, records)
}

func (h *APIHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.MetricsFor(filtersFromQuery(r)))
}

func (h *APIHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	if err := h.dashboard.Refresh(r.Context()); err != nil {
		h.logger.Error("manual refresh failed", "error", err, "request_id", requestID)
		errors.WriteError(w, h.logger, errors.ServiceUnavailable("data source refresh failed"), requestID)
		return
	}

	errors.WriteSuccess(w, h.dashboard.Stats())
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}
	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Stats())
}
