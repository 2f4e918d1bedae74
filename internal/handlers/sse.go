package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

const maxMonthlyRows = 36

var templateFuncs = template.FuncMap{
	"currency": analytics.FormatCurrency,
	"number":   analytics.FormatNumber,
}

var summaryCardsTemplate = template.Must(template.New("summaryCards").Funcs(templateFuncs).Parse(`
<div id="summary-content">
<div class="metric-cards">
<div class="metric-card"><span class="metric-label">Total Sales</span><strong>{{currency .TotalSales}}</strong></div>
<div class="metric-card"><span class="metric-label">Transactions</span><strong>{{.TotalTransactions}}</strong></div>
<div class="metric-card"><span class="metric-label">Avg Order Value</span><strong>{{currency .AverageOrderValue}}</strong></div>
<div class="metric-card"><span class="metric-label">Products</span><strong>{{.TotalProducts}}</strong></div>
<div class="metric-card"><span class="metric-label">Unique Clients</span><strong>{{.TotalUniqueClients}}</strong></div>
</div>
</div>`))

var monthlyTableTemplate = template.Must(template.New("monthlyTable").Funcs(templateFuncs).Parse(`
<div id="monthly-content">
<table class="modern-table">
<thead><tr><th>Month</th><th>Sales</th><th>Tax</th><th>Units</th><th>Clients</th><th>ATV</th><th>AUV</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.MonthYear}}</td>
<td><strong>{{currency .TotalSales}}</strong></td>
<td>{{currency .TotalTax}}</td>
<td>{{.UnitsSold}}</td>
<td>{{.UniqueClients}}</td>
<td>{{currency .ATV}}</td>
<td>{{currency .AUV}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *SSEHandlers) renderSummaryCards(summary models.Summary) (string, error) {
	var buf strings.Builder
	err := summaryCardsTemplate.Execute(&buf, summary)
	return buf.String(), err
}

func (h *SSEHandlers) renderMonthlyTable(months []models.MonthlySummary) (string, error) {
	if len(months) > maxMonthlyRows {
		months = months[len(months)-maxMonthlyRows:]
	}

	var buf strings.Builder
	err := monthlyTableTemplate.Execute(&buf, months)
	return buf.String(), err
}

func (h *SSEHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	summary := h.dashboard.Summary()
	html, err := h.renderSummaryCards(summary)
	if err != nil {
		h.logger.Error("render summary cards", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := json.Marshal(map[string]any{
		"categoryData": analytics.ToChartData(summary.RevenueByCategory),
		"productData":  analytics.TopItems(analytics.ToChartData(summary.RevenueByProduct), 10),
	})
	if err != nil {
		h.logger.Error("marshal summary signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	months := h.dashboard.Monthly()
	html, err := h.renderMonthlyTable(months)
	if err != nil {
		h.logger.Error("render monthly table", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := json.Marshal(map[string]any{
		"monthlyData": months,
	})
	if err != nil {
		h.logger.Error("marshal monthly signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	if err := h.dashboard.Refresh(r.Context()); err != nil {
		h.logger.Error("dashboard refresh failed", "error", err)
		sse.PatchElements(`<div id="refresh-status">⚠ refresh failed, showing previous data</div>`)
		return
	}

	summary := h.dashboard.Summary()

	summaryHTML, err := h.renderSummaryCards(summary)
	if err != nil {
		h.logger.Error("render summary cards", "error", err)
		return
	}
	sse.PatchElements(summaryHTML)

	monthlyHTML, err := h.renderMonthlyTable(summary.MonthlyData)
	if err != nil {
		h.logger.Error("render monthly table", "error", err)
		return
	}
	sse.PatchElements(monthlyHTML)

	allSignals, err := json.Marshal(map[string]any{
		"categoryData": analytics.ToChartData(summary.RevenueByCategory),
		"productData":  analytics.TopItems(analytics.ToChartData(summary.RevenueByProduct), 10),
		"monthlyData":  summary.MonthlyData,
	})
	if err != nil {
		h.logger.Error("marshal refresh signals", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
