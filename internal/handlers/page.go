package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
)

var dashboardPageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sales Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f5f6fa; color: #1f2430; }
header { background: #1d2a44; color: #fff; padding: 1rem 2rem; display: flex; justify-content: space-between; align-items: center; }
main { padding: 2rem; max-width: 1100px; margin: 0 auto; }
.metric-cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(170px, 1fr)); gap: 1rem; margin-bottom: 2rem; }
.metric-card { background: #fff; border-radius: 8px; padding: 1rem; box-shadow: 0 1px 3px rgba(0,0,0,.08); display: flex; flex-direction: column; gap: .4rem; }
.metric-label { font-size: .8rem; color: #6b7280; text-transform: uppercase; }
.modern-table { width: 100%; border-collapse: collapse; background: #fff; border-radius: 8px; overflow: hidden; }
.modern-table th, .modern-table td { padding: .6rem .9rem; text-align: left; border-bottom: 1px solid #eef0f4; }
.modern-table th { background: #f0f2f7; font-size: .8rem; text-transform: uppercase; color: #4b5563; }
button.refresh { background: #2563eb; color: #fff; border: 0; border-radius: 6px; padding: .5rem 1rem; cursor: pointer; }
</style>
</head>
<body>
<header>
<h1>Sales Dashboard</h1>
<button class="refresh" data-on-click="@get('/sse/refresh-all')">Refresh</button>
</header>
<main data-on-load="@get('/sse/summary'); @get('/sse/monthly')">
<div id="refresh-status"></div>
<section id="summary-content"><p>Loading summary…</p></section>
<h2>Monthly Performance</h2>
<section id="monthly-content"><p>Loading monthly data…</p></section>
<p><a href="/export/monthly.xlsx">Download monthly report (XLSX)</a></p>
</main>
</body>
</html>`))

// PageHandlers serves the server-rendered dashboard shell; the live
// content arrives through the SSE endpoints.
type PageHandlers struct {
	logger *slog.Logger
}

func NewPageHandlers(logger *slog.Logger) *PageHandlers {
	return &PageHandlers{logger: logger}
}

func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")

	if err := dashboardPageTemplate.Execute(w, nil); err != nil {
		h.logger.Error("render dashboard page", "error", err)
	}
}
