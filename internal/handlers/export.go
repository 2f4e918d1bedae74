package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/services"
)

const exportSheetName = "Monthly Performance"

// ExportHandlers serves spreadsheet downloads of the derived views.
type ExportHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewExportHandlers(dashboard *services.Dashboard, logger *slog.Logger) *ExportHandlers {
	return &ExportHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

// HandleMonthlyExport streams the monthly rollup as an XLSX workbook.
func (h *ExportHandlers) HandleMonthlyExport(w http.ResponseWriter, r *http.Request) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		h.logger.Error("rename export sheet", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	header := []any{
		"Month", "Total Sales", "Total Tax", "Pre-Tax Revenue",
		"Post-Tax Revenue", "Units Sold", "Transactions",
		"Unique Clients", "ATV", "AUV",
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		h.logger.Error("write export header", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	for i, m := range h.dashboard.Monthly() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			h.logger.Error("export cell name", "error", err)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}

		row := []any{
			m.MonthYear, m.TotalSales, m.TotalTax, m.PreTaxRevenue,
			m.PostTaxRevenue, m.UnitsSold, m.Transactions,
			m.UniqueClients, m.ATV, m.AUV,
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			h.logger.Error("write export row", "error", err, "row", i+2)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "monthly-performance.xlsx"))

	if err := f.Write(w); err != nil {
		h.logger.Error("stream export workbook", "error", err)
	}
}
