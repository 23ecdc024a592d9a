package api

import (
	"net/http"

	"github.com/google/uuid"

	"pointage/adapters/export"
	"pointage/app"
	"pointage/internal/errors"
	"pointage/internal/logging"
	"pointage/models"
)

// ReportHandler serves the cross-cutting summary report in several formats
type ReportHandler struct {
	reports *app.ReportService
	log     *logging.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *app.ReportService, log *logging.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log}
}

// Summary handles GET /api/reports/summary?format=json|csv|xlsx|pdf
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.ReportFilter{
		From:            q.Get("from"),
		To:              q.Get("to"),
		WorkstationCode: q.Get("workstation"),
	}
	if employee := q.Get("employee_id"); employee != "" {
		id, err := uuid.Parse(employee)
		if err != nil {
			respondError(h.log, w, r, errors.ValidationError("invalid employee_id"))
			return
		}
		filter.EmployeeID = &id
	}

	summary, err := h.reports.Summary(r.Context(), filter)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	switch q.Get("format") {
	case "", "json":
		respondOK(w, summary, "")
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
		if err := export.WriteCSV(w, summary); err != nil {
			h.log.Error("csv export failed: %v", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
		if err := export.WriteExcel(w, summary); err != nil {
			h.log.Error("xlsx export failed: %v", err)
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
		if err := export.WritePDF(w, summary); err != nil {
			h.log.Error("pdf export failed: %v", err)
		}
	default:
		respondError(h.log, w, r, errors.ValidationError("unknown format, expected json, csv, xlsx or pdf"))
	}
}
