package api

import (
	"net/http"

	"pointage/app"
	"pointage/internal/logging"
)

// DashboardHandler exposes the supervisor read-only views
type DashboardHandler struct {
	reports *app.ReportService
	hub     *SSEHub
	log     *logging.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reports *app.ReportService, hub *SSEHub, log *logging.Logger) *DashboardHandler {
	return &DashboardHandler{reports: reports, hub: hub, log: log}
}

// Active handles GET /api/dashboard/active
func (h *DashboardHandler) Active(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.ActiveSessions(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, rows, "")
}

// Daily handles GET /api/dashboard/daily
func (h *DashboardHandler) Daily(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.DailyRoster(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, rows, "")
}

// Workstations handles GET /api/dashboard/workstations
func (h *DashboardHandler) Workstations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.reports.WorkstationUtilization(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, rows, "")
}

// Stream handles GET /api/dashboard/stream (SSE)
func (h *DashboardHandler) Stream(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeHTTP(w, r)
}
