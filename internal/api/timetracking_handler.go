package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pointage/app"
	"pointage/internal/auth"
	"pointage/internal/errors"
	"pointage/internal/logging"
)

// TimeTrackingHandler exposes the session state machine over HTTP
type TimeTrackingHandler struct {
	tracker *app.TrackerService
	log     *logging.Logger
}

// NewTimeTrackingHandler creates a new time tracking handler
func NewTimeTrackingHandler(tracker *app.TrackerService, log *logging.Logger) *TimeTrackingHandler {
	return &TimeTrackingHandler{tracker: tracker, log: log}
}

type startRequest struct {
	WorkstationCode string `json:"workstation_code"`
}

// Status handles GET /api/timetracking/status
func (h *TimeTrackingHandler) Status(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())

	result, err := h.tracker.GetStatus(r.Context(), principal)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, result, result.Message)
}

// Start handles POST /api/timetracking/start
func (h *TimeTrackingHandler) Start(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())

	var req startRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(h.log, w, r, errors.ValidationError("invalid request body"))
			return
		}
	}

	result, err := h.tracker.Start(r.Context(), principal, req.WorkstationCode)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	message := "Session started"
	if result.Action == "resume" {
		message = "Break ended, session resumed"
	}
	respondOK(w, result, message)
}

// Break handles POST /api/timetracking/break
func (h *TimeTrackingHandler) Break(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())

	result, err := h.tracker.Break(r.Context(), principal)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, result, "Break started")
}

// End handles POST /api/timetracking/end
func (h *TimeTrackingHandler) End(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())

	result, err := h.tracker.End(r.Context(), principal)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, result, "Session ended")
}

// History handles GET /api/timetracking/history
func (h *TimeTrackingHandler) History(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	entries, err := h.tracker.History(r.Context(), principal, limit, offset)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, entries, "")
}

func queryInt(r *http.Request, key string, fallback int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
