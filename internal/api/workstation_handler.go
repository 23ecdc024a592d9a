package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pointage/domain/core"
	"pointage/internal/errors"
	"pointage/internal/logging"
	"pointage/internal/qr"
	"pointage/models"
	"pointage/ports"
)

// WorkstationHandler manages the workstation registry and its QR codes
type WorkstationHandler struct {
	stations ports.WorkstationRepository
	log      *logging.Logger
}

// NewWorkstationHandler creates a new workstation handler
func NewWorkstationHandler(stations ports.WorkstationRepository, log *logging.Logger) *WorkstationHandler {
	return &WorkstationHandler{stations: stations, log: log}
}

type workstationRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// List handles GET /api/workstations
func (h *WorkstationHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	stations, err := h.stations.List(r.Context(), includeInactive)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, stations, "")
}

// Create handles POST /api/workstations
func (h *WorkstationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req workstationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, r, errors.ValidationError("invalid request body"))
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" || req.Name == "" {
		respondError(h.log, w, r, errors.ValidationError("code and name are required"))
		return
	}

	now := time.Now()
	station := &models.Workstation{
		ID:        core.NewUUID(),
		Code:      req.Code,
		Name:      req.Name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.stations.Create(r.Context(), station); err != nil {
		respondError(h.log, w, r, errors.Wrap(err, "failed to create workstation"))
		return
	}
	respondOK(w, station, "Workstation created")
}

// Update handles PUT /api/workstations/{code}
func (h *WorkstationHandler) Update(w http.ResponseWriter, r *http.Request) {
	station, err := h.stations.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req workstationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, r, errors.ValidationError("invalid request body"))
		return
	}
	if req.Name != "" {
		station.Name = req.Name
	}
	if req.IsActive != nil {
		station.IsActive = *req.IsActive
	}

	if err := h.stations.Update(r.Context(), station); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	respondOK(w, station, "Workstation updated")
}

// QRCode handles GET /api/workstations/{code}/qr
func (h *WorkstationHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	station, err := h.stations.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	png, err := qr.WorkstationPNG(station.Code, queryInt(r, "size", 256))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
