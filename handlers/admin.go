// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/roster"
)

// AdminHandler serves the /admin routes. The router wraps every method in
// middleware.RequireAdmin, so handlers here assume a valid admin key.
type AdminHandler struct {
	svc    *election.Service
	roster *roster.Roster
}

func NewAdminHandler(svc *election.Service, roster *roster.Roster) *AdminHandler {
	return &AdminHandler{svc: svc, roster: roster}
}

// GetConfig handles GET /admin/config
func (h *AdminHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.GetConfig(r.Context())
	if err != nil {
		writeError(w, err, "get config")
		return
	}
	if cfg == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No election configured")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, cfg)
}

// SetSchedule handles PUT /admin/schedule
func (h *AdminHandler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.WindowStart.IsZero() || req.WindowEnd.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "window_start and window_end are required")
		return
	}

	if err := h.svc.SetSchedule(r.Context(), req.Title, req.WindowStart, req.WindowEnd); err != nil {
		writeError(w, err, "set schedule")
		return
	}

	h.GetConfig(w, r)
}

// SetTitle handles PUT /admin/title
func (h *AdminHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	var req models.TitleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := h.svc.SetTitle(r.Context(), req.Title); err != nil {
		writeError(w, err, "set title")
		return
	}

	h.GetConfig(w, r)
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeError(w, err, "dashboard")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, dash)
}

// Tally handles GET /admin/tally
func (h *AdminHandler) Tally(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetTally(r.Context())
	if err != nil {
		writeError(w, err, "tally")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// Reset handles POST /admin/reset
// An empty body is accepted and archives before clearing.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req models.ResetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	saveHistory := true
	if req.SaveHistory != nil {
		saveHistory = *req.SaveHistory
	}

	rec, err := h.svc.ResetElection(r.Context(), saveHistory)
	if err != nil {
		writeError(w, err, "reset election")
		return
	}

	resp := models.ResetResponse{Message: "Election reset", History: rec}
	if rec != nil {
		resp.Message = "Election archived and reset"
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListHistory handles GET /admin/history
func (h *AdminHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListHistory(r.Context())
	if err != nil {
		writeError(w, err, "list history")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, records)
}

// GetHistory handles GET /admin/history/{id}
func (h *AdminHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "history id is required")
		return
	}

	rec, err := h.svc.GetHistory(r.Context(), id)
	if err != nil {
		writeError(w, err, "get history")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rec)
}

// SaveHistory handles POST /admin/history/save
func (h *AdminHandler) SaveHistory(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.SaveHistory(r.Context())
	if err != nil {
		writeError(w, err, "save history")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, rec)
}

// AddParticipant handles POST /admin/participants
func (h *AdminHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req models.AddParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.roster.AddParticipant(r.Context(), req.ID); err != nil {
		writeError(w, err, "add participant")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, models.Participant{ID: strings.TrimSpace(req.ID)})
}

// AddParticipantsBulk handles POST /admin/participants/bulk
func (h *AdminHandler) AddParticipantsBulk(w http.ResponseWriter, r *http.Request) {
	var req models.BulkParticipantsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.IDs) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ids is required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.roster.AddParticipants(r.Context(), req.IDs))
}

// RemoveParticipant handles DELETE /admin/participants/{id}
func (h *AdminHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	removed, err := h.roster.RemoveParticipant(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "remove participant")
		return
	}
	if !removed {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddCandidate handles POST /admin/candidates
func (h *AdminHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidateID, err := h.roster.AddCandidate(r.Context(), req)
	if err != nil {
		writeError(w, err, "add candidate")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{CandidateID: candidateID})
}

// RemoveCandidate handles DELETE /admin/candidates/{id}
func (h *AdminHandler) RemoveCandidate(w http.ResponseWriter, r *http.Request) {
	removed, err := h.roster.RemoveCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "remove candidate")
		return
	}
	if !removed {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
