// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/roster"
)

type VoterHandler struct {
	svc    *election.Service
	roster *roster.Roster
	cfg    cliparse.Config
}

func NewVoterHandler(svc *election.Service, roster *roster.Roster, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{svc: svc, roster: roster, cfg: cfg}
}

// GetStatus handles GET /status
func (h *VoterHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.GetStatus(r.Context())
	if err != nil {
		writeError(w, err, "get status")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, status)
}

// ListCandidates handles GET /candidates
func (h *VoterHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.svc.ListOpenCandidates(r.Context())
	if err != nil {
		writeError(w, err, "list candidates")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Login handles POST /voter/login
func (h *VoterHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	participantID := strings.TrimSpace(req.ParticipantID)
	if participantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant_id is required")
		return
	}

	p, err := h.roster.LookupParticipant(r.Context(), participantID)
	if err != nil {
		writeError(w, err, "lookup participant")
		return
	}
	if p == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found")
		return
	}

	slog.Info("voter logged in", "participant_id", p.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		VoterToken:    auth.GenerateVoterToken(p.ID, h.cfg.VoterTokenSalt),
		ParticipantID: p.ID,
		HasVoted:      p.HasVoted,
	})
}

// Me handles GET /voter/me
func (h *VoterHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := h.currentParticipant(w, r)
	if !ok {
		return
	}

	status, err := h.svc.GetStatus(r.Context())
	if err != nil {
		writeError(w, err, "get status")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterMeResponse{
		ParticipantID: p.ID,
		HasVoted:      p.HasVoted,
		Status:        status,
	})
}

// BallotCandidates handles GET /voter/candidates
// Only served while the window is open and the voter still holds a vote.
func (h *VoterHandler) BallotCandidates(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.GetStatus(r.Context())
	if err != nil {
		writeError(w, err, "get status")
		return
	}

	switch {
	case status.Phase == models.PhaseUnconfigured:
		middleware.ErrorResponse(w, http.StatusConflict, "No election configured")
		return
	case !status.HasStarted:
		middleware.ErrorResponse(w, http.StatusConflict, "Voting has not started yet")
		return
	case status.HasEnded:
		middleware.ErrorResponse(w, http.StatusConflict, "Voting has ended")
		return
	}

	// Participant state is read after the status check so a reset triggered
	// by that check is already visible.
	p, ok := h.currentParticipant(w, r)
	if !ok {
		return
	}
	if p.HasVoted {
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted")
		return
	}

	candidates, err := h.svc.ListOpenCandidates(r.Context())
	if err != nil {
		writeError(w, err, "list candidates")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Vote handles POST /voter/vote
func (h *VoterHandler) Vote(w http.ResponseWriter, r *http.Request) {
	participantID, ok := middleware.ParticipantID(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Voter token required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	if err := h.svc.CastVote(r.Context(), participantID, req.CandidateID); err != nil {
		if election.IsRejection(err) {
			slog.Info("vote rejected",
				"participant_id", participantID,
				"reason", err,
				"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.VoterTokenSalt),
			)
		}
		writeError(w, err, "cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Message: "Vote recorded",
	})
}

// currentParticipant resolves the token holder, writing the error response
// itself when the participant is gone
func (h *VoterHandler) currentParticipant(w http.ResponseWriter, r *http.Request) (*models.Participant, bool) {
	participantID, ok := middleware.ParticipantID(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Voter token required")
		return nil, false
	}

	p, err := h.roster.LookupParticipant(r.Context(), participantID)
	if err != nil {
		writeError(w, err, "lookup participant")
		return nil, false
	}
	if p == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found")
		return nil, false
	}
	return p, true
}
