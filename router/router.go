// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/roster"
)

func NewRouter(svc *election.Service, rost *roster.Roster, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(svc, rost, cfg)
	adminHandler := handlers.NewAdminHandler(svc, rost)

	voter := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireVoter(cfg.VoterTokenSalt, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKeySalt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public
	mux.HandleFunc("GET /status", middleware.WithLogging(voterHandler.GetStatus))
	mux.HandleFunc("GET /candidates", middleware.WithLogging(voterHandler.ListCandidates))

	// Voter operations
	mux.HandleFunc("POST /voter/login", middleware.WithLogging(voterHandler.Login))
	mux.HandleFunc("GET /voter/me", voter(voterHandler.Me))
	mux.HandleFunc("GET /voter/candidates", voter(voterHandler.BallotCandidates))
	mux.HandleFunc("POST /voter/vote", voter(voterHandler.Vote))

	// Election management
	mux.HandleFunc("GET /admin/config", admin(adminHandler.GetConfig))
	mux.HandleFunc("PUT /admin/schedule", admin(adminHandler.SetSchedule))
	mux.HandleFunc("PUT /admin/title", admin(adminHandler.SetTitle))
	mux.HandleFunc("GET /admin/dashboard", admin(adminHandler.Dashboard))
	mux.HandleFunc("GET /admin/tally", admin(adminHandler.Tally))
	mux.HandleFunc("POST /admin/reset", admin(adminHandler.Reset))

	// History
	mux.HandleFunc("GET /admin/history", admin(adminHandler.ListHistory))
	mux.HandleFunc("GET /admin/history/{id}", admin(adminHandler.GetHistory))
	mux.HandleFunc("POST /admin/history/save", admin(adminHandler.SaveHistory))

	// Roster
	mux.HandleFunc("POST /admin/participants", admin(adminHandler.AddParticipant))
	mux.HandleFunc("POST /admin/participants/bulk", admin(adminHandler.AddParticipantsBulk))
	mux.HandleFunc("DELETE /admin/participants/{id}", admin(adminHandler.RemoveParticipant))
	mux.HandleFunc("POST /admin/candidates", admin(adminHandler.AddCandidate))
	mux.HandleFunc("DELETE /admin/candidates/{id}", admin(adminHandler.RemoveCandidate))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return mux
}
