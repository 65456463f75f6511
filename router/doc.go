// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	svc := election.NewService(db, election.SystemClock(), slog.Default())
	mux := router.NewRouter(svc, roster.New(db), cfg)

# Endpoints

Health:

	GET /health

Public:

	GET /status     - Election title, window and phase
	GET /candidates - Ballot view of candidates (no counts)

Voting (requires X-Voter-Token, except login):

	POST /voter/login      - Exchange participant_id for a voter token
	GET  /voter/me         - Own has_voted flag and election status
	GET  /voter/candidates - Ballot, only while open and not yet voted
	POST /voter/vote       - Cast the single vote

Election management (requires X-Admin-Key):

	GET  /admin/config         - Current title and window
	PUT  /admin/schedule       - Set the voting window
	PUT  /admin/title          - Rename the election
	GET  /admin/dashboard      - Stats, status and tally
	GET  /admin/tally          - Ranked results
	POST /admin/reset          - Archive (by default) and clear
	GET  /admin/history        - Archived elections, newest first
	GET  /admin/history/{id}   - One archived election
	POST /admin/history/save   - Archive without clearing

Roster (requires X-Admin-Key):

	POST   /admin/participants      - Register a participant
	POST   /admin/participants/bulk - Register many
	DELETE /admin/participants/{id} - Remove a participant who has not voted
	POST   /admin/candidates        - Add a candidate
	DELETE /admin/candidates/{id}   - Remove a candidate without votes

# Handler Initialization

The router creates handler instances with dependency injection:

	voterHandler := handlers.NewVoterHandler(svc, rost, cfg)
	adminHandler := handlers.NewAdminHandler(svc, rost)

Credential checks live in middleware.RequireVoter and middleware.RequireAdmin
and wrap the handlers at registration time.
*/
package router
