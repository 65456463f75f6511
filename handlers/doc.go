// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

Each handler is a struct over the election service and the roster:

  - VoterHandler: Status, ballot, login and vote casting
  - AdminHandler: Schedule, dashboard, reset, history and roster upkeep

Handlers are created via constructor functions:

	voterHandler := handlers.NewVoterHandler(svc, rost, cfg)
	adminHandler := handlers.NewAdminHandler(svc, rost)

# Voting Flow

	POST /voter/login      → Login (returns voter_token)
	GET  /voter/candidates → BallotCandidates (409 unless open and not yet voted)
	POST /voter/vote       → Vote (201, or 409/404 on rejection)

Voter operations require the X-Voter-Token header; admin operations
require X-Admin-Key. Both are enforced by middleware at route registration.

# Error Mapping

Domain errors from the election and roster packages map to status codes:

	ErrWindowClosed, ErrAlreadyVoted        → 409
	ErrNoConfig, ErrNoCandidates            → 409
	ErrUnknownParticipant, ErrUnknownCandidate → 404
	ErrHistoryNotFound                      → 404
	ErrInvalidSchedule                      → 400
	ErrStorage                              → 503

Anything else is logged and returned as 500.
*/
package handlers
