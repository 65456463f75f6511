// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level and completion (status, duration_ms)
at info level.

# Credentials

Admin routes check the X-Admin-Key header against ADMIN_KEY_SALT:

	mux.HandleFunc("GET /admin/config", middleware.WithLogging(
		middleware.RequireAdmin(cfg.AdminKeySalt, h.GetConfig)))

Voter routes verify X-Voter-Token and expose the participant:

	mux.HandleFunc("POST /voter/vote", middleware.WithLogging(
		middleware.RequireVoter(cfg.VoterTokenSalt, h.Vote)))

	participantID, ok := middleware.ParticipantID(r.Context())

Both respond 401 with a JSON error body when the credential is missing
or invalid.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key, X-Voter-Token.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Hashed with auth.HashIP before it reaches the vote log.
*/
package middleware
