// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/roster"
)

// writeError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a 500 without leaking the cause.
func writeError(w http.ResponseWriter, err error, op string) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err)
	}
	middleware.ErrorResponse(w, status, message)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, election.ErrWindowClosed),
		errors.Is(err, election.ErrAlreadyVoted),
		errors.Is(err, election.ErrNoConfig),
		errors.Is(err, election.ErrNoCandidates),
		errors.Is(err, roster.ErrDuplicateParticipant),
		errors.Is(err, roster.ErrParticipantHasVoted),
		errors.Is(err, roster.ErrCandidateHasVotes):
		return http.StatusConflict, err.Error()
	case errors.Is(err, election.ErrUnknownParticipant),
		errors.Is(err, election.ErrUnknownCandidate),
		errors.Is(err, election.ErrHistoryNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, election.ErrInvalidSchedule),
		errors.Is(err, roster.ErrInvalidParticipantID),
		errors.Is(err, roster.ErrInvalidCandidate):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, election.ErrStorage):
		return http.StatusServiceUnavailable, "Storage temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}
