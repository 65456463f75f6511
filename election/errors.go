// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"

	"github.com/danielhkuo/quickly-vote/db"
)

var (
	ErrWindowClosed       = errors.New("voting window is closed")
	ErrAlreadyVoted       = errors.New("participant has already voted")
	ErrUnknownParticipant = errors.New("participant not found")
	ErrUnknownCandidate   = errors.New("candidate not found")
	ErrInvalidSchedule    = errors.New("window end must be after window start")
	ErrNoConfig           = errors.New("no election configured")
	ErrNoCandidates       = errors.New("no candidates registered")
	ErrHistoryNotFound    = errors.New("history record not found")
	ErrStorage            = db.ErrStorage
)

// IsRejection reports whether err is a vote rejection the caller should show
// to the participant, as opposed to a storage failure worth retrying.
func IsRejection(err error) bool {
	return errors.Is(err, ErrWindowClosed) ||
		errors.Is(err, ErrAlreadyVoted) ||
		errors.Is(err, ErrUnknownParticipant) ||
		errors.Is(err, ErrUnknownCandidate)
}

func storageError(op string, err error) error {
	return db.StorageError(op, err)
}
