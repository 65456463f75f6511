// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"log/slog"
)

// Ledger records votes. Each participant is counted at most once.
type Ledger struct {
	db     *sql.DB
	clock  Clock
	logger *slog.Logger
}

func NewLedger(db *sql.DB, clock Clock, logger *slog.Logger) *Ledger {
	if clock == nil {
		clock = SystemClock()
	}
	return &Ledger{db: db, clock: clock, logger: resolveLogger(logger)}
}

// CastVote records one vote from participantID for candidateID.
//
// Checks run in order inside a single transaction: the window must be open,
// the participant must exist, the participant must not have voted, and the
// candidate must exist. The cast flag is claimed with a conditional update
// so two concurrent calls for the same participant cannot both succeed, and
// the vote count is incremented server-side so no increment is lost.
// A rejection returns one of the Err* sentinels with nothing written; a
// storage problem returns an error wrapping ErrStorage and is safe to retry.
func (l *Ledger) CastVote(ctx context.Context, participantID, candidateID string) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin vote transaction", err)
	}
	defer tx.Rollback()

	cfg, err := loadConfig(ctx, tx)
	if err != nil {
		return err
	}
	if !EvaluateConfig(l.clock.Now(), cfg).IsActive {
		return ErrWindowClosed
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE participant
		SET has_voted = TRUE
		WHERE id = $1 AND has_voted = FALSE
	`, participantID)
	if err != nil {
		return storageError("claim participant", err)
	}
	claimed, err := res.RowsAffected()
	if err != nil {
		return storageError("claim participant", err)
	}

	if claimed == 0 {
		var exists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM participant WHERE id = $1)
		`, participantID).Scan(&exists)
		if err != nil {
			return storageError("lookup participant", err)
		}
		if !exists {
			return ErrUnknownParticipant
		}
		return ErrAlreadyVoted
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE candidate
		SET vote_count = vote_count + 1
		WHERE id = $1
	`, candidateID)
	if err != nil {
		return storageError("increment candidate", err)
	}
	incremented, err := res.RowsAffected()
	if err != nil {
		return storageError("increment candidate", err)
	}
	if incremented == 0 {
		// Rollback releases the participant claim as well
		return ErrUnknownCandidate
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit vote", err)
	}

	l.logger.Info("vote cast", "participant_id", participantID, "candidate_id", candidateID)
	return nil
}
