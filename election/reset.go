// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/danielhkuo/quickly-vote/models"
)

// Coordinator archives and clears an election as one unit of work, either
// automatically once the window has ended or when an administrator asks.
type Coordinator struct {
	db       *sql.DB
	clock    Clock
	archiver *Archiver
	logger   *slog.Logger
}

func NewCoordinator(db *sql.DB, clock Clock, archiver *Archiver, logger *slog.Logger) *Coordinator {
	if clock == nil {
		clock = SystemClock()
	}
	if archiver == nil {
		archiver = NewArchiver(clock, logger)
	}
	return &Coordinator{db: db, clock: clock, archiver: archiver, logger: resolveLogger(logger)}
}

// CheckAndReset closes out the current window if it has ended and has not
// been archived yet. It reports whether this call performed the reset.
//
// The marker column is claimed with a conditional update, so when several
// callers observe the ended window at once exactly one proceeds; the others
// see zero affected rows and return false. Archiving is best effort here: a
// failed archive is logged and the counts are cleared regardless.
func (c *Coordinator) CheckAndReset(ctx context.Context) (bool, error) {
	closed, err := c.closeOut(ctx)
	return closed != nil, err
}

// closeOut does the work of CheckAndReset and returns the configuration of
// the window it closed, read under the marker lock, or nil when it did nothing.
func (c *Coordinator) closeOut(ctx context.Context) (*models.ElectionConfig, error) {
	cfg, err := loadConfig(ctx, c.db)
	if err != nil {
		return nil, err
	}
	if cfg == nil || cfg.Archived() || !EvaluateConfig(c.clock.Now(), cfg).HasEnded {
		return nil, nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("begin reset transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE election_config
		SET last_reset_marker = window_end
		WHERE id = 1
		  AND (last_reset_marker IS NULL OR last_reset_marker <> window_end)
	`)
	if err != nil {
		return nil, storageError("claim reset marker", err)
	}
	claimed, err := res.RowsAffected()
	if err != nil {
		return nil, storageError("claim reset marker", err)
	}
	if claimed == 0 {
		return nil, nil
	}

	// Re-read under the row lock; the schedule may have moved since the
	// unlocked read above.
	cfg, err = loadConfig(ctx, tx)
	if err != nil {
		return nil, err
	}
	if !EvaluateConfig(c.clock.Now(), cfg).HasEnded {
		return nil, nil
	}

	rec, archiveErr := c.archiveBestEffort(ctx, tx, cfg)

	if err := clearLedger(ctx, tx); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError("commit reset", err)
	}

	if archiveErr != nil {
		c.logger.Warn("election reset without history",
			"title", cfg.Title,
			"window_end", cfg.WindowEnd,
			"error", archiveErr,
		)
	} else {
		c.logger.Info("election closed and reset",
			"title", cfg.Title,
			"history_id", rec.ID,
			"window_end", cfg.WindowEnd,
		)
	}
	return cfg, nil
}

// archiveBestEffort runs the archive inside a savepoint so a failed insert
// does not abort the surrounding transaction.
func (c *Coordinator) archiveBestEffort(ctx context.Context, tx *sql.Tx, cfg *models.ElectionConfig) (models.HistoryRecord, error) {
	if _, err := tx.ExecContext(ctx, `SAVEPOINT archive_history`); err != nil {
		return models.HistoryRecord{}, storageError("open archive savepoint", err)
	}

	rec, err := c.archiver.Archive(ctx, tx, cfg)
	if err != nil {
		if _, rbErr := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT archive_history`); rbErr != nil {
			c.logger.Error("failed to roll back archive savepoint", "error", rbErr)
		}
		return models.HistoryRecord{}, err
	}

	if _, err := tx.ExecContext(ctx, `RELEASE SAVEPOINT archive_history`); err != nil {
		return models.HistoryRecord{}, storageError("release archive savepoint", err)
	}
	return rec, nil
}

// Reset clears all vote counts and cast flags on an administrator's request.
//
// With saveHistory set, the archive is mandatory: if it fails the whole reset
// is rolled back and the archive error is returned. A window the close-out
// already archived is cleared but not archived again, and the returned record
// is nil. The reset marker is only advanced when the current window has
// already ended, so resetting a running election does not suppress the
// archive taken when it closes.
func (c *Coordinator) Reset(ctx context.Context, saveHistory bool) (*models.HistoryRecord, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("begin reset transaction", err)
	}
	defer tx.Rollback()

	cfg, err := loadConfig(ctx, tx)
	if err != nil {
		return nil, err
	}

	// The marker is claimed before the ledger rows are touched, the same
	// order the close-out locks in.
	archived := cfg != nil && cfg.Archived()
	if cfg != nil && EvaluateConfig(c.clock.Now(), cfg).HasEnded {
		res, err := tx.ExecContext(ctx, `
			UPDATE election_config
			SET last_reset_marker = window_end
			WHERE id = 1
			  AND (last_reset_marker IS NULL OR last_reset_marker <> window_end)
		`)
		if err != nil {
			return nil, storageError("update reset marker", err)
		}
		claimed, err := res.RowsAffected()
		if err != nil {
			return nil, storageError("update reset marker", err)
		}
		archived = claimed == 0
	}

	var rec *models.HistoryRecord
	if saveHistory && !archived {
		saved, err := c.archiver.Archive(ctx, tx, cfg)
		if err != nil {
			return nil, err
		}
		rec = &saved
	}

	if err := clearLedger(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("commit reset", err)
	}

	c.logger.Info("election reset by administrator",
		"save_history", saveHistory,
		"archived", rec != nil,
	)
	return rec, nil
}
