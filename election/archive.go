// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/models"
)

// Archiver snapshots the current election into an immutable history record.
// It never touches vote counts or cast flags.
type Archiver struct {
	clock  Clock
	logger *slog.Logger
}

func NewArchiver(clock Clock, logger *slog.Logger) *Archiver {
	if clock == nil {
		clock = SystemClock()
	}
	return &Archiver{clock: clock, logger: resolveLogger(logger)}
}

// BuildRecord assembles a history record without touching storage.
// It fails with ErrNoConfig or ErrNoCandidates rather than producing an
// empty record.
func BuildRecord(cfg *models.ElectionConfig, candidates []models.Candidate, stats models.Stats, savedAt time.Time) (models.HistoryRecord, error) {
	if cfg == nil {
		return models.HistoryRecord{}, ErrNoConfig
	}
	if len(candidates) == 0 {
		return models.HistoryRecord{}, ErrNoCandidates
	}

	tally := Tally(candidates)
	winner, _ := Winner(tally)

	return models.HistoryRecord{
		ID:                uuid.NewString(),
		Title:             cfg.Title,
		WindowStart:       cfg.WindowStart,
		WindowEnd:         cfg.WindowEnd,
		Winner:            winner,
		TotalVotes:        tally.TotalVotes,
		TotalParticipants: stats.TotalParticipants,
		ParticipantsVoted: stats.ParticipantsVoted,
		ParticipationRate: percentOf(stats.ParticipantsVoted, stats.TotalParticipants),
		Candidates:        tally.Entries,
		SavedAt:           savedAt,
	}, nil
}

// Archive reads candidates and participation through q, then writes one
// history record through q. Pass a transaction to make the archive part of a
// larger unit of work.
func (a *Archiver) Archive(ctx context.Context, q Querier, cfg *models.ElectionConfig) (models.HistoryRecord, error) {
	if cfg == nil {
		return models.HistoryRecord{}, ErrNoConfig
	}

	candidates, err := loadCandidates(ctx, q)
	if err != nil {
		return models.HistoryRecord{}, err
	}
	stats, err := loadStats(ctx, q)
	if err != nil {
		return models.HistoryRecord{}, err
	}

	rec, err := BuildRecord(cfg, candidates, stats, a.clock.Now().UTC())
	if err != nil {
		return models.HistoryRecord{}, err
	}

	if err := insertHistory(ctx, q, rec); err != nil {
		return models.HistoryRecord{}, storageError("insert history", err)
	}

	a.logger.Info("election archived",
		"history_id", rec.ID,
		"title", rec.Title,
		"winner", rec.Winner.Name,
		"total_votes", rec.TotalVotes,
	)
	return rec, nil
}
