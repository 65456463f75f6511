// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/models"
)

// DefaultTitle is used when a schedule is set before any title
const DefaultTitle = "Election"

// Service is the surface the HTTP layer builds on. Every read that reports
// election status first gives the coordinator a chance to close out an ended
// window.
type Service struct {
	db          *sql.DB
	clock       Clock
	ledger      *Ledger
	archiver    *Archiver
	coordinator *Coordinator
	logger      *slog.Logger
}

func NewService(db *sql.DB, clock Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	logger = resolveLogger(logger)
	archiver := NewArchiver(clock, logger)
	return &Service{
		db:          db,
		clock:       clock,
		ledger:      NewLedger(db, clock, logger),
		archiver:    archiver,
		coordinator: NewCoordinator(db, clock, archiver, logger),
		logger:      logger,
	}
}

func (s *Service) Coordinator() *Coordinator { return s.coordinator }

// checkAndReset runs the automatic close-out. A failure is logged and does
// not fail the read that triggered it; the next read retries.
func (s *Service) checkAndReset(ctx context.Context) {
	if _, err := s.coordinator.CheckAndReset(ctx); err != nil {
		s.logger.Error("automatic election reset failed", "error", err)
	}
}

// GetStatus reports the schedule flags of the current election
func (s *Service) GetStatus(ctx context.Context) (models.Status, error) {
	s.checkAndReset(ctx)

	cfg, err := loadConfig(ctx, s.db)
	if err != nil {
		return models.Status{}, err
	}
	return s.statusOf(cfg), nil
}

func (s *Service) statusOf(cfg *models.ElectionConfig) models.Status {
	now := s.clock.Now()
	sched := EvaluateConfig(now, cfg)
	if cfg == nil {
		return models.Status{
			Title: "No Election Configured",
			Phase: sched.Phase(),
		}
	}

	start, end := cfg.WindowStart, cfg.WindowEnd
	status := models.Status{
		Title:       cfg.Title,
		WindowStart: &start,
		WindowEnd:   &end,
		IsActive:    sched.IsActive,
		HasStarted:  sched.HasStarted,
		HasEnded:    sched.HasEnded,
		Phase:       sched.Phase(),
		Closes:      humanize.RelTime(end, now, "ago", "from now"),
	}
	if !sched.HasStarted {
		status.Opens = humanize.RelTime(start, now, "ago", "from now")
	}
	return status
}

// ListOpenCandidates returns the ballot view of every candidate, without
// vote counts
func (s *Service) ListOpenCandidates(ctx context.Context) ([]models.PublicCandidate, error) {
	s.checkAndReset(ctx)

	candidates, err := loadCandidates(ctx, s.db)
	if err != nil {
		return nil, err
	}

	public := make([]models.PublicCandidate, len(candidates))
	for i, c := range candidates {
		public[i] = c.Public()
	}
	return public, nil
}

// CastVote records a vote; see Ledger.CastVote
func (s *Service) CastVote(ctx context.Context, participantID, candidateID string) error {
	return s.ledger.CastVote(ctx, participantID, candidateID)
}

// GetTally returns the ranked results of the current election
func (s *Service) GetTally(ctx context.Context) (models.TallyResult, error) {
	s.checkAndReset(ctx)

	candidates, err := loadCandidates(ctx, s.db)
	if err != nil {
		return models.TallyResult{}, err
	}
	return Tally(candidates), nil
}

// Dashboard bundles participation stats, status, and tally for administrators
func (s *Service) Dashboard(ctx context.Context) (models.DashboardResponse, error) {
	status, err := s.GetStatus(ctx)
	if err != nil {
		return models.DashboardResponse{}, err
	}

	stats, err := loadStats(ctx, s.db)
	if err != nil {
		return models.DashboardResponse{}, err
	}

	candidates, err := loadCandidates(ctx, s.db)
	if err != nil {
		return models.DashboardResponse{}, err
	}

	return models.DashboardResponse{
		Stats:  stats,
		Status: status,
		Tally:  Tally(candidates),
	}, nil
}

// ResetElection clears the ledger, archiving first when saveHistory is set
func (s *Service) ResetElection(ctx context.Context, saveHistory bool) (*models.HistoryRecord, error) {
	return s.coordinator.Reset(ctx, saveHistory)
}

// SaveHistory archives the current election without clearing anything
func (s *Service) SaveHistory(ctx context.Context) (models.HistoryRecord, error) {
	cfg, err := loadConfig(ctx, s.db)
	if err != nil {
		return models.HistoryRecord{}, err
	}
	return s.archiver.Archive(ctx, s.db, cfg)
}

// ListHistory returns all archived elections, newest first
func (s *Service) ListHistory(ctx context.Context) ([]models.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM election_history
		ORDER BY saved_at DESC, id
	`)
	if err != nil {
		return nil, storageError("list history", err)
	}
	defer rows.Close()

	records := []models.HistoryRecord{}
	for rows.Next() {
		rec, err := scanHistory(rows)
		if err != nil {
			return nil, storageError("scan history", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list history", err)
	}

	return records, nil
}

func (s *Service) GetHistory(ctx context.Context, id string) (models.HistoryRecord, error) {
	rec, err := scanHistory(s.db.QueryRowContext(ctx, `
		SELECT `+historyColumns+`
		FROM election_history
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.HistoryRecord{}, ErrHistoryNotFound
	}
	if err != nil {
		return models.HistoryRecord{}, storageError("get history", err)
	}
	return rec, nil
}

// GetConfig returns the current configuration, or nil when none is set
func (s *Service) GetConfig(ctx context.Context) (*models.ElectionConfig, error) {
	return loadConfig(ctx, s.db)
}

// SetSchedule creates or replaces the voting window. A nil title keeps the
// existing one. An ended window that has not been closed out yet is archived
// and cleared first; a failure there aborts the change. Moving window_end
// re-arms the automatic close-out for the new window.
func (s *Service) SetSchedule(ctx context.Context, title *string, start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidSchedule
	}

	if _, err := s.coordinator.CheckAndReset(ctx); err != nil {
		return err
	}

	existing, err := loadConfig(ctx, s.db)
	if err != nil {
		return err
	}

	name := DefaultTitle
	if existing != nil {
		name = existing.Title
	}
	if title != nil && strings.TrimSpace(*title) != "" {
		name = strings.TrimSpace(*title)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO election_config (id, title, window_start, window_end)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET title = excluded.title,
		    window_start = excluded.window_start,
		    window_end = excluded.window_end
	`, name, start.UTC(), end.UTC())
	if err != nil {
		return storageError("save schedule", err)
	}

	s.logger.Info("election schedule updated",
		"title", name,
		"window_start", start.UTC(),
		"window_end", end.UTC(),
	)
	return nil
}

// SetTitle renames the current election. A schedule must exist first.
func (s *Service) SetTitle(ctx context.Context, title string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE election_config SET title = $1 WHERE id = 1
	`, strings.TrimSpace(title))
	if err != nil {
		return storageError("save title", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageError("save title", err)
	}
	if n == 0 {
		return ErrNoConfig
	}

	s.logger.Info("election title updated", "title", title)
	return nil
}
