// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/danielhkuo/quickly-vote/models"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so the same reads can run
// standalone or inside the reset transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// loadConfig returns the singleton configuration, or nil when none exists
func loadConfig(ctx context.Context, q Querier) (*models.ElectionConfig, error) {
	var cfg models.ElectionConfig
	var marker sql.NullTime
	err := q.QueryRowContext(ctx, `
		SELECT title, window_start, window_end, last_reset_marker
		FROM election_config
		WHERE id = 1
	`).Scan(&cfg.Title, &cfg.WindowStart, &cfg.WindowEnd, &marker)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("load election config", err)
	}

	if marker.Valid {
		t := marker.Time
		cfg.LastResetMarker = &t
	}
	return &cfg, nil
}

// loadCandidates returns all candidates ordered by ID
func loadCandidates(ctx context.Context, q Querier) ([]models.Candidate, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, affiliation, cohort, photo_ref, vote_count
		FROM candidate
		ORDER BY id
	`)
	if err != nil {
		return nil, storageError("load candidates", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var photo sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Affiliation, &c.Cohort, &photo, &c.VoteCount); err != nil {
			return nil, storageError("scan candidate", err)
		}
		if photo.Valid {
			p := photo.String
			c.PhotoRef = &p
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("load candidates", err)
	}

	return candidates, nil
}

// loadStats counts participants, candidates, and cast flags
func loadStats(ctx context.Context, q Querier) (models.Stats, error) {
	var stats models.Stats
	err := q.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM participant),
			(SELECT COUNT(*) FROM participant WHERE has_voted = TRUE),
			(SELECT COUNT(*) FROM candidate)
	`).Scan(&stats.TotalParticipants, &stats.ParticipantsVoted, &stats.TotalCandidates)
	if err != nil {
		return models.Stats{}, storageError("count participants", err)
	}

	stats.ParticipationRate = percentOf(stats.ParticipantsVoted, stats.TotalParticipants)
	return stats, nil
}

// clearLedger zeroes every cast flag and vote count. Participants are locked
// before candidates, the same order CastVote takes its row locks in.
func clearLedger(ctx context.Context, q Querier) error {
	if _, err := q.ExecContext(ctx, `UPDATE participant SET has_voted = FALSE`); err != nil {
		return storageError("reset participant flags", err)
	}
	if _, err := q.ExecContext(ctx, `UPDATE candidate SET vote_count = 0`); err != nil {
		return storageError("reset candidate votes", err)
	}
	return nil
}

const historyColumns = `
	id, title, window_start, window_end,
	winner_candidate_id, winner_name, winner_affiliation, winner_cohort,
	winner_photo_ref, winner_votes, winner_percentage,
	total_votes, total_participants, participants_voted,
	candidates_payload, saved_at`

func insertHistory(ctx context.Context, q Querier, rec models.HistoryRecord) error {
	payload, err := json.Marshal(rec.Candidates)
	if err != nil {
		return err
	}

	var photo sql.NullString
	if rec.Winner.PhotoRef != nil {
		photo = sql.NullString{String: *rec.Winner.PhotoRef, Valid: true}
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO election_history (`+historyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		rec.ID, rec.Title, rec.WindowStart.UTC(), rec.WindowEnd.UTC(),
		rec.Winner.CandidateID, rec.Winner.Name, rec.Winner.Affiliation, rec.Winner.Cohort,
		photo, rec.Winner.VoteCount, rec.Winner.Percentage,
		rec.TotalVotes, rec.TotalParticipants, rec.ParticipantsVoted,
		string(payload), rec.SavedAt.UTC(),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (models.HistoryRecord, error) {
	var rec models.HistoryRecord
	var photo sql.NullString
	var payload []byte
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.WindowStart, &rec.WindowEnd,
		&rec.Winner.CandidateID, &rec.Winner.Name, &rec.Winner.Affiliation, &rec.Winner.Cohort,
		&photo, &rec.Winner.VoteCount, &rec.Winner.Percentage,
		&rec.TotalVotes, &rec.TotalParticipants, &rec.ParticipantsVoted,
		&payload, &rec.SavedAt,
	)
	if err != nil {
		return models.HistoryRecord{}, err
	}

	if photo.Valid {
		p := photo.String
		rec.Winner.PhotoRef = &p
	}
	if err := json.Unmarshal(payload, &rec.Candidates); err != nil {
		return models.HistoryRecord{}, err
	}
	rec.ParticipationRate = percentOf(rec.ParticipantsVoted, rec.TotalParticipants)

	return rec, nil
}
