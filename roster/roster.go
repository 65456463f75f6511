// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrInvalidParticipantID = errors.New("participant id must be 1-64 characters")
	ErrDuplicateParticipant = errors.New("participant already registered")
	ErrInvalidCandidate     = errors.New("candidate name is required")
	ErrParticipantHasVoted  = errors.New("participant has already voted in the running election")
	ErrCandidateHasVotes    = errors.New("candidate has votes in the running election")
)

const maxParticipantIDLen = 64

// Roster manages the participant and candidate rows the voting core reads.
type Roster struct {
	db *sql.DB
}

func New(db *sql.DB) *Roster {
	return &Roster{db: db}
}

// LookupParticipant returns nil when the participant does not exist
func (r *Roster) LookupParticipant(ctx context.Context, id string) (*models.Participant, error) {
	var p models.Participant
	err := r.db.QueryRowContext(ctx, `
		SELECT id, has_voted FROM participant WHERE id = $1
	`, strings.TrimSpace(id)).Scan(&p.ID, &p.HasVoted)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, db.StorageError("lookup participant", err)
	}
	return &p, nil
}

// LookupCandidate returns nil when the candidate does not exist
func (r *Roster) LookupCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var c models.Candidate
	var photo sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, affiliation, cohort, photo_ref, vote_count
		FROM candidate
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Affiliation, &c.Cohort, &photo, &c.VoteCount)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, db.StorageError("lookup candidate", err)
	}
	if photo.Valid {
		c.PhotoRef = &photo.String
	}
	return &c, nil
}

func (r *Roster) AddParticipant(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxParticipantIDLen {
		return ErrInvalidParticipantID
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO participant (id, has_voted) VALUES ($1, FALSE)
	`, id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicateParticipant
		}
		return db.StorageError("insert participant", err)
	}

	slog.Info("participant added", "participant_id", id)
	return nil
}

// AddParticipants inserts ids one by one. Duplicates are counted as skipped;
// any other failure is reported per id and does not stop the batch.
func (r *Roster) AddParticipants(ctx context.Context, ids []string) models.BulkParticipantsResponse {
	resp := models.BulkParticipantsResponse{Errors: []string{}}
	for _, id := range ids {
		err := r.AddParticipant(ctx, id)
		switch {
		case err == nil:
			resp.Added++
		case errors.Is(err, ErrDuplicateParticipant):
			resp.Skipped++
		default:
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", id, err))
		}
	}
	return resp
}

// RemoveParticipant reports false when no such participant exists.
// A participant whose vote is counted stays until the next reset, so vote
// counts always match cast flags.
func (r *Roster) RemoveParticipant(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM participant WHERE id = $1 AND has_voted = FALSE
	`, id)
	if err != nil {
		return false, db.StorageError("delete participant", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, db.StorageError("delete participant", err)
	}
	if n > 0 {
		slog.Info("participant removed", "participant_id", id)
		return true, nil
	}

	p, err := r.LookupParticipant(ctx, id)
	if err != nil {
		return false, err
	}
	if p != nil {
		return false, ErrParticipantHasVoted
	}
	return false, nil
}

// AddCandidate creates a candidate with zero votes and returns its ID
func (r *Roster) AddCandidate(ctx context.Context, req models.AddCandidateRequest) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", ErrInvalidCandidate
	}

	candidateID, err := auth.GenerateID(12)
	if err != nil {
		return "", err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO candidate (id, name, affiliation, cohort, photo_ref, vote_count)
		VALUES ($1, $2, $3, $4, $5, 0)
	`, candidateID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Affiliation), req.Cohort, req.PhotoRef)
	if err != nil {
		return "", db.StorageError("insert candidate", err)
	}

	slog.Info("candidate added", "candidate_id", candidateID, "name", req.Name)
	return candidateID, nil
}

// RemoveCandidate reports false when no such candidate exists.
// Candidates holding votes cannot be removed until the next reset.
func (r *Roster) RemoveCandidate(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM candidate WHERE id = $1 AND vote_count = 0
	`, id)
	if err != nil {
		return false, db.StorageError("delete candidate", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, db.StorageError("delete candidate", err)
	}
	if n > 0 {
		slog.Info("candidate removed", "candidate_id", id)
		return true, nil
	}

	c, err := r.LookupCandidate(ctx, id)
	if err != nil {
		return false, err
	}
	if c != nil {
		return false, ErrCandidateHasVotes
	}
	return false, nil
}
