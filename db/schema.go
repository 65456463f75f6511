// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to types both PostgreSQL and SQLite accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Participants (roster is managed outside the voting core)
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_participant_has_voted ON participant(has_voted);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    affiliation TEXT NOT NULL DEFAULT '',
    cohort INTEGER NOT NULL DEFAULT 0,
    photo_ref TEXT,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Election configuration (singleton row, id = 1)
CREATE TABLE IF NOT EXISTS election_config (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    title TEXT NOT NULL,
    window_start TIMESTAMP NOT NULL,
    window_end TIMESTAMP NOT NULL,
    last_reset_marker TIMESTAMP
);

-- Election history (append-only)
CREATE TABLE IF NOT EXISTS election_history (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    window_start TIMESTAMP NOT NULL,
    window_end TIMESTAMP NOT NULL,
    winner_candidate_id TEXT NOT NULL,
    winner_name TEXT NOT NULL,
    winner_affiliation TEXT NOT NULL,
    winner_cohort INTEGER NOT NULL,
    winner_photo_ref TEXT,
    winner_votes INTEGER NOT NULL,
    winner_percentage DOUBLE PRECISION NOT NULL,
    total_votes INTEGER NOT NULL,
    total_participants INTEGER NOT NULL,
    participants_voted INTEGER NOT NULL,
    candidates_payload JSONB NOT NULL,
    saved_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_election_history_saved_at ON election_history(saved_at);
`
