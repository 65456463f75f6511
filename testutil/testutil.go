// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
)

// SetupTestDB opens a fresh SQLite database in the test's temp dir with the
// full schema. The connection is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// FakeClock is a settable clock for exercising window boundaries
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "test.db",
		DatabaseType:   db.TypeSQLite,
		AdminKeySalt:   "test-admin-salt",
		VoterTokenSalt: "test-voter-salt",
	}
}

// AdminHeaders returns the headers an administrator request carries
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{"X-Admin-Key": auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt)}
}

// VoterHeaders returns the headers a logged-in participant's request carries
func VoterHeaders(cfg cliparse.Config, participantID string) map[string]string {
	return map[string]string{"X-Voter-Token": auth.GenerateVoterToken(participantID, cfg.VoterTokenSalt)}
}

// AddTestParticipant registers a participant who has not voted
func AddTestParticipant(t *testing.T, conn *sql.DB, id string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO participant (id, has_voted) VALUES ($1, FALSE)
	`, id)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}
}

// AddTestCandidate adds a candidate with zero votes and returns its ID
func AddTestCandidate(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	candidateID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO candidate (id, name, affiliation, cohort, vote_count)
		VALUES ($1, $2, '', 0, 0)
	`, candidateID, name)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// SetTestWindow writes the election config row directly, bypassing validation
func SetTestWindow(t *testing.T, conn *sql.DB, title string, start, end time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO election_config (id, title, window_start, window_end)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET title = excluded.title,
		    window_start = excluded.window_start,
		    window_end = excluded.window_end
	`, title, start.UTC(), end.UTC())
	if err != nil {
		t.Fatalf("Failed to set test window: %v", err)
	}
}

// CountHistory returns the number of archived elections
func CountHistory(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM election_history").Scan(&n); err != nil {
		t.Fatalf("Failed to count history: %v", err)
	}
	return n
}

// LedgerTotals returns the number of voted participants and the sum of vote counts
func LedgerTotals(t *testing.T, conn *sql.DB) (voted, votes int) {
	t.Helper()

	err := conn.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM participant WHERE has_voted = TRUE),
			(SELECT COALESCE(SUM(vote_count), 0) FROM candidate)
	`).Scan(&voted, &votes)
	if err != nil {
		t.Fatalf("Failed to read ledger totals: %v", err)
	}
	return voted, votes
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
