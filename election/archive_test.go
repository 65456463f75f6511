// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestBuildRecord(t *testing.T) {
	cfg := &models.ElectionConfig{
		Title:       "Council",
		WindowStart: t0,
		WindowEnd:   t0.Add(time.Hour),
	}
	candidates := []models.Candidate{
		{ID: "a", Name: "A", VoteCount: 2},
		{ID: "b", Name: "B", VoteCount: 1},
	}
	stats := models.Stats{TotalParticipants: 5, ParticipantsVoted: 3, TotalCandidates: 2}

	tests := []struct {
		name       string
		cfg        *models.ElectionConfig
		candidates []models.Candidate
		wantErr    error
	}{
		{"no config", nil, candidates, ErrNoConfig},
		{"no candidates", cfg, nil, ErrNoCandidates},
		{"complete", cfg, candidates, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := BuildRecord(tt.cfg, tt.candidates, stats, t0.Add(2*time.Hour))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BuildRecord() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			if rec.ID == "" {
				t.Error("BuildRecord() left ID empty")
			}
			if rec.Winner.CandidateID != "a" || rec.Winner.Percentage != 66.7 {
				t.Errorf("Winner = %+v, want a at 66.7", rec.Winner)
			}
			if rec.TotalVotes != 3 || rec.ParticipationRate != 60.0 {
				t.Errorf("totals = %d votes, %.1f%%; want 3, 60.0", rec.TotalVotes, rec.ParticipationRate)
			}
			if len(rec.Candidates) != 2 || rec.Candidates[1].CandidateID != "b" {
				t.Errorf("Candidates = %+v", rec.Candidates)
			}
		})
	}
}

func TestArchive_RoundTrip(t *testing.T) {
	db, clock := setupElection(t)
	for _, id := range []string{"P1", "P2", "P3", "P4", "P5"} {
		testutil.AddTestParticipant(t, db, id)
	}
	a := testutil.AddTestCandidate(t, db, "A")
	b := testutil.AddTestCandidate(t, db, "B")

	ledger := NewLedger(db, clock, nil)
	for pid, cand := range map[string]string{"P1": a, "P2": a, "P3": b} {
		if err := ledger.CastVote(context.Background(), pid, cand); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewService(db, clock, nil)
	saved, err := svc.SaveHistory(context.Background())
	if err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}

	got, err := svc.GetHistory(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}

	if got.Title != "Test Election" || !got.WindowEnd.Equal(t0.Add(time.Hour)) {
		t.Errorf("window fields = %q %v", got.Title, got.WindowEnd)
	}
	if got.Winner.CandidateID != a || got.Winner.VoteCount != 2 {
		t.Errorf("Winner = %+v", got.Winner)
	}
	if got.TotalVotes != 3 || got.TotalParticipants != 5 || got.ParticipantsVoted != 3 || got.ParticipationRate != 60.0 {
		t.Errorf("totals = %+v", got)
	}
	if len(got.Candidates) != 2 || got.Candidates[0].Percentage != 66.7 || got.Candidates[1].Percentage != 33.3 {
		t.Errorf("Candidates = %+v", got.Candidates)
	}

	if _, err := svc.GetHistory(context.Background(), "missing"); !errors.Is(err, ErrHistoryNotFound) {
		t.Errorf("GetHistory(missing) error = %v, want %v", err, ErrHistoryNotFound)
	}
}
