// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestCheckAndReset_BeforeEnd(t *testing.T) {
	db, clock := setupElection(t)
	testutil.AddTestParticipant(t, db, "P1")
	cand := testutil.AddTestCandidate(t, db, "Alice")
	if err := NewLedger(db, clock, nil).CastVote(context.Background(), "P1", cand); err != nil {
		t.Fatal(err)
	}

	coord := NewCoordinator(db, clock, nil, nil)

	// At exactly window_end the election is still open
	clock.Set(t0.Add(time.Hour))
	reset, err := coord.CheckAndReset(context.Background())
	if err != nil || reset {
		t.Fatalf("CheckAndReset() = %v, %v; want false, nil", reset, err)
	}

	voted, votes := testutil.LedgerTotals(t, db)
	if voted != 1 || votes != 1 {
		t.Errorf("ledger changed before the window ended: %d/%d", voted, votes)
	}
}

func TestCheckAndReset_Unconfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	coord := NewCoordinator(db, testutil.NewFakeClock(t0), nil, nil)

	reset, err := coord.CheckAndReset(context.Background())
	if err != nil || reset {
		t.Errorf("CheckAndReset() = %v, %v; want false, nil", reset, err)
	}
}

func TestCheckAndReset_Idempotent(t *testing.T) {
	db, clock := setupElection(t)
	testutil.AddTestParticipant(t, db, "P1")
	cand := testutil.AddTestCandidate(t, db, "Alice")
	if err := NewLedger(db, clock, nil).CastVote(context.Background(), "P1", cand); err != nil {
		t.Fatal(err)
	}

	coord := NewCoordinator(db, clock, nil, nil)
	clock.Set(t0.Add(2 * time.Hour))

	results := []bool{}
	for i := 0; i < 3; i++ {
		reset, err := coord.CheckAndReset(context.Background())
		if err != nil {
			t.Fatalf("CheckAndReset() call %d error = %v", i, err)
		}
		results = append(results, reset)
	}

	if !results[0] || results[1] || results[2] {
		t.Errorf("CheckAndReset() results = %v, want [true false false]", results)
	}
	if n := testutil.CountHistory(t, db); n != 1 {
		t.Errorf("history records = %d, want 1", n)
	}
	voted, votes := testutil.LedgerTotals(t, db)
	if voted != 0 || votes != 0 {
		t.Errorf("ledger not cleared: %d/%d", voted, votes)
	}
}

func TestCheckAndReset_Concurrent(t *testing.T) {
	db, clock := setupElection(t)
	testutil.AddTestParticipant(t, db, "P1")
	cand := testutil.AddTestCandidate(t, db, "Alice")
	if err := NewLedger(db, clock, nil).CastVote(context.Background(), "P1", cand); err != nil {
		t.Fatal(err)
	}
	clock.Set(t0.Add(2 * time.Hour))

	coord := NewCoordinator(db, clock, nil, nil)

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reset, err := coord.CheckAndReset(context.Background())
			if err != nil {
				t.Errorf("CheckAndReset() error = %v", err)
				return
			}
			if reset {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	if winners.Load() != 1 {
		t.Errorf("resets performed = %d, want 1", winners.Load())
	}
	if n := testutil.CountHistory(t, db); n != 1 {
		t.Errorf("history records = %d, want 1", n)
	}
}

func TestCheckAndReset_ZeroVotesStillArchives(t *testing.T) {
	db, clock := setupElection(t)
	testutil.AddTestParticipant(t, db, "P1")
	testutil.AddTestCandidate(t, db, "Alice")
	clock.Set(t0.Add(2 * time.Hour))

	reset, err := NewCoordinator(db, clock, nil, nil).CheckAndReset(context.Background())
	if err != nil || !reset {
		t.Fatalf("CheckAndReset() = %v, %v; want true, nil", reset, err)
	}
	if n := testutil.CountHistory(t, db); n != 1 {
		t.Errorf("history records = %d, want 1", n)
	}
}

func TestCheckAndReset_NoCandidatesStillResets(t *testing.T) {
	db, clock := setupElection(t)
	testutil.AddTestParticipant(t, db, "P1")
	if _, err := db.Exec("UPDATE participant SET has_voted = TRUE"); err != nil {
		t.Fatal(err)
	}
	clock.Set(t0.Add(2 * time.Hour))

	reset, err := NewCoordinator(db, clock, nil, nil).CheckAndReset(context.Background())
	if err != nil || !reset {
		t.Fatalf("CheckAndReset() = %v, %v; want true, nil", reset, err)
	}
	if n := testutil.CountHistory(t, db); n != 0 {
		t.Errorf("history records = %d, want 0", n)
	}
	voted, _ := testutil.LedgerTotals(t, db)
	if voted != 0 {
		t.Errorf("cast flags not cleared: %d", voted)
	}
}

func TestCheckAndReset_NewWindowRearms(t *testing.T) {
	db, clock := setupElection(t)
	testutil.AddTestCandidate(t, db, "Alice")
	coord := NewCoordinator(db, clock, nil, nil)

	clock.Set(t0.Add(2 * time.Hour))
	if reset, _ := coord.CheckAndReset(context.Background()); !reset {
		t.Fatal("first window was not closed")
	}

	// Next round
	testutil.SetTestWindow(t, db, "Round Two", t0.Add(3*time.Hour), t0.Add(4*time.Hour))
	clock.Set(t0.Add(3*time.Hour + 30*time.Minute))
	if reset, _ := coord.CheckAndReset(context.Background()); reset {
		t.Fatal("open window must not be closed")
	}

	clock.Set(t0.Add(5 * time.Hour))
	if reset, _ := coord.CheckAndReset(context.Background()); !reset {
		t.Fatal("second window was not closed")
	}
	if n := testutil.CountHistory(t, db); n != 2 {
		t.Errorf("history records = %d, want 2", n)
	}
}

func TestReset_Manual(t *testing.T) {
	t.Run("with history", func(t *testing.T) {
		db, clock := setupElection(t)
		testutil.AddTestParticipant(t, db, "P1")
		cand := testutil.AddTestCandidate(t, db, "Alice")
		if err := NewLedger(db, clock, nil).CastVote(context.Background(), "P1", cand); err != nil {
			t.Fatal(err)
		}

		rec, err := NewCoordinator(db, clock, nil, nil).Reset(context.Background(), true)
		if err != nil {
			t.Fatalf("Reset() error = %v", err)
		}
		if rec == nil || rec.Winner.CandidateID != cand || rec.TotalVotes != 1 {
			t.Errorf("Reset() record = %+v", rec)
		}
		voted, votes := testutil.LedgerTotals(t, db)
		if voted != 0 || votes != 0 {
			t.Errorf("ledger not cleared: %d/%d", voted, votes)
		}
	})

	t.Run("without history", func(t *testing.T) {
		db, clock := setupElection(t)
		testutil.AddTestCandidate(t, db, "Alice")

		rec, err := NewCoordinator(db, clock, nil, nil).Reset(context.Background(), false)
		if err != nil || rec != nil {
			t.Fatalf("Reset() = %v, %v; want nil, nil", rec, err)
		}
		if n := testutil.CountHistory(t, db); n != 0 {
			t.Errorf("history records = %d, want 0", n)
		}
	})

	t.Run("archive failure aborts", func(t *testing.T) {
		db, clock := setupElection(t)
		testutil.AddTestParticipant(t, db, "P1")
		if _, err := db.Exec("UPDATE participant SET has_voted = TRUE"); err != nil {
			t.Fatal(err)
		}

		_, err := NewCoordinator(db, clock, nil, nil).Reset(context.Background(), true)
		if !errors.Is(err, ErrNoCandidates) {
			t.Fatalf("Reset() error = %v, want %v", err, ErrNoCandidates)
		}
		voted, _ := testutil.LedgerTotals(t, db)
		if voted != 1 {
			t.Errorf("aborted reset cleared the ledger")
		}
	})

	t.Run("mid-window reset keeps the close-out armed", func(t *testing.T) {
		db, clock := setupElection(t)
		testutil.AddTestCandidate(t, db, "Alice")
		coord := NewCoordinator(db, clock, nil, nil)

		if _, err := coord.Reset(context.Background(), false); err != nil {
			t.Fatal(err)
		}

		clock.Set(t0.Add(2 * time.Hour))
		reset, err := coord.CheckAndReset(context.Background())
		if err != nil || !reset {
			t.Errorf("CheckAndReset() after mid-window reset = %v, %v; want true, nil", reset, err)
		}
	})

	t.Run("reset after close-out does not archive the window again", func(t *testing.T) {
		db, clock := setupElection(t)
		testutil.AddTestParticipant(t, db, "P1")
		alice := testutil.AddTestCandidate(t, db, "Alice")
		testutil.AddTestCandidate(t, db, "Bob")
		coord := NewCoordinator(db, clock, nil, nil)
		if err := NewLedger(db, clock, nil).CastVote(context.Background(), "P1", alice); err != nil {
			t.Fatal(err)
		}

		clock.Set(t0.Add(2 * time.Hour))
		if reset, err := coord.CheckAndReset(context.Background()); err != nil || !reset {
			t.Fatalf("CheckAndReset() = %v, %v; want true, nil", reset, err)
		}

		rec, err := coord.Reset(context.Background(), true)
		if err != nil || rec != nil {
			t.Fatalf("Reset() = %+v, %v; want nil, nil", rec, err)
		}
		if n := testutil.CountHistory(t, db); n != 1 {
			t.Errorf("history records = %d, want 1", n)
		}
	})

	t.Run("post-window reset suppresses a second archive", func(t *testing.T) {
		db, clock := setupElection(t)
		testutil.AddTestCandidate(t, db, "Alice")
		coord := NewCoordinator(db, clock, nil, nil)

		clock.Set(t0.Add(2 * time.Hour))
		if _, err := coord.Reset(context.Background(), true); err != nil {
			t.Fatal(err)
		}
		reset, err := coord.CheckAndReset(context.Background())
		if err != nil || reset {
			t.Errorf("CheckAndReset() = %v, %v; want false, nil", reset, err)
		}
		if n := testutil.CountHistory(t, db); n != 1 {
			t.Errorf("history records = %d, want 1", n)
		}
	})
}
