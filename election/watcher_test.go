// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestWatcherTick(t *testing.T) {
	db, clock := setupElection(t)
	testutil.AddTestCandidate(t, db, "Alice")
	w := NewWatcher(NewCoordinator(db, clock, nil, nil), time.Minute, nil)

	w.tick(context.Background())
	if n := testutil.CountHistory(t, db); n != 0 {
		t.Fatalf("tick inside the window archived %d records", n)
	}

	clock.Set(t0.Add(2 * time.Hour))
	w.tick(context.Background())
	w.tick(context.Background())
	if n := testutil.CountHistory(t, db); n != 1 {
		t.Errorf("history records = %d, want 1", n)
	}
}

func TestWatcherRun_StopsOnCancel(t *testing.T) {
	db, clock := setupElection(t)
	w := NewWatcher(NewCoordinator(db, clock, nil, nil), time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestCloseOut_ReturnsClosedWindow(t *testing.T) {
	db, clock := setupElection(t)
	testutil.AddTestCandidate(t, db, "Alice")
	coord := NewCoordinator(db, clock, nil, nil)

	if closed, err := coord.closeOut(context.Background()); err != nil || closed != nil {
		t.Fatalf("closeOut() inside the window = %+v, %v; want nil, nil", closed, err)
	}

	clock.Set(t0.Add(2 * time.Hour))
	closed, err := coord.closeOut(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if closed == nil || closed.Title != "Test Election" || !closed.WindowEnd.Equal(t0.Add(time.Hour)) {
		t.Errorf("closeOut() = %+v, want the Test Election window ending %v", closed, t0.Add(time.Hour))
	}

	if closed, _ := coord.closeOut(context.Background()); closed != nil {
		t.Errorf("second closeOut() = %+v, want nil", closed)
	}
}
