// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
)

func TestEvaluate(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	tests := []struct {
		name      string
		now       time.Time
		want      Schedule
		wantPhase string
	}{
		{"before start", start.Add(-time.Second), Schedule{Configured: true}, models.PhaseNotStarted},
		{"exactly start", start, Schedule{Configured: true, HasStarted: true, IsActive: true}, models.PhaseOpen},
		{"inside window", start.Add(time.Hour), Schedule{Configured: true, HasStarted: true, IsActive: true}, models.PhaseOpen},
		{"exactly end", end, Schedule{Configured: true, HasStarted: true, IsActive: true}, models.PhaseOpen},
		{"after end", end.Add(time.Nanosecond), Schedule{Configured: true, HasStarted: true, HasEnded: true}, models.PhaseEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.now, start, end)
			if got != tt.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
			if got.Phase() != tt.wantPhase {
				t.Errorf("Phase() = %q, want %q", got.Phase(), tt.wantPhase)
			}
		})
	}
}

func TestEvaluateConfig_Unconfigured(t *testing.T) {
	got := EvaluateConfig(time.Now(), nil)
	if got != Unconfigured() {
		t.Errorf("EvaluateConfig(nil) = %+v, want all false", got)
	}
	if got.IsActive {
		t.Error("Unconfigured election must not be active")
	}
	if got.Phase() != models.PhaseUnconfigured {
		t.Errorf("Phase() = %q, want %q", got.Phase(), models.PhaseUnconfigured)
	}
}

func TestEvaluate_TimezoneIndependent(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	loc := time.FixedZone("UTC+9", 9*60*60)
	now := start.Add(30 * time.Minute).In(loc)

	if !Evaluate(now, start, end).IsActive {
		t.Error("Same instant in another zone should evaluate identically")
	}
}
