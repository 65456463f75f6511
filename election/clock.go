// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"time"

	"github.com/danielhkuo/quickly-vote/models"
)

// Clock supplies the current time to the lifecycle code
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now
func SystemClock() Clock { return systemClock{} }

// Schedule is the temporal state of an election window at one instant
type Schedule struct {
	Configured bool
	HasStarted bool
	HasEnded   bool
	IsActive   bool
}

// Evaluate maps (now, start, end) to the window state.
// The window is inclusive at both ends: voting is open at exactly start and
// at exactly end.
func Evaluate(now, start, end time.Time) Schedule {
	hasStarted := !now.Before(start)
	hasEnded := now.After(end)
	return Schedule{
		Configured: true,
		HasStarted: hasStarted,
		HasEnded:   hasEnded,
		IsActive:   hasStarted && !hasEnded,
	}
}

// Unconfigured is the state reported when no election has been set up
func Unconfigured() Schedule {
	return Schedule{}
}

// EvaluateConfig evaluates cfg, treating a nil config as unconfigured
func EvaluateConfig(now time.Time, cfg *models.ElectionConfig) Schedule {
	if cfg == nil {
		return Unconfigured()
	}
	return Evaluate(now, cfg.WindowStart, cfg.WindowEnd)
}

// Phase returns the status label for s
func (s Schedule) Phase() string {
	switch {
	case !s.Configured:
		return models.PhaseUnconfigured
	case s.HasEnded:
		return models.PhaseEnded
	case s.IsActive:
		return models.PhaseOpen
	default:
		return models.PhaseNotStarted
	}
}
