// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"math"
	"sort"

	"github.com/danielhkuo/quickly-vote/models"
)

// Tally ranks candidates by vote count and annotates each with its share of
// the total, rounded to one decimal.
func Tally(candidates []models.Candidate) models.TallyResult {
	total := 0
	for _, c := range candidates {
		total += c.VoteCount
	}

	entries := make([]models.TallyEntry, len(candidates))
	for i, c := range candidates {
		entries[i] = models.TallyEntry{
			CandidateID: c.ID,
			Name:        c.Name,
			Affiliation: c.Affiliation,
			Cohort:      c.Cohort,
			PhotoRef:    c.PhotoRef,
			VoteCount:   c.VoteCount,
			Percentage:  percentOf(c.VoteCount, total),
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		// 1. Higher vote count wins
		if a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}

		// 2. Stable tie-breaking by candidate ID (ascending)
		return a.CandidateID < b.CandidateID
	})

	return models.TallyResult{
		Entries:    entries,
		TotalVotes: total,
	}
}

// Winner returns the top entry of a tally, false when there are no entries
func Winner(result models.TallyResult) (models.TallyEntry, bool) {
	if len(result.Entries) == 0 {
		return models.TallyEntry{}, false
	}
	return result.Entries[0], true
}

// percentOf returns part/whole*100 rounded to one decimal, 0 when whole is 0
func percentOf(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(whole)) / 10
}
