package models

import "time"

// Schedule phase labels reported alongside the boolean flags
const (
	PhaseUnconfigured = "unconfigured"
	PhaseNotStarted   = "not_started"
	PhaseOpen         = "open"
	PhaseEnded        = "ended"
)

// Request types

type LoginRequest struct {
	ParticipantID string `json:"participant_id"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

type ScheduleRequest struct {
	Title       *string   `json:"title,omitempty"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

type TitleRequest struct {
	Title string `json:"title"`
}

// save_history defaults to true when omitted
type ResetRequest struct {
	SaveHistory *bool `json:"save_history,omitempty"`
}

type AddParticipantRequest struct {
	ID string `json:"id"`
}

type BulkParticipantsRequest struct {
	IDs []string `json:"ids"`
}

type AddCandidateRequest struct {
	Name        string  `json:"name"`
	Affiliation string  `json:"affiliation"`
	Cohort      int     `json:"cohort"`
	PhotoRef    *string `json:"photo_ref,omitempty"`
}

// Response types

type LoginResponse struct {
	VoterToken    string `json:"voter_token"`
	ParticipantID string `json:"participant_id"`
	HasVoted      bool   `json:"has_voted"`
}

type VoterMeResponse struct {
	ParticipantID string `json:"participant_id"`
	HasVoted      bool   `json:"has_voted"`
	Status        Status `json:"status"`
}

type CastVoteResponse struct {
	Message string `json:"message"`
}

type ResetResponse struct {
	Message string         `json:"message"`
	History *HistoryRecord `json:"history,omitempty"`
}

type BulkParticipantsResponse struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type DashboardResponse struct {
	Stats  Stats       `json:"stats"`
	Status Status      `json:"status"`
	Tally  TallyResult `json:"tally"`
}

// Domain types

type Participant struct {
	ID       string `json:"id"`
	HasVoted bool   `json:"has_voted"`
}

type Candidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Affiliation string  `json:"affiliation"`
	Cohort      int     `json:"cohort"`
	PhotoRef    *string `json:"photo_ref,omitempty"`
	VoteCount   int     `json:"vote_count"`
}

// PublicCandidate is the ballot view of a candidate, without vote counts
type PublicCandidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Affiliation string  `json:"affiliation"`
	Cohort      int     `json:"cohort"`
	PhotoRef    *string `json:"photo_ref,omitempty"`
}

func (c Candidate) Public() PublicCandidate {
	return PublicCandidate{
		ID:          c.ID,
		Name:        c.Name,
		Affiliation: c.Affiliation,
		Cohort:      c.Cohort,
		PhotoRef:    c.PhotoRef,
	}
}

type ElectionConfig struct {
	Title           string     `json:"title"`
	WindowStart     time.Time  `json:"window_start"`
	WindowEnd       time.Time  `json:"window_end"`
	LastResetMarker *time.Time `json:"last_reset_marker,omitempty"`
}

// Archived reports whether the current window has already been archived/reset
func (c ElectionConfig) Archived() bool {
	return c.LastResetMarker != nil && c.LastResetMarker.Equal(c.WindowEnd)
}

type Status struct {
	Title       string     `json:"title"`
	WindowStart *time.Time `json:"window_start,omitempty"`
	WindowEnd   *time.Time `json:"window_end,omitempty"`
	IsActive    bool       `json:"is_active"`
	HasStarted  bool       `json:"has_started"`
	HasEnded    bool       `json:"has_ended"`
	Phase       string     `json:"phase"`
	Opens       string     `json:"opens,omitempty"`  // e.g. "3 hours from now"
	Closes      string     `json:"closes,omitempty"` // e.g. "2 days ago"
}

// TallyEntry is derived from candidate rows and never stored on its own
type TallyEntry struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Affiliation string  `json:"affiliation"`
	Cohort      int     `json:"cohort"`
	PhotoRef    *string `json:"photo_ref,omitempty"`
	VoteCount   int     `json:"vote_count"`
	Percentage  float64 `json:"percentage"`
}

type TallyResult struct {
	Entries    []TallyEntry `json:"entries"`
	TotalVotes int          `json:"total_votes"`
}

type Stats struct {
	TotalParticipants int     `json:"total_participants"`
	TotalCandidates   int     `json:"total_candidates"`
	ParticipantsVoted int     `json:"participants_voted"`
	ParticipationRate float64 `json:"participation_rate"`
}

type HistoryRecord struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	WindowStart       time.Time    `json:"window_start"`
	WindowEnd         time.Time    `json:"window_end"`
	Winner            TallyEntry   `json:"winner"`
	TotalVotes        int          `json:"total_votes"`
	TotalParticipants int          `json:"total_participants"`
	ParticipantsVoted int          `json:"participants_voted"`
	ParticipationRate float64      `json:"participation_rate"`
	Candidates        []TallyEntry `json:"candidates"`
	SavedAt           time.Time    `json:"saved_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
