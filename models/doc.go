// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: participant_id
  - CastVoteRequest: candidate_id
  - ScheduleRequest: title (optional), window_start, window_end
  - TitleRequest: title
  - ResetRequest: save_history (optional, default true)
  - AddParticipantRequest, BulkParticipantsRequest, AddCandidateRequest

# Response Types

Types for JSON responses:

  - LoginResponse: voter_token, participant_id, has_voted
  - VoterMeResponse: participant_id, has_voted, status
  - CastVoteResponse: message
  - ResetResponse: message, history
  - DashboardResponse: stats, status, tally
  - ErrorResponse: error, message

# Domain Types

  - Participant: external id and has_voted flag
  - Candidate: display fields and vote_count
  - PublicCandidate: ballot view without vote_count
  - ElectionConfig: title, window, last_reset_marker
  - Status: schedule flags derived from the window
  - TallyEntry / TallyResult: ranked counts with percentages
  - Stats: participation numbers
  - HistoryRecord: immutable archive of a closed election

# Constants

Status phases:

	PhaseUnconfigured = "unconfigured"
	PhaseNotStarted   = "not_started"
	PhaseOpen         = "open"
	PhaseEnded        = "ended"
*/
package models
