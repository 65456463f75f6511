// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster manages participants and candidates.

The voting core only ever reads these rows and flips the has_voted flag and
vote_count column; creating and removing them happens here.

	r := roster.New(conn)
	if err := r.AddParticipant(ctx, "202400117"); err != nil {
		// ErrDuplicateParticipant, ErrInvalidParticipantID, or a storage error
	}

Candidate IDs are random hex strings from auth.GenerateID.
*/
package roster
