// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and HMAC-based credentials.

Identity proofing is out of scope for this service: a participant "logs in"
with their registered ID and receives a signed token that later requests
present. Nothing is stored server-side.

# Admin Keys

The admin key is an HMAC of a fixed scope with ADMIN_KEY_SALT:

	key := auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(auth.AdminScope, headerValue, cfg.AdminKeySalt)

Start the server with -print-admin-key to print it.

# Voter Tokens

	token := auth.GenerateVoterToken(participantID, cfg.VoterTokenSalt)
	participantID, err := auth.ParseVoterToken(token, cfg.VoterTokenSalt)

Tokens look like "<participant id>.<signature>" (URL-safe base64, no padding).

# IDs

GenerateID returns crypto/rand hex strings, used for candidate IDs.

# IP Hashing

HashIP produces a salted, truncated hash so request logs never carry raw
client addresses.
*/
package auth
