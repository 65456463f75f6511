// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote runs a single scheduled election at a time: registered
participants each cast at most one vote while the window is open, and once
the window ends the results are archived and the ledger is cleared for the
next round.

# Starting the Server

The server reads a .env file if one exists, then environment variables or
CLI flags:

	ADMIN_KEY_SALT=... VOTER_TOKEN_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -watch 30s

Print the admin key for the configured salt:

	go run . -print-admin-key

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - VOTER_TOKEN_SALT (--voter-salt): Secret for voter token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - WATCH_INTERVAL (-watch): Background close-out check period

# Architecture

  - election: Schedule evaluation, vote ledger, tally, archive, reset
  - roster: Participant and candidate registration
  - handlers: HTTP request handlers (voter, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, credentials, JSON helpers
  - models: Request/response and domain types
  - auth: Admin keys, voter tokens, IDs
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
