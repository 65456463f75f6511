// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver from the database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - sqlite: modernc.org/sqlite (pure Go, default). The pool is capped at one
    connection and a busy timeout is added to the DSN.
  - postgres: github.com/lib/pq

# Errors

Driver failures are wrapped with StorageError so callers can tell a retryable
storage problem from a rejected request:

	if errors.Is(err, db.ErrStorage) { ... }

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - participant: external id and has_voted flag
  - candidate: display fields and vote_count
  - election_config: singleton schedule row with last_reset_marker
  - election_history: append-only archive of closed elections

Positional parameters are written as $1, $2, ... which both drivers accept.

# Errors

IsUniqueViolation recognizes duplicate-key failures from either driver.
*/
package db
