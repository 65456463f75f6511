// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

main loads a .env file (if present) before calling ParseFlags, so values
from .env behave like ordinary environment variables.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path or PostgreSQL connection string
    (default for sqlite: quickly-vote.db)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKeySalt: Secret for admin key HMAC (required)
  - VoterTokenSalt: Secret for voter token HMAC (required)
  - WatchInterval: Period of the background window watcher (0 disables)
  - PrintAdminKey: Print the admin key and exit

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type
	-watch             Watcher interval, e.g. 30s
	--admin-salt       Admin key salt
	--voter-salt       Voter token salt
	-print-admin-key   Print the admin key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	WATCH_INTERVAL   → -watch
	ADMIN_KEY_SALT   → --admin-salt
	VOTER_TOKEN_SALT → --voter-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_URL is missing for postgres
  - ADMIN_KEY_SALT or VOTER_TOKEN_SALT is missing
  - PORT or WATCH_INTERVAL cannot be parsed
*/
package cliparse
