// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite path (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: Access token signing secret (required)
  - TokenTTL: Access token lifetime (default: 24h)
  - JoinCodeLength: Characters per join code (default: 5)
  - JoinCodeAttempts: Join code retries before failing (default: 10)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	--jwt-secret    Access token secret
	--token-ttl     Access token lifetime
	--code-length   Join code length
	--code-attempts Join code attempts

# Environment Variables

A .env file in the working directory is loaded first if present. Flags
default to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	JWT_SECRET         → --jwt-secret
	TOKEN_TTL          → --token-ttl
	JOIN_CODE_LENGTH   → --code-length
	JOIN_CODE_ATTEMPTS → --code-attempts

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - TOKEN_TTL, JOIN_CODE_LENGTH and JOIN_CODE_ATTEMPTS must be positive
*/
package cliparse
