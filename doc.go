// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livevote API server.

livevote runs short live polls. A creator opens an event with a question,
two or more options and a deadline, then shares its join code. Voters join
before the deadline, cast exactly one ballot (one option, or several when
the event allows it), and the creator watches the tally update live.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=livevote.db JWT_SECRET=... go run .

Or against PostgreSQL with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret ...

A .env file in the working directory is read if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Access token signing secret

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_TTL (--token-ttl): Access token lifetime (default: 24h)
  - JOIN_CODE_LENGTH (--code-length): Join code length (default: 5)
  - JOIN_CODE_ATTEMPTS (--code-attempts): Join code retries (default: 10)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voting: Event store, membership ledger, ballot and tally engines
  - accounts: Registration, login and token issue
  - handlers: HTTP request handlers (auth, events, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Bearer auth, CORS, logging, JSON helpers
  - models: Domain, request and response types
  - auth: Join codes, password hashing, access tokens
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
