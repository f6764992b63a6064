// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the relational store and creates its schema.

# Connecting

Open accepts a database type and URL:

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "livevote.db")

SQLite connections enable foreign keys and a busy timeout, and are limited
to one open connection so transactions run one at a time.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is shared by both drivers.

# Tables

  - app_user: Registered accounts
  - event: Voting events with a unique join code
  - event_option: Options per event, numbered 1..N
  - vote: One participation row per voter per event
  - selection: Options chosen on a cast ballot

# Relationships

	event 1──* event_option
	event 1──* vote
	vote 1──* selection
	event_option 1──* selection

All foreign keys use ON DELETE CASCADE.

# Constraints

  - event.join_code is unique
  - event_option.(event_id, position) is unique
  - vote.(event_id, voter_id) is unique
  - selection.(vote_id, option_id) is unique

IsUniqueViolation recognizes constraint errors from both lib/pq and
modernc.org/sqlite.
*/
package db
