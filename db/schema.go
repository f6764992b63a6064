// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The same DDL runs on PostgreSQL and SQLite, so timestamps are stored as
// Unix milliseconds.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

-- Events
CREATE TABLE IF NOT EXISTS event (
    id TEXT PRIMARY KEY,
    creator_id TEXT NOT NULL,
    title TEXT NOT NULL,
    question TEXT NOT NULL,
    allow_multiple_votes BOOLEAN NOT NULL DEFAULT FALSE,
    join_code TEXT NOT NULL UNIQUE,
    created_at BIGINT NOT NULL,
    end_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_creator ON event(creator_id, created_at);

-- Options
CREATE TABLE IF NOT EXISTS event_option (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    position INTEGER NOT NULL CHECK (position >= 1),
    label TEXT NOT NULL,
    UNIQUE (event_id, position)
);

CREATE INDEX IF NOT EXISTS idx_event_option_event_id ON event_option(event_id);

-- Participation (one row per voter per event)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    joined_at BIGINT NOT NULL,
    already_voted BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (event_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(voter_id, joined_at);

-- Selections
CREATE TABLE IF NOT EXISTS selection (
    id TEXT PRIMARY KEY,
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL REFERENCES event_option(id) ON DELETE CASCADE,
    UNIQUE (vote_id, option_id)
);

CREATE INDEX IF NOT EXISTS idx_selection_option_id ON selection(option_id);
`
