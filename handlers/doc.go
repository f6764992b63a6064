// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the livevote API.

# Handler Types

Each handler is a struct with its service and config dependencies:

  - AuthHandler: Registration, login and current user
  - EventHandler: Event creation, lookup and the creator's list
  - VotingHandler: Joining, ballot casting and voter history
  - ResultsHandler: Live tally for the creator

Handlers are created via constructor functions that accept *sql.DB and Config:

	eventHandler := handlers.NewEventHandler(db, cfg)

# Identity

Every handler except Register and Login expects the user ID that
middleware.RequireAuth puts in the request context. Without it the handler
answers 401.

# Voting Flow

Voters reach an event through its join code:

	POST /events/{code}/join → JoinEvent (201 first time, 200 after)
	POST /events/{code}/vote → CastVote (exactly once per voter)

# Errors

Domain errors map to statuses in one place (errors.go):

	invalid input, too many choices      → 400
	unauthenticated, bad credentials     → 401
	forbidden                            → 403
	not found, not joined                → 404
	already voted, email taken           → 409
	event closed                         → 410
	anything else                        → 500 (logged, detail withheld)
*/
package handlers
