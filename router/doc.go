// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the livevote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts (public):

	POST /auth/register - Create account
	POST /auth/login    - Exchange credentials for a bearer token

Everything below requires "Authorization: Bearer <token>":

	GET  /auth/me               - Current user
	POST /events                - Create event (caller is creator)
	GET  /events/mine           - Caller's events, newest first
	GET  /events/{code}         - Event view by join code
	POST /events/{code}/join    - Join as a voter
	POST /events/{code}/vote    - Cast the single ballot
	GET  /events/{code}/results - Live tally (creator only)
	GET  /votes/mine            - Caller's participation history

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, cfg)
	eventHandler := handlers.NewEventHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
