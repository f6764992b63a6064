// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/handlers"
	"github.com/danielhkuo/livevote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	eventHandler := handlers.NewEventHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// authed wraps a handler with logging and bearer token checks
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("GET /auth/me", authed(authHandler.Me))

	// Event management
	mux.HandleFunc("POST /events", authed(eventHandler.CreateEvent))
	mux.HandleFunc("GET /events/mine", authed(eventHandler.ListMyEvents))
	mux.HandleFunc("GET /events/{code}", authed(eventHandler.GetEvent))

	// Membership and ballots
	mux.HandleFunc("POST /events/{code}/join", authed(votingHandler.JoinEvent))
	mux.HandleFunc("POST /events/{code}/vote", authed(votingHandler.CastVote))
	mux.HandleFunc("GET /votes/mine", authed(votingHandler.ListMyVotes))

	// Live tally (creator only)
	mux.HandleFunc("GET /events/{code}/results", authed(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livevote API v1"))
	})

	return mux
}
