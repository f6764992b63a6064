// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/voting"
)

type VotingHandler struct {
	engine *voting.Engine
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{engine: newEngine(db, cfg)}
}

// JoinEvent handles POST /events/{code}/join
// Returns 201 on first join and 200 when the caller already joined
func (h *VotingHandler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	result, err := h.engine.Join(r.Context(), code, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status, message := http.StatusCreated, "Joined event"
	if result.AlreadyJoined {
		status, message = http.StatusOK, "Already joined"
	}
	message = fmt.Sprintf("%s; cast your ballot at POST /events/%s/vote", message, result.Event.JoinCode)

	middleware.JSONResponse(w, status, models.JoinEventResponse{
		Message:       message,
		EventTitle:    result.Event.Title,
		JoinCode:      result.Event.JoinCode,
		ClosesIn:      models.ClosesIn(result.Event.EndAt, h.engine.Now()),
		AlreadyJoined: result.AlreadyJoined,
	})
}

// CastVote handles POST /events/{code}/vote
// Choices are option positions; a voter gets exactly one ballot
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	receipt, err := h.engine.CastVote(r.Context(), code, userID, req.Choices)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Message:        "Vote recorded",
		EventTitle:     receipt.EventTitle,
		SelectionCount: receipt.SelectionCount,
	})
}

// ListMyVotes handles GET /votes/mine
// Returns every event the caller joined, most recent first
func (h *VotingHandler) ListMyVotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entries, err := h.engine.ListVotesForVoter(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}
