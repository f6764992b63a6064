// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/voting"
)

type ResultsHandler struct {
	engine *voting.Engine
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{engine: newEngine(db, cfg)}
}

// GetResults handles GET /events/{code}/results
// Only the creator may read the tally; counts are live while voting is open
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	results, err := h.engine.ComputeResults(r.Context(), code, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
