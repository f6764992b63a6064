// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/voting"
)

type EventHandler struct {
	engine *voting.Engine
}

func NewEventHandler(db *sql.DB, cfg cliparse.Config) *EventHandler {
	return &EventHandler{engine: newEngine(db, cfg)}
}

func newEngine(db *sql.DB, cfg cliparse.Config) *voting.Engine {
	return voting.NewEngine(db, voting.Config{
		JoinCodeLength:   cfg.JoinCodeLength,
		JoinCodeAttempts: cfg.JoinCodeAttempts,
		Logger:           slog.Default().With("component", "voting"),
	})
}

// CreateEvent handles POST /events
// The caller becomes the event's creator
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	event, err := h.engine.CreateEvent(r.Context(), voting.NewEvent{
		CreatorID:          userID,
		Title:              req.Title,
		Question:           req.Question,
		Options:            req.Options,
		AllowMultipleVotes: req.AllowMultipleVotes,
		EndAt:              req.EndAt,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{
		Message: "Event created",
		Event:   event.View(h.engine.Now()),
	})
}

// GetEvent handles GET /events/{code}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	event, err := h.engine.GetEventByCode(r.Context(), code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, event.View(h.engine.Now()))
}

// ListMyEvents handles GET /events/mine
func (h *EventHandler) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	events, err := h.engine.ListEventsForCreator(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := h.engine.Now()
	views := make([]models.EventView, 0, len(events))
	for _, event := range events {
		views = append(views, event.View(now))
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}
