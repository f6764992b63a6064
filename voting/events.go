// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/livevote/models"
	"github.com/google/uuid"
)

// NewEvent is the input to CreateEvent. Options are stored at positions
// 1..N in the order given.
type NewEvent struct {
	CreatorID          string
	Title              string
	Question           string
	Options            []string
	AllowMultipleVotes bool
	EndAt              time.Time
}

// CreateEvent persists an event with its options and a fresh join code.
func (e *Engine) CreateEvent(ctx context.Context, in NewEvent) (models.Event, error) {
	creatorID, err := requireIdentity(in.CreatorID)
	if err != nil {
		return models.Event{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Event{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(in.Options) < 2 {
		return models.Event{}, fmt.Errorf("%w: at least 2 options are required", ErrInvalidInput)
	}
	texts := make([]string, len(in.Options))
	for i, text := range in.Options {
		text = strings.TrimSpace(text)
		if text == "" {
			return models.Event{}, fmt.Errorf("%w: option %d is empty", ErrInvalidInput, i+1)
		}
		texts[i] = text
	}

	now := e.Now()
	endAt := in.EndAt.UTC().Truncate(time.Millisecond)
	if !endAt.After(now) {
		return models.Event{}, fmt.Errorf("%w: end_at must be in the future", ErrInvalidInput)
	}

	event := models.Event{
		ID:                 uuid.NewString(),
		CreatorID:          creatorID,
		Title:              title,
		Question:           strings.TrimSpace(in.Question),
		AllowMultipleVotes: in.AllowMultipleVotes,
		CreatedAt:          now,
		EndAt:              endAt,
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Event{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := e.insertEvent(ctx, tx, &event); err != nil {
		return models.Event{}, err
	}

	event.Options = make([]models.Option, 0, len(texts))
	for i, text := range texts {
		opt := models.Option{
			ID:       uuid.NewString(),
			EventID:  event.ID,
			Position: i + 1,
			Text:     text,
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO event_option (id, event_id, position, label)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, opt.EventID, opt.Position, opt.Text)
		if err != nil {
			return models.Event{}, fmt.Errorf("insert option %d: %w", opt.Position, err)
		}
		event.Options = append(event.Options, opt)
	}

	if err := tx.Commit(); err != nil {
		return models.Event{}, fmt.Errorf("commit: %w", err)
	}

	e.cfg.Logger.Info("event created",
		"event_id", event.ID,
		"join_code", event.JoinCode,
		"creator_id", creatorID,
		"options", len(event.Options),
		"allow_multiple_votes", event.AllowMultipleVotes,
	)
	return event, nil
}

// insertEvent draws join codes until one inserts cleanly or the attempt
// budget runs out.
func (e *Engine) insertEvent(ctx context.Context, tx *sql.Tx, event *models.Event) error {
	for attempt := 1; attempt <= e.cfg.JoinCodeAttempts; attempt++ {
		code, err := e.cfg.GenerateCode(e.cfg.JoinCodeLength)
		if err != nil {
			return fmt.Errorf("generate join code: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO event (`+eventColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (join_code) DO NOTHING
		`, event.ID, event.CreatorID, event.Title, event.Question, event.AllowMultipleVotes,
			code, toMillis(event.CreatedAt), toMillis(event.EndAt))
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		if n == 1 {
			event.JoinCode = code
			return nil
		}

		e.cfg.Logger.Warn("join code collision", "attempt", attempt, "event_id", event.ID)
	}

	e.cfg.Logger.Error("join code space exhausted",
		"attempts", e.cfg.JoinCodeAttempts,
		"length", e.cfg.JoinCodeLength,
	)
	return fmt.Errorf("%w after %d attempts", ErrJoinCodeExhausted, e.cfg.JoinCodeAttempts)
}

// GetEventByCode returns the event and its options ordered by position.
func (e *Engine) GetEventByCode(ctx context.Context, code string) (models.Event, error) {
	event, err := loadEvent(ctx, e.db, code)
	if err != nil {
		return models.Event{}, err
	}

	event.Options, err = loadOptions(ctx, e.db, event.ID)
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// ListEventsForCreator returns the creator's events, newest first.
func (e *Engine) ListEventsForCreator(ctx context.Context, creatorID string) ([]models.Event, error) {
	creatorID, err := requireIdentity(creatorID)
	if err != nil {
		return nil, err
	}

	events, err := queryEvents(ctx, e.db, `
		SELECT `+eventColumns+`
		FROM event
		WHERE creator_id = $1
		ORDER BY created_at DESC, id
	`, creatorID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: no events for this creator", ErrNotFound)
	}

	// Rows are closed by now; SQLite runs on a single connection.
	for i := range events {
		events[i].Options, err = loadOptions(ctx, e.db, events[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

func queryEvents(ctx context.Context, q querier, query string, args ...any) ([]models.Event, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
