// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/livevote/auth"
	"github.com/danielhkuo/livevote/models"
)

// Join code defaults
const (
	DefaultJoinCodeLength   = 5
	DefaultJoinCodeAttempts = 10
)

// Config tunes the engine. Zero values fall back to defaults.
type Config struct {
	JoinCodeLength   int
	JoinCodeAttempts int
	Logger           *slog.Logger
	Now              func() time.Time
	GenerateCode     func(length int) (string, error)
}

// Engine enforces event membership, one ballot per voter, and tallying.
// It holds no mutable state of its own; every mutation runs in a single
// store transaction.
type Engine struct {
	db  *sql.DB
	cfg Config

	// beforeClaim and afterClaim run inside the ballot transaction on
	// either side of the conditional claim on the vote row.
	beforeClaim func(ctx context.Context, tx *sql.Tx) error
	afterClaim  func(ctx context.Context, tx *sql.Tx) error
}

func NewEngine(db *sql.DB, cfg Config) *Engine {
	if cfg.JoinCodeLength <= 0 {
		cfg.JoinCodeLength = DefaultJoinCodeLength
	}
	if cfg.JoinCodeAttempts <= 0 {
		cfg.JoinCodeAttempts = DefaultJoinCodeAttempts
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.GenerateCode == nil {
		cfg.GenerateCode = auth.GenerateJoinCode
	}
	return &Engine{db: db, cfg: cfg}
}

// Now reads the engine clock at the millisecond precision the store keeps.
// Views built from engine results should use it to agree with Closed.
func (e *Engine) Now() time.Time {
	return e.cfg.Now().UTC().Truncate(time.Millisecond)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func requireIdentity(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: identity is required", ErrUnauthenticated)
	}
	return id, nil
}

const eventColumns = `id, creator_id, title, question, allow_multiple_votes, join_code, created_at, end_at`

func scanEvent(row scanner) (models.Event, error) {
	var event models.Event
	var createdAt, endAt int64
	err := row.Scan(
		&event.ID, &event.CreatorID, &event.Title, &event.Question,
		&event.AllowMultipleVotes, &event.JoinCode, &createdAt, &endAt,
	)
	if err != nil {
		return models.Event{}, err
	}
	event.CreatedAt = fromMillis(createdAt)
	event.EndAt = fromMillis(endAt)
	return event, nil
}

// loadEvent resolves an event by join code without its options.
func loadEvent(ctx context.Context, q querier, code string) (models.Event, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.Event{}, fmt.Errorf("%w: join code is required", ErrNotFound)
	}

	event, err := scanEvent(q.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE join_code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, fmt.Errorf("%w: no event with code %q", ErrNotFound, code)
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("query event: %w", err)
	}
	return event, nil
}

func loadOptions(ctx context.Context, q querier, eventID string) ([]models.Option, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, event_id, position, label
		FROM event_option
		WHERE event_id = $1
		ORDER BY position
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.EventID, &opt.Position, &opt.Text); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate options: %w", err)
	}
	return options, nil
}

func loadVote(ctx context.Context, q querier, eventID, voterID string) (models.Vote, error) {
	var vote models.Vote
	var joinedAt int64
	err := q.QueryRowContext(ctx, `
		SELECT id, event_id, voter_id, joined_at, already_voted
		FROM vote
		WHERE event_id = $1 AND voter_id = $2
	`, eventID, voterID).Scan(&vote.ID, &vote.EventID, &vote.VoterID, &joinedAt, &vote.AlreadyVoted)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, ErrNotJoined
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("query vote: %w", err)
	}
	vote.JoinedAt = fromMillis(joinedAt)
	return vote, nil
}
