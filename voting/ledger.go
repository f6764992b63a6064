// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"

	"github.com/danielhkuo/livevote/models"
	"github.com/google/uuid"
)

// Join registers voterID as a participant of the event with the given
// join code. Joining again before voting returns the existing row with
// AlreadyJoined set.
func (e *Engine) Join(ctx context.Context, code, voterID string) (models.JoinResult, error) {
	voterID, err := requireIdentity(voterID)
	if err != nil {
		return models.JoinResult{}, err
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return models.JoinResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	event, err := loadEvent(ctx, tx, code)
	if err != nil {
		return models.JoinResult{}, err
	}
	if event.CreatorID == voterID {
		return models.JoinResult{}, fmt.Errorf("%w: creators cannot join their own event", ErrForbidden)
	}

	now := e.Now()
	if event.Closed(now) {
		return models.JoinResult{}, fmt.Errorf("%w: voting ended %s", ErrEventClosed, models.ClosesIn(event.EndAt, now))
	}

	vote := models.Vote{
		ID:       uuid.NewString(),
		EventID:  event.ID,
		VoterID:  voterID,
		JoinedAt: now,
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO vote (id, event_id, voter_id, joined_at, already_voted)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, voter_id) DO NOTHING
	`, vote.ID, vote.EventID, vote.VoterID, toMillis(vote.JoinedAt), false)
	if err != nil {
		return models.JoinResult{}, fmt.Errorf("insert vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.JoinResult{}, fmt.Errorf("insert vote: %w", err)
	}

	alreadyJoined := n == 0
	if alreadyJoined {
		vote, err = loadVote(ctx, tx, event.ID, voterID)
		if err != nil {
			return models.JoinResult{}, err
		}
		if vote.AlreadyVoted {
			return models.JoinResult{}, fmt.Errorf("%w: ballot already cast in %q", ErrAlreadyVoted, event.Title)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.JoinResult{}, fmt.Errorf("commit: %w", err)
	}

	e.cfg.Logger.Info("voter joined",
		"event_id", event.ID,
		"voter_id", voterID,
		"already_joined", alreadyJoined,
	)
	return models.JoinResult{Event: event, Vote: vote, AlreadyJoined: alreadyJoined}, nil
}
