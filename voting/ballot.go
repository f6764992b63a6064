// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"

	"github.com/danielhkuo/livevote/models"
	"github.com/google/uuid"
)

// CastVote records the voter's single ballot for the event. Choices are
// option positions. The claim on the vote row and every selection commit
// together or not at all.
func (e *Engine) CastVote(ctx context.Context, code, voterID string, positions []int) (models.BallotReceipt, error) {
	voterID, err := requireIdentity(voterID)
	if err != nil {
		return models.BallotReceipt{}, err
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return models.BallotReceipt{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	event, err := loadEvent(ctx, tx, code)
	if err != nil {
		return models.BallotReceipt{}, err
	}

	vote, err := loadVote(ctx, tx, event.ID, voterID)
	if err != nil {
		return models.BallotReceipt{}, err
	}
	if vote.AlreadyVoted {
		return models.BallotReceipt{}, fmt.Errorf("%w: ballot already cast in %q", ErrAlreadyVoted, event.Title)
	}

	var existing int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM selection WHERE vote_id = $1`, vote.ID).Scan(&existing)
	if err != nil {
		return models.BallotReceipt{}, fmt.Errorf("count selections: %w", err)
	}
	if existing > 0 {
		e.cfg.Logger.Warn("selections found on unvoted ballot", "vote_id", vote.ID, "selections", existing)
		return models.BallotReceipt{}, fmt.Errorf("%w: ballot already has selections", ErrAlreadyVoted)
	}

	options, err := loadOptions(ctx, tx, event.ID)
	if err != nil {
		return models.BallotReceipt{}, err
	}
	chosen, err := resolveChoices(event, options, positions)
	if err != nil {
		return models.BallotReceipt{}, err
	}

	if e.beforeClaim != nil {
		if err := e.beforeClaim(ctx, tx); err != nil {
			return models.BallotReceipt{}, err
		}
	}

	// Conditional claim: a concurrent cast that got here first leaves
	// nothing to update.
	res, err := tx.ExecContext(ctx, `
		UPDATE vote SET already_voted = $1
		WHERE id = $2 AND already_voted = $3
	`, true, vote.ID, false)
	if err != nil {
		return models.BallotReceipt{}, fmt.Errorf("claim vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.BallotReceipt{}, fmt.Errorf("claim vote: %w", err)
	}
	if n == 0 {
		return models.BallotReceipt{}, fmt.Errorf("%w: ballot already cast in %q", ErrAlreadyVoted, event.Title)
	}

	if e.afterClaim != nil {
		if err := e.afterClaim(ctx, tx); err != nil {
			return models.BallotReceipt{}, err
		}
	}

	for _, opt := range chosen {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO selection (id, vote_id, option_id)
			VALUES ($1, $2, $3)
		`, uuid.NewString(), vote.ID, opt.ID)
		if err != nil {
			return models.BallotReceipt{}, fmt.Errorf("insert selection %d: %w", opt.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.BallotReceipt{}, fmt.Errorf("commit: %w", err)
	}

	e.cfg.Logger.Info("ballot cast",
		"event_id", event.ID,
		"voter_id", voterID,
		"selections", len(chosen),
	)
	return models.BallotReceipt{
		EventTitle:     event.Title,
		JoinCode:       event.JoinCode,
		SelectionCount: len(chosen),
	}, nil
}

// resolveChoices maps positions to options. Positions must be non-empty,
// distinct and belong to the event; single-select events take exactly one.
func resolveChoices(event models.Event, options []models.Option, positions []int) ([]models.Option, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: at least one choice is required", ErrInvalidInput)
	}

	byPosition := make(map[int]models.Option, len(options))
	for _, opt := range options {
		byPosition[opt.Position] = opt
	}

	seen := make(map[int]bool, len(positions))
	chosen := make([]models.Option, 0, len(positions))
	for _, pos := range positions {
		if seen[pos] {
			return nil, fmt.Errorf("%w: choice %d appears more than once", ErrInvalidInput, pos)
		}
		seen[pos] = true

		opt, ok := byPosition[pos]
		if !ok {
			return nil, fmt.Errorf("%w: choice %d is not an option of this event", ErrInvalidInput, pos)
		}
		chosen = append(chosen, opt)
	}

	if !event.AllowMultipleVotes && len(chosen) > 1 {
		return nil, fmt.Errorf("%w: got %d choices", ErrTooManyChoices, len(chosen))
	}
	return chosen, nil
}
