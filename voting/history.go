// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"

	"github.com/danielhkuo/livevote/models"
)

// ListVotesForVoter returns every event the voter joined, most recent
// join first, with the option texts they chose.
func (e *Engine) ListVotesForVoter(ctx context.Context, voterID string) ([]models.VoteHistoryEntry, error) {
	voterID, err := requireIdentity(voterID)
	if err != nil {
		return nil, err
	}

	rows, err := e.db.QueryContext(ctx, `
		SELECT v.id, v.already_voted, v.joined_at, e.title, e.question, e.join_code
		FROM vote v
		JOIN event e ON e.id = v.event_id
		WHERE v.voter_id = $1
		ORDER BY v.joined_at DESC, v.id
	`, voterID)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}

	var voteIDs []string
	var entries []models.VoteHistoryEntry
	for rows.Next() {
		var entry models.VoteHistoryEntry
		var voteID string
		var joinedAt int64
		if err := rows.Scan(&voteID, &entry.AlreadyVoted, &joinedAt,
			&entry.EventTitle, &entry.EventQuestion, &entry.EventUniqueCode); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		entry.JoinedAt = fromMillis(joinedAt)
		entry.VoteChoices = []string{}
		voteIDs = append(voteIDs, voteID)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate votes: %w", err)
	}
	rows.Close()

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: voter has not joined any events", ErrNotFound)
	}

	for i, voteID := range voteIDs {
		if !entries[i].AlreadyVoted {
			continue
		}
		entries[i].VoteChoices, err = e.loadChoices(ctx, voteID)
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (e *Engine) loadChoices(ctx context.Context, voteID string) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT o.label
		FROM selection s
		JOIN event_option o ON o.id = s.option_id
		WHERE s.vote_id = $1
		ORDER BY o.position
	`, voteID)
	if err != nil {
		return nil, fmt.Errorf("query selections: %w", err)
	}
	defer rows.Close()

	choices := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		choices = append(choices, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selections: %w", err)
	}
	return choices, nil
}
