// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"

	"github.com/danielhkuo/livevote/models"
)

// ComputeResults counts selections per option for the event's creator.
// Results are live; there is no snapshot or close step.
func (e *Engine) ComputeResults(ctx context.Context, code, requesterID string) (models.EventResults, error) {
	requesterID, err := requireIdentity(requesterID)
	if err != nil {
		return models.EventResults{}, err
	}

	event, err := loadEvent(ctx, e.db, code)
	if err != nil {
		return models.EventResults{}, err
	}
	if event.CreatorID != requesterID {
		return models.EventResults{}, fmt.Errorf("%w: only the creator can view results", ErrForbidden)
	}

	rows, err := e.db.QueryContext(ctx, `
		SELECT o.position, o.label, COUNT(s.id)
		FROM event_option o
		LEFT JOIN selection s ON s.option_id = o.id
		WHERE o.event_id = $1
		GROUP BY o.id, o.position, o.label
		ORDER BY o.position
	`, event.ID)
	if err != nil {
		return models.EventResults{}, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	results := []models.OptionResult{}
	for rows.Next() {
		var r models.OptionResult
		if err := rows.Scan(&r.Position, &r.Text, &r.Votes); err != nil {
			return models.EventResults{}, fmt.Errorf("scan count: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return models.EventResults{}, fmt.Errorf("iterate counts: %w", err)
	}

	total, leader := Tally(results)

	e.cfg.Logger.Debug("results computed", "event_id", event.ID, "total_votes", total)
	return models.EventResults{
		Title:           event.Title,
		Question:        event.Question,
		TotalVotes:      total,
		Results:         results,
		MostVotedOption: leader,
	}, nil
}

// Tally sums per-option counts and names the option with the strictly
// highest count. Results must be ordered by position; on a tie the lowest
// position wins. The leader is nil when nothing has been selected.
func Tally(results []models.OptionResult) (int, *string) {
	total, best := 0, 0
	var leader *string
	for _, r := range results {
		total += r.Votes
		if r.Votes > best {
			best = r.Votes
			text := r.Text
			leader = &text
		}
	}
	return total, leader
}
