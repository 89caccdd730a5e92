package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/behavior"
)

// ReviseSystemPrompt advances a phone number's prompt chain by one revision.
//
// The whole sequence runs in a single transaction with the active row
// locked: read the current prompt, let evolve derive the next one, flip the
// old row inactive and insert the new active row. That keeps the "exactly
// one active prompt per phone number" invariant even under overlapping
// webhook retries.
func (s *Store) ReviseSystemPrompt(
	ctx context.Context,
	phoneNumber string,
	trigger behavior.Metrics,
	evolve func(currentPrompt string) (newPrompt, rationale string),
) (uuid.UUID, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var current string
	var previous *string
	err = tx.QueryRow(ctx, `
		SELECT current_prompt FROM system_prompt_revisions
		WHERE phone_number = $1 AND is_active
		FOR UPDATE`,
		phoneNumber,
	).Scan(&current)
	switch {
	case err == nil:
		previous = &current
	case errors.Is(err, pgx.ErrNoRows):
		// First revision for this phone number.
	default:
		return uuid.Nil, fmt.Errorf("fetch active prompt: %w", err)
	}

	newPrompt, rationale := evolve(current)

	if _, err := tx.Exec(ctx, `
		UPDATE system_prompt_revisions SET is_active = false
		WHERE phone_number = $1 AND is_active`,
		phoneNumber,
	); err != nil {
		return uuid.Nil, fmt.Errorf("deactivate prior revision: %w", err)
	}

	triggerJSON, _ := json.Marshal(trigger)
	id := uuid.New()
	if _, err := tx.Exec(ctx, `
		INSERT INTO system_prompt_revisions (
			id, phone_number, current_prompt, previous_prompt,
			trigger_metrics, improvement_rationale, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, true, now())`,
		id, phoneNumber, newPrompt, previous, triggerJSON, rationale,
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert revision: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ActivePrompt returns the active prompt text for a phone number, or ""
// when no revision exists yet.
func (s *Store) ActivePrompt(ctx context.Context, phoneNumber string) (string, error) {
	var prompt string
	err := s.pool.QueryRow(ctx, `
		SELECT current_prompt FROM system_prompt_revisions
		WHERE phone_number = $1 AND is_active`,
		phoneNumber,
	).Scan(&prompt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("fetch active prompt: %w", err)
	}
	return prompt, nil
}

// TrimPromptRevisions deletes inactive revisions beyond the most recent
// keep per phone number. Maintenance only; never touches active rows.
func (s *Store) TrimPromptRevisions(ctx context.Context, keep int) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM system_prompt_revisions WHERE id IN (
			SELECT id FROM (
				SELECT id, row_number() OVER (
					PARTITION BY phone_number ORDER BY created_at DESC
				) AS rn
				FROM system_prompt_revisions
				WHERE NOT is_active
			) ranked WHERE rn > $1
		)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("trim prompt revisions: %w", err)
	}
	return tag.RowsAffected(), nil
}
