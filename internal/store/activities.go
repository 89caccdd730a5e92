package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/activity"
)

// ReplaceActivityPlan swaps a phone number's forward practice plan for a new
// batch. The delete of existing future rows and the insert of the new batch
// share one transaction, so a learner always has exactly one live plan and
// concurrent analyses can't interleave halves of two plans.
func (s *Store) ReplaceActivityPlan(ctx context.Context, phoneNumber string, plan []activity.Activity) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM adaptive_activities
		WHERE phone_number = $1 AND scheduled_date >= CURRENT_DATE`,
		phoneNumber,
	); err != nil {
		return fmt.Errorf("delete stale plan: %w", err)
	}

	for _, a := range plan {
		if _, err := tx.Exec(ctx, `
			INSERT INTO adaptive_activities (
				id, phone_number, scheduled_date, activity_type, title,
				description, target_metrics, difficulty_level,
				estimated_duration_minutes, focus_areas, target_vocabulary,
				conversation_prompts, practice_scenarios, weakness_areas,
				strength_areas, adaptation_reason, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now())`,
			uuid.New(), phoneNumber, a.ScheduledDate, a.ActivityType, a.Title,
			a.Description, a.TargetMetrics, a.DifficultyLevel,
			a.EstimatedDurationMinutes, a.FocusAreas, a.TargetVocabulary,
			a.ConversationPrompts, a.PracticeScenarios, a.WeaknessAreas,
			a.StrengthAreas, a.AdaptationReason,
		); err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ForwardPlan returns a phone number's scheduled activities from today
// onward, in date order.
func (s *Store) ForwardPlan(ctx context.Context, phoneNumber string) ([]activity.Activity, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT scheduled_date, activity_type, title, description,
			target_metrics, difficulty_level, estimated_duration_minutes,
			focus_areas, target_vocabulary, conversation_prompts,
			practice_scenarios, weakness_areas, strength_areas, adaptation_reason
		FROM adaptive_activities
		WHERE phone_number = $1 AND scheduled_date >= CURRENT_DATE
		ORDER BY scheduled_date`,
		phoneNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("query forward plan: %w", err)
	}
	defer rows.Close()

	var plan []activity.Activity
	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(
			&a.ScheduledDate, &a.ActivityType, &a.Title, &a.Description,
			&a.TargetMetrics, &a.DifficultyLevel, &a.EstimatedDurationMinutes,
			&a.FocusAreas, &a.TargetVocabulary, &a.ConversationPrompts,
			&a.PracticeScenarios, &a.WeaknessAreas, &a.StrengthAreas, &a.AdaptationReason,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		plan = append(plan, a)
	}
	return plan, rows.Err()
}

// PurgeExpiredActivities removes activities whose scheduled date is more
// than retainDays in the past. Maintenance only; future plans are untouched.
func (s *Store) PurgeExpiredActivities(ctx context.Context, retainDays int) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM adaptive_activities
		WHERE scheduled_date < CURRENT_DATE - $1::int`,
		retainDays,
	)
	if err != nil {
		return 0, fmt.Errorf("purge expired activities: %w", err)
	}
	return tag.RowsAffected(), nil
}
