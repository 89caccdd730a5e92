package store

import (
	"context"
	"fmt"
)

// Migrate creates the analysis tables if they don't exist. Statements are
// idempotent so startup can always run them.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS ai_behavior_metrics (
		id UUID PRIMARY KEY,
		call_analysis_id UUID NOT NULL,
		user_id UUID NOT NULL,
		phone_number TEXT NOT NULL,
		instruction_adherence DOUBLE PRECISION NOT NULL,
		target_vocab_prompt_rate DOUBLE PRECISION NOT NULL,
		question_density DOUBLE PRECISION NOT NULL,
		continuity_score DOUBLE PRECISION NOT NULL,
		followup_quality DOUBLE PRECISION NOT NULL,
		repetition_avoidance DOUBLE PRECISION NOT NULL,
		tone_consistency DOUBLE PRECISION NOT NULL,
		recovery_score DOUBLE PRECISION NOT NULL,
		callback_usage INTEGER NOT NULL,
		user_fluency_delta DOUBLE PRECISION NOT NULL,
		analysis_details JSONB,
		improvement_suggestions JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_behavior_metrics_phone ON ai_behavior_metrics (phone_number)`,
	`CREATE TABLE IF NOT EXISTS system_prompt_revisions (
		id UUID PRIMARY KEY,
		phone_number TEXT NOT NULL,
		current_prompt TEXT NOT NULL,
		previous_prompt TEXT,
		trigger_metrics JSONB,
		improvement_rationale TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_prompt_active_per_phone
		ON system_prompt_revisions (phone_number) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS core_language_metrics (
		id UUID PRIMARY KEY,
		call_analysis_id UUID NOT NULL,
		user_id UUID NOT NULL,
		phone_number TEXT NOT NULL,
		words_per_minute DOUBLE PRECISION NOT NULL,
		total_words_spoken INTEGER NOT NULL,
		filler_words_per_minute DOUBLE PRECISION NOT NULL,
		pauses_per_minute DOUBLE PRECISION NOT NULL,
		speech_clarity_percent DOUBLE PRECISION NOT NULL,
		turn_count INTEGER NOT NULL,
		unique_vocabulary_count INTEGER NOT NULL,
		target_vocabulary_usage_percent DOUBLE PRECISION NOT NULL,
		self_correction_rate DOUBLE PRECISION NOT NULL,
		average_response_delay_seconds DOUBLE PRECISION NOT NULL,
		fluency_progress_delta DOUBLE PRECISION NOT NULL,
		composite_score DOUBLE PRECISION NOT NULL,
		advancement_eligible BOOLEAN NOT NULL,
		areas_for_improvement TEXT[] NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_core_metrics_phone_created
		ON core_language_metrics (phone_number, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS adaptive_activities (
		id UUID PRIMARY KEY,
		phone_number TEXT NOT NULL,
		scheduled_date DATE NOT NULL,
		activity_type TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		target_metrics TEXT[] NOT NULL,
		difficulty_level INTEGER NOT NULL,
		estimated_duration_minutes INTEGER NOT NULL,
		focus_areas TEXT[] NOT NULL,
		target_vocabulary TEXT[] NOT NULL,
		conversation_prompts TEXT[] NOT NULL,
		practice_scenarios TEXT[] NOT NULL,
		weakness_areas TEXT[] NOT NULL,
		strength_areas TEXT[] NOT NULL,
		adaptation_reason TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_phone_date
		ON adaptive_activities (phone_number, scheduled_date)`,
}

func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
