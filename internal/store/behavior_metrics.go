package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/behavior"
)

// BehaviorRecord ties one call's behavioral metrics to its owners.
type BehaviorRecord struct {
	CallAnalysisID uuid.UUID
	UserID         uuid.UUID
	PhoneNumber    string
	Metrics        behavior.Metrics
	Improvements   []string
}

// WriteBehaviorMetrics inserts a behavioral scorecard. One row per call;
// rows are immutable after creation.
func (s *Store) WriteBehaviorMetrics(ctx context.Context, rec BehaviorRecord) (uuid.UUID, error) {
	details, _ := json.Marshal(rec.Metrics.Details)
	improvements, _ := json.Marshal(rec.Improvements)

	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ai_behavior_metrics (
			id, call_analysis_id, user_id, phone_number,
			instruction_adherence, target_vocab_prompt_rate, question_density,
			continuity_score, followup_quality, repetition_avoidance,
			tone_consistency, recovery_score, callback_usage, user_fluency_delta,
			analysis_details, improvement_suggestions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now())`,
		id, rec.CallAnalysisID, rec.UserID, rec.PhoneNumber,
		rec.Metrics.InstructionAdherence, rec.Metrics.TargetVocabRate, rec.Metrics.QuestionDensity,
		rec.Metrics.ContinuityScore, rec.Metrics.FollowupQuality, rec.Metrics.RepetitionAvoidance,
		rec.Metrics.ToneConsistency, rec.Metrics.RecoveryScore, rec.Metrics.CallbackUsage, rec.Metrics.UserFluencyDelta,
		details, improvements,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert behavior metrics: %w", err)
	}
	return id, nil
}
