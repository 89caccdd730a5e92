package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/fluency"
)

// CoreMetricsRecord ties one call's linguistic measurements to its owners.
type CoreMetricsRecord struct {
	CallAnalysisID uuid.UUID
	UserID         uuid.UUID
	PhoneNumber    string
	Metrics        fluency.Metrics
}

// WriteCoreMetrics inserts a core language metrics row for a call.
func (s *Store) WriteCoreMetrics(ctx context.Context, rec CoreMetricsRecord) (uuid.UUID, error) {
	m := rec.Metrics
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO core_language_metrics (
			id, call_analysis_id, user_id, phone_number,
			words_per_minute, total_words_spoken, filler_words_per_minute,
			pauses_per_minute, speech_clarity_percent, turn_count,
			unique_vocabulary_count, target_vocabulary_usage_percent,
			self_correction_rate, average_response_delay_seconds,
			fluency_progress_delta, composite_score, advancement_eligible,
			areas_for_improvement, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, now())`,
		id, rec.CallAnalysisID, rec.UserID, rec.PhoneNumber,
		m.WordsPerMinute, m.TotalWordsSpoken, m.FillerWordsPerMinute,
		m.PausesPerMinute, m.SpeechClarityPercent, m.TurnCount,
		m.UniqueVocabularyCount, m.TargetVocabPercent,
		m.SelfCorrectionRate, m.AvgResponseDelaySec,
		m.ProgressDelta, m.CompositeScore, m.AdvancementEligible,
		m.AreasForImprovement,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert core metrics: %w", err)
	}
	return id, nil
}

// PriorComposites returns up to limit composite scores for a phone number,
// most recent first. Used for progress deltas and trend nudges.
func (s *Store) PriorComposites(ctx context.Context, phoneNumber string, limit int) ([]float64, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT composite_score FROM core_language_metrics
		WHERE phone_number = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		phoneNumber, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query prior composites: %w", err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan composite: %w", err)
		}
		scores = append(scores, v)
	}
	return scores, rows.Err()
}
