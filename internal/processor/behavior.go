package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/behavior"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/hermes"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/promptgen"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/store"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/transcript"
)

// BehaviorRequest is the behavior-analysis pipeline input.
type BehaviorRequest struct {
	CallAnalysisID string `json:"callAnalysisId"`
	Transcript     string `json:"transcript"`
	UserID         string `json:"userId"`
	PhoneNumber    string `json:"phoneNumber"`
}

// BehaviorResult is the successful pipeline output.
type BehaviorResult struct {
	Metrics      behavior.Metrics `json:"metrics"`
	Improvements []string         `json:"improvements"`
}

// BehaviorAnalysis runs transcript → behavioral metrics → suggestions →
// persistence → prompt evolution. Input problems return InputError and
// write nothing; LLM failures never abort (the suggester falls back);
// persistence failures abort so no partial record is left behind.
func (p *Processor) BehaviorAnalysis(ctx context.Context, req BehaviorRequest) (*BehaviorResult, error) {
	if req.Transcript == "" {
		return nil, inputErrorf("transcript is required")
	}
	if req.CallAnalysisID == "" {
		return nil, inputErrorf("callAnalysisId is required")
	}
	callID, err := parseOptionalUUID(req.CallAnalysisID)
	if err != nil {
		return nil, inputErrorf("invalid callAnalysisId: %v", err)
	}
	userID, err := parseOptionalUUID(req.UserID)
	if err != nil {
		return nil, inputErrorf("invalid userId: %v", err)
	}

	turns, err := transcript.Parse(req.Transcript)
	if errors.Is(err, transcript.ErrNoAIUtterances) {
		return nil, inputErrorf("no AI messages found in transcript")
	}
	if err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	metrics := behavior.Analyze(turns)
	improvements := p.insights.Generate(ctx, metrics, req.Transcript)

	p.logger.Info("behavior analysis computed",
		"call_analysis_id", req.CallAnalysisID,
		"phone_number", req.PhoneNumber,
		"question_density", metrics.QuestionDensity,
		"suggestions", len(improvements),
	)

	if _, err := p.store.WriteBehaviorMetrics(ctx, store.BehaviorRecord{
		CallAnalysisID: callID,
		UserID:         userID,
		PhoneNumber:    req.PhoneNumber,
		Metrics:        metrics,
		Improvements:   improvements,
	}); err != nil {
		return nil, fmt.Errorf("persist behavior metrics: %w", err)
	}

	if req.PhoneNumber != "" {
		_, err := p.store.ReviseSystemPrompt(ctx, req.PhoneNumber, metrics,
			func(current string) (string, string) {
				rev := promptgen.Evolve(current, metrics, improvements)
				return rev.Prompt, rev.Rationale
			})
		if err != nil {
			return nil, fmt.Errorf("revise system prompt: %w", err)
		}
	}

	p.publishCompletion(hermes.SubjectAnalysisCompleted, map[string]any{
		"pipeline":         "behavior",
		"call_analysis_id": req.CallAnalysisID,
		"phone_number":     req.PhoneNumber,
	})

	return &BehaviorResult{Metrics: metrics, Improvements: improvements}, nil
}

func (p *Processor) publishCompletion(subject string, payload map[string]any) {
	if p.events == nil {
		return
	}
	if err := p.events.Publish(subject, payload); err != nil {
		p.logger.Warn("failed to publish completion event", "subject", subject, "error", err)
	}
}
