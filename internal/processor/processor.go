package processor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/activity"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/behavior"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/fluency"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/store"
)

// Persistence is the slice of the store the pipelines need. *store.Store
// satisfies it; tests substitute an in-memory fake.
type Persistence interface {
	WriteBehaviorMetrics(ctx context.Context, rec store.BehaviorRecord) (uuid.UUID, error)
	ReviseSystemPrompt(ctx context.Context, phoneNumber string, trigger behavior.Metrics,
		evolve func(currentPrompt string) (newPrompt, rationale string)) (uuid.UUID, error)
	WriteCoreMetrics(ctx context.Context, rec store.CoreMetricsRecord) (uuid.UUID, error)
	PriorComposites(ctx context.Context, phoneNumber string, limit int) ([]float64, error)
	ReplaceActivityPlan(ctx context.Context, phoneNumber string, plan []activity.Activity) error
	ForwardPlan(ctx context.Context, phoneNumber string) ([]activity.Activity, error)
}

// Suggester produces improvement suggestions for an analyzed call.
// *insight.Generator satisfies it.
type Suggester interface {
	Generate(ctx context.Context, m behavior.Metrics, transcriptText string) []string
}

// Publisher emits completion events. *hermes.Client satisfies it; nil means
// no event bus is configured.
type Publisher interface {
	Publish(subject string, data any) error
}

// Processor orchestrates the two analysis pipelines. Each pipeline run is a
// stateless request/response unit: calculators are pure, and only the LLM
// call and the store writes block.
type Processor struct {
	store    Persistence
	insights Suggester
	events   Publisher
	logger   *slog.Logger
}

func New(s Persistence, insights Suggester, events Publisher, logger *slog.Logger) *Processor {
	return &Processor{
		store:    s,
		insights: insights,
		events:   events,
		logger:   logger,
	}
}

// InputError marks caller mistakes — missing fields, unusable transcripts.
// The API layer maps it to 400; everything else is a 500.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

func inputErrorf(format string, args ...any) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

func parseOptionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

// FluencyScore exposes the fluency scorer for the event handlers; split out
// so history fetch and scoring stay in one place.
func (p *Processor) scoreFluency(ctx context.Context, phoneNumber, transcriptText string, duration float64) (fluency.Metrics, []float64, error) {
	m := fluency.Compute(transcriptText, duration)
	prior, err := p.store.PriorComposites(ctx, phoneNumber, 5)
	if err != nil {
		return fluency.Metrics{}, nil, fmt.Errorf("fetch prior composites: %w", err)
	}
	return fluency.Score(m, prior), prior, nil
}
