package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/activity"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/hermes"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/store"
)

// CoreMetricsRequest is the core-metrics pipeline input. Field names match
// the inbound webhook payload.
type CoreMetricsRequest struct {
	CallAnalysisID string  `json:"vapi_call_analysis_id"`
	PhoneNumber    string  `json:"phone_number"`
	Transcript     string  `json:"transcript"`
	CallDuration   float64 `json:"call_duration"`
	UserID         string  `json:"user_id"`
}

// CoreMetricsResult is the successful pipeline output.
type CoreMetricsResult struct {
	CompositeScore      float64  `json:"composite_score"`
	AdvancementEligible bool     `json:"advancement_eligible"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}

// CoreMetrics runs transcript + duration → linguistic metrics → composite
// score → advancement check → adaptive activity plan. The new 7-day plan
// replaces any previously scheduled future activities for the phone number.
func (p *Processor) CoreMetrics(ctx context.Context, req CoreMetricsRequest) (*CoreMetricsResult, error) {
	if req.Transcript == "" {
		return nil, inputErrorf("transcript is required")
	}
	if req.CallAnalysisID == "" {
		return nil, inputErrorf("vapi_call_analysis_id is required")
	}
	callID, err := parseOptionalUUID(req.CallAnalysisID)
	if err != nil {
		return nil, inputErrorf("invalid vapi_call_analysis_id: %v", err)
	}
	userID, err := parseOptionalUUID(req.UserID)
	if err != nil {
		return nil, inputErrorf("invalid user_id: %v", err)
	}

	metrics, prior, err := p.scoreFluency(ctx, req.PhoneNumber, req.Transcript, req.CallDuration)
	if err != nil {
		return nil, err
	}

	p.logger.Info("core metrics computed",
		"call_analysis_id", req.CallAnalysisID,
		"phone_number", req.PhoneNumber,
		"composite_score", metrics.CompositeScore,
		"advancement_eligible", metrics.AdvancementEligible,
		"weaknesses", len(metrics.AreasForImprovement),
	)

	if _, err := p.store.WriteCoreMetrics(ctx, store.CoreMetricsRecord{
		CallAnalysisID: callID,
		UserID:         userID,
		PhoneNumber:    req.PhoneNumber,
		Metrics:        metrics,
	}); err != nil {
		return nil, fmt.Errorf("persist core metrics: %w", err)
	}

	if req.PhoneNumber != "" {
		// Trend analysis only looks at the most recent sessions.
		trend := prior
		if len(trend) > 3 {
			trend = trend[:3]
		}
		plan := activity.GeneratePlan(time.Now(), metrics.AreasForImprovement, metrics.CompositeScore, trend)
		if err := p.store.ReplaceActivityPlan(ctx, req.PhoneNumber, plan); err != nil {
			return nil, fmt.Errorf("replace activity plan: %w", err)
		}
	}

	p.publishCompletion(hermes.SubjectAnalysisCompleted, map[string]any{
		"pipeline":         "core_metrics",
		"call_analysis_id": req.CallAnalysisID,
		"phone_number":     req.PhoneNumber,
		"composite_score":  metrics.CompositeScore,
	})

	return &CoreMetricsResult{
		CompositeScore:      metrics.CompositeScore,
		AdvancementEligible: metrics.AdvancementEligible,
		AreasForImprovement: metrics.AreasForImprovement,
	}, nil
}
