package processor

import (
	"context"
	"encoding/json"
)

// CallAnalysisEvent is the NATS payload published by the calling layer when
// a call recording has been transcribed.
type CallAnalysisEvent struct {
	CallAnalysisID string  `json:"call_analysis_id"`
	UserID         string  `json:"user_id"`
	PhoneNumber    string  `json:"phone_number"`
	Transcript     string  `json:"transcript"`
	CallDuration   float64 `json:"call_duration"`
}

// HandleCallAnalysisRequested is the NATS handler for
// speaks.call.analysis.requested. It runs both pipelines for the call.
// Event delivery has no response channel, so failures are logged and the
// publisher's retry policy owns redelivery.
func (p *Processor) HandleCallAnalysisRequested(subject string, data []byte) {
	ctx := context.Background()

	var evt CallAnalysisEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse call analysis event", "error", err)
		return
	}

	p.logger.Info("processing call analysis event",
		"call_analysis_id", evt.CallAnalysisID,
		"phone_number", evt.PhoneNumber,
	)

	if _, err := p.CoreMetrics(ctx, CoreMetricsRequest{
		CallAnalysisID: evt.CallAnalysisID,
		PhoneNumber:    evt.PhoneNumber,
		Transcript:     evt.Transcript,
		CallDuration:   evt.CallDuration,
		UserID:         evt.UserID,
	}); err != nil {
		p.logger.Error("core metrics pipeline failed", "call_analysis_id", evt.CallAnalysisID, "error", err)
	}

	if _, err := p.BehaviorAnalysis(ctx, BehaviorRequest{
		CallAnalysisID: evt.CallAnalysisID,
		Transcript:     evt.Transcript,
		UserID:         evt.UserID,
		PhoneNumber:    evt.PhoneNumber,
	}); err != nil {
		p.logger.Error("behavior pipeline failed", "call_analysis_id", evt.CallAnalysisID, "error", err)
	}
}
