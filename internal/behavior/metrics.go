package behavior

import (
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/transcript"
)

// Metrics is one analyzed call's behavioral scorecard. All scores are in
// [0,1] except CallbackUsage (a raw count) and UserFluencyDelta ([-1,1]).
// Records are written once per call and never updated.
type Metrics struct {
	InstructionAdherence float64        `json:"instruction_adherence"`
	TargetVocabRate      float64        `json:"target_vocab_prompt_rate"`
	QuestionDensity      float64        `json:"question_density"`
	ContinuityScore      float64        `json:"continuity_score"`
	FollowupQuality      float64        `json:"followup_quality"`
	RepetitionAvoidance  float64        `json:"repetition_avoidance"`
	ToneConsistency      float64        `json:"tone_consistency"`
	RecoveryScore        float64        `json:"recovery_score"`
	CallbackUsage        int            `json:"callback_usage"`
	UserFluencyDelta     float64        `json:"user_fluency_delta"`
	Details              map[string]any `json:"analysis_details"`
}

// Analyze computes all behavioral metrics for a parsed call.
func Analyze(turns transcript.Turns) Metrics {
	return Metrics{
		InstructionAdherence: InstructionAdherence(turns.AI),
		TargetVocabRate:      TargetVocabRate(turns.AI),
		QuestionDensity:      QuestionDensity(turns.AI),
		ContinuityScore:      ContinuityScore(turns.AI),
		FollowupQuality:      FollowupQuality(turns.AI, turns.User),
		RepetitionAvoidance:  RepetitionAvoidance(turns.AI),
		ToneConsistency:      ToneConsistency(turns.AI),
		RecoveryScore:        RecoveryScore(turns.AI, turns.User),
		CallbackUsage:        CallbackUsage(turns.AI, turns.User),
		UserFluencyDelta:     UserFluencyDelta(turns.User),
		Details: map[string]any{
			"ai_turns":   len(turns.AI),
			"user_turns": len(turns.User),
		},
	}
}
