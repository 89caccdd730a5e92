package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/anthropic"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/behavior"
)

// Metric thresholds below which a behavior needs work. Shared with the
// prompt evolver so suggestions and prompt directives stay in agreement.
const (
	MinQuestionDensity     = 0.4
	MinContinuity          = 0.5
	MinFollowupQuality     = 0.5
	MinRepetitionAvoidance = 0.7
	MinRecoveryScore       = 0.6
	MinAdherence           = 0.7
	MinTargetVocabRate     = 0.3
)

const maxSuggestions = 5

const systemPrompt = `You are a conversation coach reviewing an AI language tutor's call with a learner.
Given behavioral metrics and a transcript excerpt, suggest concrete improvements for the tutor's next call.
Respond with ONLY a JSON array of 3 to 5 short suggestion strings. No prose, no markdown.`

// Completer is the text-generation dependency. *anthropic.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int) (string, error)
}

type Generator struct {
	llm    Completer
	logger *slog.Logger
}

func New(llm Completer, logger *slog.Logger) *Generator {
	return &Generator{llm: llm, logger: logger}
}

// Generate returns improvement suggestions for an analyzed call. The LLM is
// the primary path; any failure there — missing credentials, network error,
// timeout, unparseable output — routes to the rule-based fallback, so the
// result is never empty and the pipeline never blocks on the external API.
func (g *Generator) Generate(ctx context.Context, m behavior.Metrics, transcriptText string) []string {
	if g.llm != nil {
		if suggestions, err := g.fromLLM(ctx, m, transcriptText); err == nil {
			return suggestions
		} else {
			g.logger.Warn("llm suggestions unavailable, using rule-based fallback", "error", err)
		}
	}
	return Fallback(m)
}

func (g *Generator) fromLLM(ctx context.Context, m behavior.Metrics, transcriptText string) ([]string, error) {
	metricsJSON, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metrics: %w", err)
	}

	prompt := fmt.Sprintf("Behavioral metrics:\n%s\n\nTranscript excerpt:\n%s",
		metricsJSON, excerpt(transcriptText, 2000))

	raw, err := g.llm.Complete(ctx, systemPrompt, []anthropic.Message{
		{Role: "user", Content: prompt},
	}, 1024)
	if err != nil {
		return nil, fmt.Errorf("llm call: %w", err)
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		g.logger.Warn("unparseable llm suggestions", "raw", excerpt(raw, 200))
		return nil, err
	}
	return suggestions, nil
}

// parseSuggestions expects a JSON array of strings, tolerating markdown
// code fences around it.
func parseSuggestions(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}

	var out []string
	for _, s := range parsed {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no usable suggestions in response")
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out, nil
}

// Fallback maps each below-threshold metric to a fixed suggestion. When
// everything clears its bar it returns a single affirming message, so the
// result is always non-empty.
func Fallback(m behavior.Metrics) []string {
	var out []string
	if m.QuestionDensity < MinQuestionDensity {
		out = append(out, "Ask more questions to keep the learner talking — aim for a question in most turns.")
	}
	if m.InstructionAdherence < MinAdherence {
		out = append(out, "Stay closer to the session structure: greet politely, prompt with questions, and keep turns substantial.")
	}
	if m.ContinuityScore < MinContinuity {
		out = append(out, "Connect each turn to the previous topic instead of jumping to unrelated subjects.")
	}
	if m.FollowupQuality < MinFollowupQuality {
		out = append(out, "Build follow-ups from the learner's own words to show you are listening.")
	}
	if m.RepetitionAvoidance < MinRepetitionAvoidance {
		out = append(out, "Vary your phrasing — several passages repeat the same wording.")
	}
	if m.RecoveryScore < MinRecoveryScore {
		out = append(out, "When the learner gives a short reply, re-engage with an easy open question.")
	}
	if m.TargetVocabRate < MinTargetVocabRate {
		out = append(out, "Work more target vocabulary into the conversation naturally.")
	}

	if len(out) == 0 {
		return []string{"Strong session — keep the current conversational approach."}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
