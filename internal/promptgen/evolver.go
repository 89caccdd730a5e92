package promptgen

import (
	"fmt"
	"strings"

	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/behavior"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/insight"
)

// BasePrompt seeds the revision chain for a phone number that has never
// been analyzed before.
const BasePrompt = `You are Lingoose, a friendly Hindi-English conversation tutor on a phone call.
Keep the conversation natural and encouraging. Ask open questions, work in target vocabulary, and build on what the learner says.`

const directivesHeader = "\n\n## Adjustments from the last call\n"

// A directive is appended when its metric falls below the shared threshold.
// Thresholds live in the insight package so suggestions and prompt
// directives never disagree about what counts as weak.
var directives = []struct {
	name      string
	triggered func(behavior.Metrics) bool
	text      string
}{
	{
		name:      "question_density",
		triggered: func(m behavior.Metrics) bool { return m.QuestionDensity < insight.MinQuestionDensity },
		text:      "- Ask a question in most of your turns; the last call had too few.",
	},
	{
		name:      "instruction_adherence",
		triggered: func(m behavior.Metrics) bool { return m.InstructionAdherence < insight.MinAdherence },
		text:      "- Follow the session structure: polite greeting, substantial turns, no verbatim repeats.",
	},
	{
		name:      "continuity",
		triggered: func(m behavior.Metrics) bool { return m.ContinuityScore < insight.MinContinuity },
		text:      "- Keep each turn connected to the current topic before moving on.",
	},
	{
		name:      "followup_quality",
		triggered: func(m behavior.Metrics) bool { return m.FollowupQuality < insight.MinFollowupQuality },
		text:      "- Reuse the learner's own words when following up on their replies.",
	},
	{
		name:      "repetition",
		triggered: func(m behavior.Metrics) bool { return m.RepetitionAvoidance < insight.MinRepetitionAvoidance },
		text:      "- Vary your phrasing; avoid repeating the same sentences.",
	},
	{
		name:      "recovery",
		triggered: func(m behavior.Metrics) bool { return m.RecoveryScore < insight.MinRecoveryScore },
		text:      "- After a short or flat learner reply, re-engage with an easy open question.",
	},
	{
		name:      "target_vocab",
		triggered: func(m behavior.Metrics) bool { return m.TargetVocabRate < insight.MinTargetVocabRate },
		text:      "- Weave more target vocabulary words into the conversation.",
	},
}

// Revision is the next prompt text plus the human-readable reason it
// changed. Persistence (active-flag flip, previous-pointer) is the store's
// job; this package only assembles text.
type Revision struct {
	Prompt    string
	Rationale string
}

// Evolve produces the next system prompt from the currently active one.
// currentPrompt may be empty, meaning no revision exists yet. The result is
// always based on the base template plus fresh directives, never on a
// previous revision's directive block, so directives don't pile up across
// revisions.
func Evolve(currentPrompt string, m behavior.Metrics, improvements []string) Revision {
	base := strings.TrimSpace(currentPrompt)
	if base == "" {
		base = BasePrompt
	}
	// Strip any directive block a prior revision appended.
	if i := strings.Index(base, directivesHeader); i >= 0 {
		base = base[:i]
	}

	var triggered []string
	var clauses []string
	for _, d := range directives {
		if d.triggered(m) {
			triggered = append(triggered, d.name)
			clauses = append(clauses, d.text)
		}
	}
	for _, imp := range improvements {
		clauses = append(clauses, "- "+imp)
	}

	prompt := base
	if len(clauses) > 0 {
		prompt += directivesHeader + strings.Join(clauses, "\n")
	}

	rationale := "All behavioral metrics at or above thresholds; prompt carried forward."
	if len(triggered) > 0 {
		rationale = fmt.Sprintf("Adjusted for weak metrics: %s.", strings.Join(triggered, ", "))
	}

	return Revision{Prompt: prompt, Rationale: rationale}
}
