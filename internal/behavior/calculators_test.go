package behavior

import (
	"math"
	"strings"
	"testing"

	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/transcript"
)

const tol = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tol
}

// The worked four-turn call used throughout: two AI turns, two user turns,
// first user reply weak, second AI turn not a question.
var sampleTurns = transcript.Turns{
	AI:   []string{"Hello! How are you?", "Great, tell me about your day."},
	User: []string{"Fine", "I went to school and studied hindi and english"},
}

func TestQuestionDensity(t *testing.T) {
	tests := []struct {
		name string
		ai   []string
		want float64
	}{
		{"half questions", sampleTurns.AI, 0.5},
		{"question mark only", []string{"Ready?"}, 1.0},
		{"hindi question word without punctuation", []string{"aap kaise hain"}, 1.0},
		{"no questions", []string{"I see.", "Good."}, 0.0},
		{"no utterances", nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuestionDensity(tt.ai); !almostEqual(got, tt.want) {
				t.Errorf("QuestionDensity() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRecoveryScore(t *testing.T) {
	tests := []struct {
		name string
		ai   []string
		user []string
		want float64
	}{
		{
			// "Fine" is weak and the following AI turn asks no question.
			"weak reply not recovered", sampleTurns.AI, sampleTurns.User, 0.0,
		},
		{
			"weak reply recovered with question",
			[]string{"How are you?", "What did you do today?"},
			[]string{"Fine", "I studied"},
			1.0,
		},
		{
			"no weak replies means nothing to recover from",
			[]string{"How are you?"},
			[]string{"I am doing wonderfully today, thank you for asking"},
			1.0,
		},
		{
			"weak final reply with no following AI turn is not an opportunity",
			[]string{"How are you?"},
			[]string{"Fine"},
			1.0,
		},
		{
			"one of two weak replies recovered",
			[]string{"Hi!", "What happened next?", "I see."},
			[]string{"ok", "ok"},
			0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecoveryScore(tt.ai, tt.user); !almostEqual(got, tt.want) {
				t.Errorf("RecoveryScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestInstructionAdherence(t *testing.T) {
	t.Run("no utterances defaults to 0.85", func(t *testing.T) {
		if got := InstructionAdherence(nil); !almostEqual(got, 0.85) {
			t.Errorf("InstructionAdherence(nil) = %f, want 0.85", got)
		}
	})

	t.Run("worked example scores 6 of 8 checks", func(t *testing.T) {
		if got := InstructionAdherence(sampleTurns.AI); !almostEqual(got, 0.75) {
			t.Errorf("InstructionAdherence() = %f, want 0.75", got)
		}
	})

	t.Run("verbatim repeats are penalized", func(t *testing.T) {
		fresh := InstructionAdherence([]string{
			"Thanks! What would you like to practice today?",
			"Great choice! How was your weekend, please share?",
		})
		repeated := InstructionAdherence([]string{
			"Thanks! What would you like to practice today?",
			"Thanks! What would you like to practice today?",
		})
		if repeated >= fresh {
			t.Errorf("repeated turns scored %f, fresh turns %f; want repeated < fresh", repeated, fresh)
		}
	})
}

func TestContinuityScore(t *testing.T) {
	tests := []struct {
		name string
		ai   []string
		want float64
	}{
		{"fewer than two utterances", []string{"Hello there"}, 1.0},
		{"no shared content words", sampleTurns.AI, 0.0},
		{
			"identical content words",
			[]string{"Describe your favorite festival food", "Describe your favorite festival food"},
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContinuityScore(tt.ai); !almostEqual(got, tt.want) {
				t.Errorf("ContinuityScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestFollowupQuality(t *testing.T) {
	tests := []struct {
		name string
		ai   []string
		user []string
		want float64
	}{
		{"no lexical pickup", sampleTurns.AI, sampleTurns.User, 0.0},
		{
			"ai echoes the user's word",
			[]string{"School sounds fun! What subject?"},
			[]string{"I went to school"},
			1.0,
		},
		{"no pairs", []string{"Hello"}, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FollowupQuality(tt.ai, tt.user); !almostEqual(got, tt.want) {
				t.Errorf("FollowupQuality() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRepetitionAvoidance(t *testing.T) {
	tests := []struct {
		name string
		ai   []string
		want float64
	}{
		{"under five words", []string{"Hi there friend"}, 1.0},
		{"all unique shingles", sampleTurns.AI, 1.0},
		{
			// Ten words as two identical five-word runs: 6 shingles, 1 duplicate.
			"repeated five word run",
			[]string{"tell me about your day tell me about your day"},
			1.0 - 1.0/6.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepetitionAvoidance(tt.ai); !almostEqual(got, tt.want) {
				t.Errorf("RepetitionAvoidance() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestToneConsistency(t *testing.T) {
	tests := []struct {
		name string
		ai   []string
		want float64
	}{
		{"no markers reads neutral", sampleTurns.AI, 0.90},
		{"all casual", []string{"hey yeah cool"}, 1.0},
		{"three casual one formal", []string{"hey yeah cool", "kindly proceed"}, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToneConsistency(tt.ai); !almostEqual(got, tt.want) {
				t.Errorf("ToneConsistency() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCallbackUsage(t *testing.T) {
	tests := []struct {
		name string
		ai   []string
		user []string
		want int
	}{
		{"no callbacks in worked example", sampleTurns.AI, sampleTurns.User, 0},
		{
			"explicit backreference",
			[]string{"Hi!", "You said you like cricket, tell me more"},
			[]string{"I like cricket"},
			1,
		},
		{
			"content word reuse",
			[]string{"What do you enjoy?", "Cricket is a wonderful game!"},
			[]string{"I enjoy cricket"},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CallbackUsage(tt.ai, tt.user); got != tt.want {
				t.Errorf("CallbackUsage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUserFluencyDelta(t *testing.T) {
	tests := []struct {
		name string
		user []string
		want float64
	}{
		{"single utterance has no halves", []string{"Fine"}, 0},
		{"empty list", nil, 0},
		{"large growth clamps to 1", sampleTurns.User, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserFluencyDelta(tt.user)
			if !almostEqual(got, tt.want) {
				t.Errorf("UserFluencyDelta() = %f, want %f", got, tt.want)
			}
		})
	}

	t.Run("shrinking replies go negative", func(t *testing.T) {
		got := UserFluencyDelta([]string{
			"I visited my grandmother in Delhi last weekend and we cooked",
			"yes",
		})
		if got >= 0 || got < -1 {
			t.Errorf("UserFluencyDelta() = %f, want in [-1,0)", got)
		}
	})
}

func TestTargetVocabRate(t *testing.T) {
	ai := []string{"Let's practice! Namaste means hello", "What khana do you like?"}
	want := 2.0 / float64(len(targetVocabulary))
	if got := TargetVocabRate(ai); !almostEqual(got, want) {
		t.Errorf("TargetVocabRate() = %f, want %f", got, want)
	}
}

func TestAnalyze_AllScoresBounded(t *testing.T) {
	transcripts := []string{
		"AI: Hello! How are you?\nUser: Fine\nAI: Great, tell me about your day.\nUser: I went to school and studied hindi and english",
		"Assistant: Namaste! Kaise ho?\nHuman: theek\nAssistant: What did you eat today? You said you like khana!\nHuman: I ate rice and dal",
		strings.Repeat("AI: tell me more please?\nUser: ok\n", 10),
	}

	for _, raw := range transcripts {
		turns, err := transcript.Parse(raw)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		m := Analyze(turns)

		unit := map[string]float64{
			"instruction_adherence": m.InstructionAdherence,
			"target_vocab_rate":     m.TargetVocabRate,
			"question_density":      m.QuestionDensity,
			"continuity_score":      m.ContinuityScore,
			"followup_quality":      m.FollowupQuality,
			"repetition_avoidance":  m.RepetitionAvoidance,
			"tone_consistency":      m.ToneConsistency,
			"recovery_score":        m.RecoveryScore,
		}
		for name, v := range unit {
			if v < 0 || v > 1 {
				t.Errorf("%s = %f out of [0,1]", name, v)
			}
		}
		if m.UserFluencyDelta < -1 || m.UserFluencyDelta > 1 {
			t.Errorf("user_fluency_delta = %f out of [-1,1]", m.UserFluencyDelta)
		}
		if m.CallbackUsage < 0 {
			t.Errorf("callback_usage = %d, want >= 0", m.CallbackUsage)
		}
	}
}
