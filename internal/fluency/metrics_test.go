package fluency

import (
	"math"
	"strings"
	"testing"
)

const tol = 0.001

func TestCompute_WordCounts(t *testing.T) {
	// 12 spoken words over 60 seconds, labels excluded from the count.
	text := "AI: Hello how are you doing today\nUser: I am doing very well thanks"
	m := Compute(text, 60)

	if m.TotalWordsSpoken != 12 {
		t.Errorf("TotalWordsSpoken = %d, want 12", m.TotalWordsSpoken)
	}
	if math.Abs(m.WordsPerMinute-12) > tol {
		t.Errorf("WordsPerMinute = %f, want 12", m.WordsPerMinute)
	}
	if m.TurnCount != 2 {
		t.Errorf("TurnCount = %d, want 2", m.TurnCount)
	}
}

func TestCompute_ZeroDuration(t *testing.T) {
	m := Compute("AI: hello there\nUser: hi", 0)
	if m.WordsPerMinute != 0 || m.FillerWordsPerMinute != 0 || m.PausesPerMinute != 0 {
		t.Errorf("per-minute rates should be 0 at zero duration, got wpm=%f filler=%f pause=%f",
			m.WordsPerMinute, m.FillerWordsPerMinute, m.PausesPerMinute)
	}
}

func TestCompute_FillersAndPauses(t *testing.T) {
	// Two fillers and two ellipsis pauses over 30 seconds.
	text := "User: um I was thinking... that uh we could go... now"
	m := Compute(text, 30)

	if math.Abs(m.FillerWordsPerMinute-4) > tol {
		t.Errorf("FillerWordsPerMinute = %f, want 4", m.FillerWordsPerMinute)
	}
	if math.Abs(m.PausesPerMinute-4) > tol {
		t.Errorf("PausesPerMinute = %f, want 4", m.PausesPerMinute)
	}
}

func TestCompute_Clarity(t *testing.T) {
	t.Run("clean transcript", func(t *testing.T) {
		m := Compute("User: everything here is perfectly clear today", 60)
		if math.Abs(m.SpeechClarityPercent-100) > tol {
			t.Errorf("SpeechClarityPercent = %f, want 100", m.SpeechClarityPercent)
		}
	})

	t.Run("unclear markers reduce clarity", func(t *testing.T) {
		m := Compute("User: I went to [inaudible] yesterday with my friends there", 60)
		if m.SpeechClarityPercent >= 100 {
			t.Errorf("SpeechClarityPercent = %f, want < 100", m.SpeechClarityPercent)
		}
		if m.SpeechClarityPercent < 0 {
			t.Errorf("SpeechClarityPercent = %f, want >= 0", m.SpeechClarityPercent)
		}
	})
}

func TestCompute_SelfCorrections(t *testing.T) {
	// "I I" and "went went" are two restarts over two sentences.
	m := Compute("User: I I went went to school. Then I came home.", 60)
	if math.Abs(m.SelfCorrectionRate-100) > tol {
		t.Errorf("SelfCorrectionRate = %f, want 100", m.SelfCorrectionRate)
	}
}

func TestScore_CompositeBounds(t *testing.T) {
	transcripts := []struct {
		name     string
		text     string
		duration float64
		prior    []float64
	}{
		{"empty", "", 0, nil},
		{"short call", "AI: hi\nUser: hello", 10, nil},
		{"long fluent call", strings.Repeat("User: I practiced speaking hindi with my family over the weekend. ", 40), 300, []float64{80, 75, 70}},
		{"declining history", "User: um... uh... ok", 30, []float64{90, 95, 88, 92, 91, 85}},
	}

	for _, tt := range transcripts {
		t.Run(tt.name, func(t *testing.T) {
			m := Score(Compute(tt.text, tt.duration), tt.prior)
			if m.CompositeScore < 0 || m.CompositeScore > 100 {
				t.Errorf("CompositeScore = %f out of [0,100]", m.CompositeScore)
			}
		})
	}
}

func TestScore_MonotonicInSpeakingSpeed(t *testing.T) {
	base := Compute("User: hello there my friend", 60)

	prev := -1.0
	for wpm := 0.0; wpm <= 150; wpm += 25 {
		m := base
		m.WordsPerMinute = wpm
		got := Score(m, nil).CompositeScore
		if got < prev {
			t.Errorf("composite decreased from %f to %f as wpm rose to %f", prev, got, wpm)
		}
		prev = got
	}

	// Above the normalization ceiling extra speed buys nothing.
	atCeiling := base
	atCeiling.WordsPerMinute = 150
	aboveCeiling := base
	aboveCeiling.WordsPerMinute = 300
	if a, b := Score(atCeiling, nil).CompositeScore, Score(aboveCeiling, nil).CompositeScore; math.Abs(a-b) > tol {
		t.Errorf("composite at 150wpm = %f, at 300wpm = %f; want equal", a, b)
	}
}

func TestScore_MonotonicInFillerRate(t *testing.T) {
	base := Compute("User: hello there my friend", 60)

	prev := 101.0
	for filler := 0.0; filler <= 12; filler += 2 {
		m := base
		m.FillerWordsPerMinute = filler
		got := Score(m, nil).CompositeScore
		if got > prev {
			t.Errorf("composite increased from %f to %f as filler rate rose to %f", prev, got, filler)
		}
		prev = got
	}
}

func TestScore_ProgressDelta(t *testing.T) {
	t.Run("no history means zero delta", func(t *testing.T) {
		m := Score(Compute("User: hello there friend", 60), nil)
		if m.ProgressDelta != 0 {
			t.Errorf("ProgressDelta = %f, want 0", m.ProgressDelta)
		}
	})

	t.Run("only the last five prior scores count", func(t *testing.T) {
		base := Compute("User: hello there friend", 60)
		recentFive := Score(base, []float64{50, 50, 50, 50, 50})
		withStale := Score(base, []float64{50, 50, 50, 50, 50, 999})
		if recentFive.ProgressDelta != withStale.ProgressDelta {
			t.Errorf("stale sixth score changed delta: %f vs %f", recentFive.ProgressDelta, withStale.ProgressDelta)
		}
	})
}

func TestScore_Advancement(t *testing.T) {
	strong := Metrics{
		WordsPerMinute:        150,
		UniqueVocabularyCount: 100,
		TargetVocabPercent:    100,
		SpeechClarityPercent:  100,
		TurnCount:             20,
	}

	tests := []struct {
		name  string
		m     Metrics
		prior []float64
		want  bool
	}{
		{"strong score with established baseline", strong, []float64{75, 70, 72}, true},
		{"strong score but too few sessions", strong, []float64{75, 70}, false},
		{"strong score but weak baseline", strong, []float64{40, 45, 42}, false},
		{"weak score", Metrics{}, []float64{75, 70, 72}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.m, tt.prior).AdvancementEligible
			if got != tt.want {
				t.Errorf("AdvancementEligible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_WeaknessTags(t *testing.T) {
	m := Score(Compute("AI: hi\nUser: um ok", 60), nil)
	if len(m.AreasForImprovement) == 0 {
		t.Fatal("expected weakness tags for a sparse call")
	}
	found := false
	for _, tag := range m.AreasForImprovement {
		if tag == "speaking_speed" {
			found = true
		}
	}
	if !found {
		t.Errorf("tags = %v, want speaking_speed present", m.AreasForImprovement)
	}
}
