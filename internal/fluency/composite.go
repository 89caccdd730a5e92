package fluency

import "math"

// Normalization ceilings for the composite sub-scores.
const (
	wpmCeiling      = 150.0
	vocabCeiling    = 100.0
	turnCeiling     = 20.0
	advancementMin  = 70.0
	advancementBase = 60.0
)

// Score fills in the history-dependent fields of a Metrics record: progress
// delta against the mean of up to the last 5 prior composite scores, the
// weighted composite itself, advancement eligibility, and weakness tags.
// priorComposites is ordered most recent first.
func Score(m Metrics, priorComposites []float64) Metrics {
	if len(priorComposites) > 5 {
		priorComposites = priorComposites[:5]
	}

	// The delta compares this call's history-neutral composite to the prior
	// mean, then feeds back into the final composite as a small bonus term.
	base := composite(m, 50)
	if len(priorComposites) > 0 {
		m.ProgressDelta = round2(base - mean(priorComposites))
	}

	m.CompositeScore = composite(m, clamp100(50+m.ProgressDelta))
	m.AdvancementEligible = advancementEligible(m.CompositeScore, priorComposites)
	m.AreasForImprovement = weaknessTags(m)
	return m
}

// composite is the weighted linear combination over nine sub-scores, each
// clamped to [0,100] before weighting. Weights sum to 1.0.
func composite(m Metrics, progressSub float64) float64 {
	score := 0.0
	score += 0.15 * clamp100(m.WordsPerMinute/wpmCeiling*100)
	score += 0.10 * clamp100(float64(m.UniqueVocabularyCount)/vocabCeiling*100)
	score += 0.10 * clamp100(m.TargetVocabPercent)
	score += 0.10 * clamp100(100-m.FillerWordsPerMinute*10)
	score += 0.10 * clamp100(100-m.PausesPerMinute*10)
	score += 0.10 * clamp100(float64(m.TurnCount)/turnCeiling*100)
	score += 0.10 * clamp100(m.SpeechClarityPercent)
	score += 0.10 * clamp100(100-m.AvgResponseDelaySec*20)
	score += 0.10 * clamp100(100-m.SelfCorrectionRate*5)
	score += 0.05 * clamp100(progressSub)
	return round2(score)
}

// advancementEligible requires a strong current score plus an established
// baseline: at least 3 prior sessions averaging advancementBase or better.
func advancementEligible(compositeScore float64, prior []float64) bool {
	return compositeScore >= advancementMin &&
		len(prior) >= 3 &&
		mean(prior) >= advancementBase
}

func weaknessTags(m Metrics) []string {
	tags := []string{}
	if m.WordsPerMinute < 80 {
		tags = append(tags, "speaking_speed")
	}
	if m.UniqueVocabularyCount < 40 {
		tags = append(tags, "vocabulary")
	}
	if m.TargetVocabPercent < 30 {
		tags = append(tags, "target_vocabulary")
	}
	if m.FillerWordsPerMinute > 5 {
		tags = append(tags, "filler_words")
	}
	if m.PausesPerMinute > 4 {
		tags = append(tags, "pauses")
	}
	if m.SpeechClarityPercent < 85 {
		tags = append(tags, "clarity")
	}
	if m.TurnCount < 10 {
		tags = append(tags, "engagement")
	}
	if m.SelfCorrectionRate > 10 {
		tags = append(tags, "self_correction")
	}
	return tags
}

func mean(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals))
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
