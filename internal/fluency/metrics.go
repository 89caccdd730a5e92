package fluency

import (
	"regexp"
	"strings"
)

// Metrics is one call's linguistic measurement record. Everything here is a
// text heuristic standing in for audio timing we don't have: pauses come
// from ellipses, clarity from transcription markers, response delay is a
// fixed placeholder.
type Metrics struct {
	WordsPerMinute        float64  `json:"words_per_minute"`
	TotalWordsSpoken      int      `json:"total_words_spoken"`
	FillerWordsPerMinute  float64  `json:"filler_words_per_minute"`
	PausesPerMinute       float64  `json:"pauses_per_minute"`
	SpeechClarityPercent  float64  `json:"speech_clarity_percent"`
	TurnCount             int      `json:"turn_count"`
	UniqueVocabularyCount int      `json:"unique_vocabulary_count"`
	TargetVocabPercent    float64  `json:"target_vocabulary_usage_percent"`
	SelfCorrectionRate    float64  `json:"self_correction_rate"`
	AvgResponseDelaySec   float64  `json:"average_response_delay_seconds"`
	ProgressDelta         float64  `json:"fluency_progress_delta"`
	CompositeScore        float64  `json:"composite_score"`
	AdvancementEligible   bool     `json:"advancement_eligible"`
	AreasForImprovement   []string `json:"areas_for_improvement"`
}

// No audio timestamps, so response delay is a constant-bounded stand-in.
const placeholderResponseDelay = 2.0

var (
	wordRe       = regexp.MustCompile(`[a-zA-Z']+`)
	fillerRe     = regexp.MustCompile(`(?i)\b(um+|uh+|hmm+|like|you know|actually|basically|literally)\b`)
	pauseRe      = regexp.MustCompile(`\.{3}|\s{4,}`)
	unclearRe    = regexp.MustCompile(`(?i)\[(inaudible|unclear|crosstalk)\]|\(unintelligible\)`)
	sentenceRe   = regexp.MustCompile(`[.?!]+`)
	speakerLabel = regexp.MustCompile(`(?i)^\s*(assistant|ai|bot|user|human):\s*`)
)

var targetVocabulary = []string{
	"namaste", "dhanyavad", "shukriya", "khana", "paani",
	"ghar", "dost", "school", "family", "weekend",
	"movie", "food", "travel", "weather", "market",
}

// Compute derives all raw linguistic measurements from a transcript and the
// call duration in seconds. ProgressDelta, CompositeScore and the
// advancement fields are filled in afterwards by Score, which needs session
// history this function deliberately doesn't see.
func Compute(transcriptText string, durationSeconds float64) Metrics {
	minutes := durationSeconds / 60
	spoken := stripSpeakerLabels(transcriptText)
	allWords := wordRe.FindAllString(strings.ToLower(spoken), -1)

	m := Metrics{
		TotalWordsSpoken:      len(allWords),
		TurnCount:             countTurnTransitions(transcriptText),
		UniqueVocabularyCount: countUnique(allWords),
		TargetVocabPercent:    targetVocabPercent(spoken),
		SelfCorrectionRate:    selfCorrectionRate(allWords, spoken),
		AvgResponseDelaySec:   placeholderResponseDelay,
		SpeechClarityPercent:  clarityPercent(spoken, len(allWords)),
	}

	if minutes > 0 {
		m.WordsPerMinute = float64(len(allWords)) / minutes
		m.FillerWordsPerMinute = float64(len(fillerRe.FindAllString(spoken, -1))) / minutes
		m.PausesPerMinute = float64(len(pauseRe.FindAllString(spoken, -1))) / minutes
	}
	return m
}

func stripSpeakerLabels(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = speakerLabel.ReplaceAllString(line, "")
	}
	return strings.Join(lines, "\n")
}

// countTurnTransitions counts speaker changes across labeled lines.
func countTurnTransitions(text string) int {
	turns := 0
	prev := ""
	for _, line := range strings.Split(text, "\n") {
		match := speakerLabel.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		role := "user"
		switch strings.ToLower(match[1]) {
		case "assistant", "ai", "bot":
			role = "ai"
		}
		if role != prev {
			turns++
			prev = role
		}
	}
	return turns
}

func countUnique(words []string) int {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return len(set)
}

func targetVocabPercent(spoken string) float64 {
	lower := strings.ToLower(spoken)
	hits := 0
	for _, w := range targetVocabulary {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(targetVocabulary)) * 100
}

// selfCorrectionRate approximates restarts as adjacent repeated words,
// reported per hundred sentences.
func selfCorrectionRate(words []string, spoken string) float64 {
	repeats := 0
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			repeats++
		}
	}
	sentences := len(sentenceRe.FindAllString(spoken, -1))
	if sentences == 0 {
		sentences = 1
	}
	return float64(repeats) / float64(sentences) * 100
}

func clarityPercent(spoken string, totalWords int) float64 {
	if totalWords == 0 {
		return 100
	}
	unclear := len(unclearRe.FindAllString(spoken, -1))
	frac := float64(unclear) / float64(totalWords)
	if frac > 1 {
		frac = 1
	}
	return 100 - frac*100
}
