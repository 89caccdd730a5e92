package behavior

import "strings"

// Every calculator in this file is pure and deterministic. Degenerate
// inputs (no utterances, no pairs, no shingles) return an explicit default
// instead of erroring — no evidence means no penalty.

// InstructionAdherence scores each AI utterance against a fixed checklist:
// politeness marker present, asks a question, non-trivial length (or is the
// opening turn), and not a verbatim repeat of an earlier AI utterance.
// Returns checks passed over checks attempted; 0.85 when there is nothing
// to check.
func InstructionAdherence(ai []string) float64 {
	if len(ai) == 0 {
		return 0.85
	}

	passed, attempted := 0, 0
	seen := make(map[string]bool)
	for i, utt := range ai {
		attempted += 4

		if containsAny(utt, politenessMarkers) {
			passed++
		}
		if isQuestion(utt) {
			passed++
		}
		if len(utt) >= 20 || i == 0 {
			passed++
		}
		if !seen[utt] {
			passed++
		}
		seen[utt] = true
	}
	return float64(passed) / float64(attempted)
}

// TargetVocabRate is the fraction of the target-word list that shows up at
// least once across the AI turns, case-insensitively.
func TargetVocabRate(ai []string) float64 {
	joined := strings.ToLower(strings.Join(ai, " "))
	hits := 0
	for _, w := range targetVocabulary {
		if strings.Contains(joined, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(targetVocabulary))
}

// QuestionDensity is the fraction of AI utterances that ask a question.
func QuestionDensity(ai []string) float64 {
	if len(ai) == 0 {
		return 0
	}
	n := 0
	for _, utt := range ai {
		if isQuestion(utt) {
			n++
		}
	}
	return float64(n) / float64(len(ai))
}

func isQuestion(utt string) bool {
	return strings.Contains(utt, "?") || questionWordRe.MatchString(utt)
}

// ContinuityScore averages the Jaccard similarity of content-word sets over
// each adjacent pair of AI utterances. A single utterance can't break
// continuity, so fewer than 2 turns scores 1.0.
func ContinuityScore(ai []string) float64 {
	if len(ai) < 2 {
		return 1.0
	}
	total := 0.0
	for i := 0; i < len(ai)-1; i++ {
		total += jaccard(contentWords(ai[i]), contentWords(ai[i+1]))
	}
	return clamp01(total / float64(len(ai)-1))
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// FollowupQuality checks, for each index-aligned (user[i], ai[i]) pair,
// whether the AI turn picks up any word the user just used.
func FollowupQuality(ai, user []string) float64 {
	pairs := min(len(ai), len(user))
	if pairs == 0 {
		return 0
	}
	hits := 0
	for i := 0; i < pairs; i++ {
		userSet := wordSet(user[i])
		for _, w := range words(ai[i]) {
			if userSet[w] {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(pairs)
}

// RepetitionAvoidance builds 5-word shingles over the concatenated AI turns
// and returns 1 minus the duplicate fraction. Fewer than 5 total words can't
// repeat a shingle, so that scores 1.0.
func RepetitionAvoidance(ai []string) float64 {
	const shingleSize = 5
	all := words(strings.Join(ai, " "))
	if len(all) < shingleSize {
		return 1.0
	}

	seen := make(map[string]bool)
	total, dupes := 0, 0
	for i := 0; i+shingleSize <= len(all); i++ {
		sh := strings.Join(all[i:i+shingleSize], " ")
		total++
		if seen[sh] {
			dupes++
		}
		seen[sh] = true
	}
	return 1.0 - float64(dupes)/float64(total)
}

// ToneConsistency measures how much the AI sticks to one register. Counts
// casual vs formal marker hits; the majority share is the score. Neither
// marker type present reads as neutral, 0.90.
func ToneConsistency(ai []string) float64 {
	casual, formal := 0, 0
	for _, utt := range ai {
		casual += countMarkerHits(utt, casualMarkers)
		formal += countMarkerHits(utt, formalMarkers)
	}
	if casual+formal == 0 {
		return 0.90
	}
	return float64(max(casual, formal)) / float64(casual+formal)
}

// CallbackUsage counts AI utterances that reference earlier user turns,
// either explicitly ("you said", "you mentioned") or by reusing a content
// word the user introduced before that point of the call.
func CallbackUsage(ai, user []string) int {
	count := 0
	prior := make(map[string]bool)
	for i, utt := range ai {
		// AI speaks first: user turns before ai[i] are user[0..i-1].
		if i > 0 && i-1 < len(user) {
			for w := range contentWords(user[i-1]) {
				prior[w] = true
			}
		}

		if containsAny(utt, []string{"you said", "you mentioned"}) {
			count++
			continue
		}
		for w := range contentWords(utt) {
			if prior[w] {
				count++
				break
			}
		}
	}
	return count
}

// RecoveryScore looks at weak user replies (under 10 characters, or an
// exact short-reply match) and asks whether the next AI turn re-engaged
// with a question. No weak replies means no chance to fail: 1.0.
func RecoveryScore(ai, user []string) float64 {
	opportunities, recovered := 0, 0
	for i, utt := range user {
		if !isWeakReply(utt) {
			continue
		}
		// The AI turn after user[i] is ai[i+1] under AI-first ordering.
		if i+1 >= len(ai) {
			continue
		}
		opportunities++
		if strings.Contains(ai[i+1], "?") {
			recovered++
		}
	}
	if opportunities == 0 {
		return 1.0
	}
	return float64(recovered) / float64(opportunities)
}

func isWeakReply(utt string) bool {
	return len(utt) < 10 || weakReplies[strings.ToLower(strings.TrimSpace(utt))]
}

// UserFluencyDelta compares the user's first half of the call against the
// second: growth in unique vocabulary and in mean utterance length, each
// normalized against the first half, averaged and clamped to [-1,1].
// Either half empty means no trend to measure: 0.
func UserFluencyDelta(user []string) float64 {
	mid := len(user) / 2
	first, second := user[:mid], user[mid:]
	if len(first) == 0 || len(second) == 0 {
		return 0
	}

	vocabGrowth := growthRatio(float64(uniqueWords(first)), float64(uniqueWords(second)))
	lengthGrowth := growthRatio(meanLength(first), meanLength(second))
	return clampSigned((vocabGrowth + lengthGrowth) / 2)
}

func uniqueWords(utts []string) int {
	set := make(map[string]bool)
	for _, u := range utts {
		for _, w := range words(u) {
			set[w] = true
		}
	}
	return len(set)
}

func meanLength(utts []string) float64 {
	total := 0
	for _, u := range utts {
		total += len(u)
	}
	return float64(total) / float64(len(utts))
}

func growthRatio(before, after float64) float64 {
	if before < 1 {
		before = 1
	}
	return clampSigned((after - before) / before)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampSigned(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
