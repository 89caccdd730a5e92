package behavior

import (
	"regexp"
	"strings"
)

// Target vocabulary the tutor is expected to work into a session. Matched
// case-insensitively anywhere in the AI turns.
var targetVocabulary = []string{
	"namaste", "dhanyavad", "shukriya", "khana", "paani",
	"ghar", "dost", "school", "family", "weekend",
	"movie", "food", "travel", "weather", "market",
}

// Question words covering both English and romanized Hindi. Used alongside
// a literal "?" check, since spoken-call transcripts often drop punctuation.
var questionWordRe = regexp.MustCompile(`(?i)\b(what|who|when|where|why|how|kya|kaun|kab|kahan|kyun|kaise)\b`)

var politenessMarkers = []string{
	"please", "thank", "thanks", "welcome", "great", "good", "nice",
	"kripya", "shukriya", "dhanyavad",
}

var casualMarkers = []string{
	"hey", "yeah", "cool", "awesome", "gonna", "wanna", "buddy", "yaar",
}

var formalMarkers = []string{
	"certainly", "however", "furthermore", "regarding", "kindly", "shall", "madam", "sir",
}

// Short replies treated as weak engagement even when over the length cutoff.
var weakReplies = map[string]bool{
	"yes": true, "no": true, "ok": true, "okay": true, "fine": true,
	"sure": true, "yeah": true, "nah": true, "hmm": true,
	"haan": true, "nahi": true, "theek": true, "theek hai": true,
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "you": true, "your": true, "have": true, "what": true,
	"about": true, "from": true, "they": true, "their": true, "would": true,
	"could": true, "will": true, "just": true, "like": true, "very": true,
	"tell": true, "some": true, "been": true, "them": true, "then": true,
}

var wordRe = regexp.MustCompile(`[a-zA-Z']+`)

func words(s string) []string {
	return wordRe.FindAllString(strings.ToLower(s), -1)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range words(s) {
		set[w] = true
	}
	return set
}

// contentWords keeps words longer than 3 characters that are not stop-words.
func contentWords(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range words(s) {
		if len(w) > 3 && !stopWords[w] {
			set[w] = true
		}
	}
	return set
}

func containsAny(s string, markers []string) bool {
	lower := strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func countMarkerHits(s string, markers []string) int {
	lower := strings.ToLower(s)
	n := 0
	for _, m := range markers {
		n += strings.Count(lower, m)
	}
	return n
}
