package transcript

import (
	"errors"
	"strings"
)

// ErrNoAIUtterances is returned when parsing produces no AI turns.
// Callers should treat this as "no AI content to analyze" and abort.
var ErrNoAIUtterances = errors.New("no AI utterances found in transcript")

// Turns holds the parsed transcript split by speaker role, in order.
type Turns struct {
	AI   []string
	User []string
}

var aiPrefixes = []string{"assistant:", "ai:", "bot:"}
var userPrefixes = []string{"user:", "human:"}

// Parse splits a raw transcript into AI and user utterance lists.
//
// Each non-blank line is matched case-insensitively against known speaker
// labels. Lines with no colon at all fall back to strict alternation
// starting with AI. Alternation is a documented heuristic: it is wrong
// whenever turns are not strictly alternating, and we keep it that way
// rather than guessing intent.
func Parse(raw string) (Turns, error) {
	var t Turns
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if text, ok := stripPrefix(line, lower, aiPrefixes); ok {
			t.AI = append(t.AI, text)
			continue
		}
		if text, ok := stripPrefix(line, lower, userPrefixes); ok {
			t.User = append(t.User, text)
			continue
		}
		if strings.Contains(line, ":") {
			// Labeled with a speaker we don't recognise — can't place it.
			continue
		}

		// Unlabeled line: alternate, AI first.
		if len(t.AI) == len(t.User) {
			t.AI = append(t.AI, line)
		} else {
			t.User = append(t.User, line)
		}
	}

	if len(t.AI) == 0 {
		return t, ErrNoAIUtterances
	}
	return t, nil
}

func stripPrefix(line, lower string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(line[len(p):]), true
		}
	}
	return "", false
}
