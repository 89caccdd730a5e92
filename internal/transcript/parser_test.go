package transcript

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse_LabeledTurns(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantAI   []string
		wantUser []string
	}{
		{
			name:     "standard labels",
			raw:      "AI: Hello! How are you?\nUser: Fine\nAI: Great, tell me about your day.\nUser: I went to school and studied hindi and english",
			wantAI:   []string{"Hello! How are you?", "Great, tell me about your day."},
			wantUser: []string{"Fine", "I went to school and studied hindi and english"},
		},
		{
			name:     "assistant and human labels",
			raw:      "Assistant: Namaste!\nHuman: namaste",
			wantAI:   []string{"Namaste!"},
			wantUser: []string{"namaste"},
		},
		{
			name:     "mixed case labels",
			raw:      "aSSiStant: one\nUSER: two\nBot: three\nhuman: four",
			wantAI:   []string{"one", "three"},
			wantUser: []string{"two", "four"},
		},
		{
			name:     "blank lines ignored",
			raw:      "AI: hi\n\n\nUser: hello\n",
			wantAI:   []string{"hi"},
			wantUser: []string{"hello"},
		},
		{
			name:     "unknown speaker labels skipped",
			raw:      "AI: hi\nNarrator: the user paused\nUser: hello",
			wantAI:   []string{"hi"},
			wantUser: []string{"hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got.AI, tt.wantAI) {
				t.Errorf("AI turns = %q, want %q", got.AI, tt.wantAI)
			}
			if !reflect.DeepEqual(got.User, tt.wantUser) {
				t.Errorf("user turns = %q, want %q", got.User, tt.wantUser)
			}
		})
	}
}

func TestParse_AlternationFallback(t *testing.T) {
	// 5 colon-free lines split ceil/floor alternating starting with AI.
	got, err := Parse("one\ntwo\nthree\nfour\nfive")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := []string{"one", "three", "five"}; !reflect.DeepEqual(got.AI, want) {
		t.Errorf("AI turns = %q, want %q", got.AI, want)
	}
	if want := []string{"two", "four"}; !reflect.DeepEqual(got.User, want) {
		t.Errorf("user turns = %q, want %q", got.User, want)
	}
}

func TestParse_NoAIContent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty transcript", ""},
		{"whitespace only", "   \n\n  "},
		{"only user turns", "User: hello\nUser: anyone there?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if !errors.Is(err, ErrNoAIUtterances) {
				t.Errorf("Parse() error = %v, want ErrNoAIUtterances", err)
			}
		})
	}
}
