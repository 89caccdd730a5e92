package activity

// template is one entry of the practice library. Slices are copied on use
// so generated activities can be modified without aliasing the library.
type template struct {
	ActivityType        string
	Title               string
	Description         string
	FocusAreas          []string
	TargetVocabulary    []string
	ConversationPrompts []string
	PracticeScenarios   []string
}

// templates keyed by the weakness tags produced by the fluency scorer.
var templates = map[string]template{
	"speaking_speed": {
		ActivityType:        "paced_reading",
		Title:               "Pace Builder",
		Description:         "Read short passages aloud at a steady pace, then retell them in your own words.",
		FocusAreas:          []string{"speaking_speed", "confidence"},
		TargetVocabulary:    []string{"jaldi", "dheere", "samay"},
		ConversationPrompts: []string{"Describe your morning routine without stopping", "Retell your favorite movie scene"},
		PracticeScenarios:   []string{"Ordering food when the waiter is in a hurry"},
	},
	"vocabulary": {
		ActivityType:        "vocab_expansion",
		Title:               "Word Stretch",
		Description:         "Practice describing everyday objects using new words instead of familiar ones.",
		FocusAreas:          []string{"vocabulary", "description"},
		TargetVocabulary:    []string{"ghar", "bazaar", "mausam", "safar"},
		ConversationPrompts: []string{"Describe your street using five new words", "What did you see at the market?"},
		PracticeScenarios:   []string{"Explaining a household object to someone who has never seen it"},
	},
	"target_vocabulary": {
		ActivityType:        "vocab_drill",
		Title:               "Target Word Workout",
		Description:         "Work this week's target words into natural sentences about your own life.",
		FocusAreas:          []string{"target_vocabulary"},
		TargetVocabulary:    []string{"namaste", "dhanyavad", "khana", "paani", "dost"},
		ConversationPrompts: []string{"Greet someone and ask about their meal", "Thank a friend for helping you"},
		PracticeScenarios:   []string{"Welcoming a guest to your home"},
	},
	"filler_words": {
		ActivityType:        "fluency_drill",
		Title:               "Smooth Talker",
		Description:         "Answer quick questions while pausing silently instead of saying um or uh.",
		FocusAreas:          []string{"filler_words", "fluency"},
		TargetVocabulary:    []string{"accha", "theek", "bilkul"},
		ConversationPrompts: []string{"Answer ten rapid-fire questions about your week"},
		PracticeScenarios:   []string{"A phone interview where you want to sound composed"},
	},
	"pauses": {
		ActivityType:        "fluency_drill",
		Title:               "Keep It Flowing",
		Description:         "Speak for one minute on a familiar topic without long breaks.",
		FocusAreas:          []string{"pauses", "fluency"},
		TargetVocabulary:    []string{"phir", "uske baad", "lekin"},
		ConversationPrompts: []string{"Talk for one minute about your favorite festival"},
		PracticeScenarios:   []string{"Telling a story to a friend who keeps asking what happened next"},
	},
	"clarity": {
		ActivityType:        "pronunciation",
		Title:               "Clear as Paani",
		Description:         "Practice minimal pairs and slow articulation of tricky sounds.",
		FocusAreas:          []string{"clarity", "pronunciation"},
		TargetVocabulary:    []string{"paani", "phal", "dhanyavad"},
		ConversationPrompts: []string{"Read tongue twisters slowly, then at speed"},
		PracticeScenarios:   []string{"Leaving a voicemail that must be understood first try"},
	},
	"engagement": {
		ActivityType:        "conversation",
		Title:               "Back and Forth",
		Description:         "Practice keeping a conversation alive by asking questions back.",
		FocusAreas:          []string{"engagement", "questions"},
		TargetVocabulary:    []string{"kya", "kaise", "kahan"},
		ConversationPrompts: []string{"Never answer without asking something back"},
		PracticeScenarios:   []string{"Meeting a new neighbor and learning three things about them"},
	},
	"self_correction": {
		ActivityType:        "accuracy_drill",
		Title:               "First Try",
		Description:         "Plan each sentence briefly before speaking to reduce restarts.",
		FocusAreas:          []string{"self_correction", "accuracy"},
		TargetVocabulary:    []string{"main", "mera", "mujhe"},
		ConversationPrompts: []string{"Describe yesterday in five complete sentences"},
		PracticeScenarios:   []string{"Giving directions that cannot be repeated"},
	},
}

// defaultRotation covers a learner with no detected weaknesses: a balanced
// week rather than remedial drills.
var defaultRotation = []template{
	templates["engagement"],
	templates["vocabulary"],
	templates["target_vocabulary"],
	{
		ActivityType:        "free_conversation",
		Title:               "Open Mic",
		Description:         "A free-form chat about whatever interests you, at full difficulty.",
		FocusAreas:          []string{"fluency", "confidence"},
		TargetVocabulary:    []string{"mausam", "safar", "dost"},
		ConversationPrompts: []string{"Tell me about something you're looking forward to"},
		PracticeScenarios:   []string{"Catching up with an old friend on the phone"},
	},
}
