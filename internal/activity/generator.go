package activity

import (
	"fmt"
	"strings"
	"time"
)

// PlanDays is the fixed length of a forward practice plan.
const PlanDays = 7

// Activity is one scheduled practice session in a learner's forward plan.
type Activity struct {
	ScheduledDate            time.Time `json:"scheduled_date"`
	ActivityType             string    `json:"activity_type"`
	Title                    string    `json:"title"`
	Description              string    `json:"description"`
	TargetMetrics            []string  `json:"target_metrics"`
	DifficultyLevel          int       `json:"difficulty_level"`
	EstimatedDurationMinutes int       `json:"estimated_duration_minutes"`
	FocusAreas               []string  `json:"focus_areas"`
	TargetVocabulary         []string  `json:"target_vocabulary"`
	ConversationPrompts      []string  `json:"conversation_prompts"`
	PracticeScenarios        []string  `json:"practice_scenarios"`
	WeaknessAreas            []string  `json:"weakness_areas"`
	StrengthAreas            []string  `json:"strength_areas"`
	AdaptationReason         string    `json:"adaptation_reason"`
}

var allAreas = []string{
	"speaking_speed", "vocabulary", "target_vocabulary", "filler_words",
	"pauses", "clarity", "engagement", "self_correction",
}

// GeneratePlan builds the next 7 days of practice, one activity per day
// starting tomorrow. Day d (1-based) uses the template for
// weaknesses[(d-1) mod len] — or the default rotation when there are none —
// at difficulty clamp(1,10, floor(score/10)+d), nudged by the trend across
// the two most recent composite scores (most recent first).
func GeneratePlan(now time.Time, weaknesses []string, compositeScore float64, recentComposites []float64) []Activity {
	trend := trendNudge(recentComposites)
	strengths := complementOf(weaknesses)
	today := now.Truncate(24 * time.Hour)

	plan := make([]Activity, 0, PlanDays)
	for day := 1; day <= PlanDays; day++ {
		var tmpl template
		var focus string
		if len(weaknesses) > 0 {
			focus = weaknesses[(day-1)%len(weaknesses)]
			tmpl = templateFor(focus)
		} else {
			tmpl = defaultRotation[(day-1)%len(defaultRotation)]
			focus = tmpl.ActivityType
		}

		difficulty := clampInt(1, 10, int(compositeScore/10)+day+trend)

		plan = append(plan, Activity{
			ScheduledDate:       today.AddDate(0, 0, day),
			ActivityType:        tmpl.ActivityType,
			Title:               tmpl.Title,
			Description:         tmpl.Description,
			TargetMetrics:       append([]string{}, tmpl.FocusAreas...),
			DifficultyLevel:     difficulty,
			EstimatedDurationMinutes: 10 + difficulty*2,
			FocusAreas:          append([]string{}, tmpl.FocusAreas...),
			TargetVocabulary:    append([]string{}, tmpl.TargetVocabulary...),
			ConversationPrompts: append([]string{}, tmpl.ConversationPrompts...),
			PracticeScenarios:   append([]string{}, tmpl.PracticeScenarios...),
			WeaknessAreas:       append([]string{}, weaknesses...),
			StrengthAreas:       strengths,
			AdaptationReason:    adaptationReason(focus, compositeScore, trend),
		})
	}
	return plan
}

func templateFor(weakness string) template {
	if tmpl, ok := templates[weakness]; ok {
		return tmpl
	}
	// Unknown tag — general conversation practice still helps it.
	return defaultRotation[0]
}

// trendNudge is +1 when the two most recent composites improved, -1 when
// they declined, 0 otherwise.
func trendNudge(recent []float64) int {
	if len(recent) < 2 {
		return 0
	}
	switch {
	case recent[0] > recent[1]:
		return 1
	case recent[0] < recent[1]:
		return -1
	}
	return 0
}

func complementOf(weaknesses []string) []string {
	weak := make(map[string]bool, len(weaknesses))
	for _, w := range weaknesses {
		weak[w] = true
	}
	var strengths []string
	for _, a := range allAreas {
		if !weak[a] {
			strengths = append(strengths, a)
		}
	}
	return strengths
}

func adaptationReason(focus string, score float64, trend int) string {
	reason := fmt.Sprintf("Focused on %s at composite score %.0f", strings.ReplaceAll(focus, "_", " "), score)
	switch {
	case trend > 0:
		reason += "; difficulty raised on an improving trend"
	case trend < 0:
		reason += "; difficulty eased on a declining trend"
	}
	return reason + "."
}

func clampInt(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
