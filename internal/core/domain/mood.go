package domain

import "strings"

// MoodCategory is a coarse, chart-friendly bucket for free-text moods.
type MoodCategory string

const (
	MoodPositive   MoodCategory = "Positive"
	MoodStressed   MoodCategory = "Stressed"
	MoodAnxious    MoodCategory = "Anxious"
	MoodSad        MoodCategory = "Sad"
	MoodTired      MoodCategory = "Tired"
	MoodFrustrated MoodCategory = "Frustrated"
	MoodNeutral    MoodCategory = "Neutral"
)

// MoodCategories lists every category in matching priority order, Neutral last.
var MoodCategories = []MoodCategory{
	MoodPositive, MoodStressed, MoodAnxious, MoodSad, MoodTired, MoodFrustrated, MoodNeutral,
}

// moodKeywords is checked in MoodCategories order; the first category with a
// keyword contained in the input wins.
var moodKeywords = map[MoodCategory][]string{
	MoodPositive:   {"grateful", "thankful", "blessed", "good", "positive", "happy", "great", "wonderful", "amazing", "excited", "joyful"},
	MoodStressed:   {"stressed", "overwhelmed", "pressure", "busy", "hectic", "chaotic", "rushed"},
	MoodAnxious:    {"anxious", "worried", "nervous", "scared", "afraid", "panic", "fear", "concerned"},
	MoodSad:        {"sad", "down", "depressed", "blue", "low", "upset", "hurt", "disappointed", "lonely"},
	MoodTired:      {"tired", "exhausted", "drained", "low energy", "fatigue", "weary", "sleepy"},
	MoodFrustrated: {"frustrated", "angry", "mad", "annoyed", "irritated", "furious", "rage"},
}

// Categorize maps mood text to a MoodCategory by case-insensitive substring
// match. Text that matches nothing is Neutral.
func Categorize(mood string) MoodCategory {
	lower := strings.ToLower(mood)
	for _, cat := range MoodCategories {
		for _, kw := range moodKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return MoodNeutral
}

// QuickMoods are the dropdown choices offered on the check-in form.
var QuickMoods = []string{
	"Happy and grateful",
	"Stressed and overwhelmed",
	"Anxious or worried",
	"Sad or down",
	"Tired and drained",
	"Frustrated or angry",
	"Calm and okay",
}
