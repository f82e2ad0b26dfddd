package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyMood           = errors.New("mood input is required")
	ErrInputTooLong        = errors.New("input is too long")
	ErrInteractionNotFound = errors.New("interaction not found")
)

// SuggestionSource records where an interaction's suggestion came from.
type SuggestionSource string

const (
	SourceAI       SuggestionSource = "ai"
	SourceFallback SuggestionSource = "fallback"
)

// Interaction is a single wellness check-in and the suggestion it produced.
// It always belongs to exactly one user.
type Interaction struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	MoodInput      string           `json:"mood_input"`
	NutritionInput string           `json:"nutrition_input,omitempty"`
	Suggestion     string           `json:"suggestion"`
	Source         SuggestionSource `json:"suggestion_source"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Category is the mood bucket derived from the free-text input.
func (i Interaction) Category() MoodCategory {
	return Categorize(i.MoodInput)
}
