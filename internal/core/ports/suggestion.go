package ports

import "context"

// SuggestionGenerator produces a short wellness suggestion for a mood, using
// an external text-generation API. Any error means the caller falls back to
// curated suggestions.
type SuggestionGenerator interface {
	Suggest(ctx context.Context, mood, nutrition string) (string, error)
}
