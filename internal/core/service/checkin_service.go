package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/healthwhisperer/wellness/internal/core/domain"
	"github.com/healthwhisperer/wellness/internal/core/ports"
)

const (
	dashboardRecent = 5
	trendWindow     = 30
)

type checkinService struct {
	repo      ports.InteractionRepository
	generator ports.SuggestionGenerator
	log       zerolog.Logger
	now       func() time.Time
	intn      func(int) int
}

// NewCheckinService returns a CheckinService implementation. generator may be
// nil, in which case every check-in gets a curated suggestion.
func NewCheckinService(
	repo ports.InteractionRepository,
	generator ports.SuggestionGenerator,
	log zerolog.Logger,
) ports.CheckinService {
	return &checkinService{
		repo:      repo,
		generator: generator,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		intn:      rand.IntN,
	}
}

// CheckIn validates the input, obtains a suggestion and persists exactly one
// interaction for the user.
func (s *checkinService) CheckIn(ctx context.Context, in ports.CheckinInput) (*domain.Interaction, error) {
	mood := strings.TrimSpace(in.Mood)
	nutrition := strings.TrimSpace(in.Nutrition)
	if mood == "" {
		return nil, domain.ErrEmptyMood
	}
	if utf8.RuneCountInString(mood) > domain.MaxCheckinTextLen || utf8.RuneCountInString(nutrition) > domain.MaxCheckinTextLen {
		return nil, domain.ErrInputTooLong
	}

	suggestion, source := s.suggest(ctx, mood, nutrition)

	interaction := &domain.Interaction{
		UserID:         in.UserID,
		MoodInput:      mood,
		NutritionInput: nutrition,
		Suggestion:     suggestion,
		Source:         source,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("check-in: %w", err)
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("interaction_id", interaction.ID).
		Str("source", string(source)).
		Msg("check-in recorded")

	return interaction, nil
}

// suggest asks the generator first and falls back to the curated lists on
// any failure. Failures are logged, never returned.
func (s *checkinService) suggest(ctx context.Context, mood, nutrition string) (string, domain.SuggestionSource) {
	if s.generator != nil {
		text, err := s.generator.Suggest(ctx, mood, nutrition)
		text = strings.TrimSpace(text)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("ai suggestion failed, using fallback")
		case text == "":
			s.log.Warn().Msg("ai suggestion empty, using fallback")
		default:
			return text, domain.SourceAI
		}
	}
	return pickFallback(domain.Categorize(mood), s.intn), domain.SourceFallback
}

func (s *checkinService) Get(ctx context.Context, userID, id string) (*domain.Interaction, error) {
	if userID == "" || id == "" {
		return nil, domain.ErrInteractionNotFound
	}
	return s.repo.FindByID(ctx, userID, id)
}

func (s *checkinService) History(ctx context.Context, userID string) ([]domain.Interaction, error) {
	items, err := s.repo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return items, nil
}

func (s *checkinService) Dashboard(ctx context.Context, userID string) (*ports.Dashboard, error) {
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count: %w", err)
	}

	window, err := s.repo.ListByUser(ctx, userID, trendWindow)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list: %w", err)
	}

	recent := window
	if len(recent) > dashboardRecent {
		recent = recent[:dashboardRecent]
	}

	return &ports.Dashboard{
		TotalCheckins: total,
		Recent:        recent,
		Trends:        BuildTrends(window),
	}, nil
}
