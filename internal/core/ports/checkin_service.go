package ports

import (
	"context"

	"github.com/healthwhisperer/wellness/internal/core/domain"
)

// CheckinInput is the DTO passed from the transport layer to CheckinService.
type CheckinInput struct {
	UserID    string
	Mood      string
	Nutrition string // optional
}

// MoodCount is one bar of the mood chart.
type MoodCount struct {
	Category domain.MoodCategory
	Count    int
	Percent  int
}

// TimelinePoint is one check-in on the trend timeline.
type TimelinePoint struct {
	Date     string // MM/DD
	Category domain.MoodCategory
}

// Trends summarises recent check-ins in chronological order.
type Trends struct {
	Counts   []MoodCount
	Timeline []TimelinePoint
}

// Dashboard is everything the dashboard page shows for one user.
type Dashboard struct {
	TotalCheckins int64
	Recent        []domain.Interaction
	Trends        Trends
}

// CheckinService defines use-case operations for wellness check-ins.
type CheckinService interface {
	CheckIn(ctx context.Context, in CheckinInput) (*domain.Interaction, error)
	Get(ctx context.Context, userID, id string) (*domain.Interaction, error)
	History(ctx context.Context, userID string) ([]domain.Interaction, error)
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
}
