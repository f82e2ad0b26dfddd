package ports

import (
	"context"

	"github.com/healthwhisperer/wellness/internal/core/domain"
)

// InteractionRepository persists check-ins. Every read is scoped to a single
// user id; there is no cross-user query.
type InteractionRepository interface {
	Create(ctx context.Context, in *domain.Interaction) error
	// FindByID returns domain.ErrInteractionNotFound when the interaction does
	// not exist or belongs to another user.
	FindByID(ctx context.Context, userID, id string) (*domain.Interaction, error)
	// ListByUser returns the user's interactions newest first. limit <= 0
	// means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Interaction, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
