package ports

import (
	"context"

	"github.com/healthwhisperer/wellness/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
// Finders return domain.ErrUserNotFound when nothing matches; Create returns
// domain.ErrUserExists on a unique-key violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
