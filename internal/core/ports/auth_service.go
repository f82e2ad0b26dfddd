package ports

import (
	"context"

	"github.com/healthwhisperer/wellness/internal/core/domain"
)

// SignupInput carries the raw signup form values.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// Authenticate accepts a username, or an email when identifier contains "@".
	Authenticate(ctx context.Context, identifier, password string) (*domain.User, error)
	IssueToken(user *domain.User) (string, error)
	UserByID(ctx context.Context, id string) (*domain.User, error)
}
