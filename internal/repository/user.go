package repository

import (
	"context"

	"github.com/ErlanBelekov/task-api/internal/domain"
)

type UserRepository interface {
	// Create persists u in a single statement and returns the stored row.
	// A taken email yields domain.ErrDuplicateCredential.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
