package repository

import (
	"context"

	"github.com/google/uuid"

	"devfolio-backend/internal/domains/user/model"
)

// DeveloperRow pairs a developer with their published project count for the
// public directory.
type DeveloperRow struct {
	User         *model.User
	ProjectCount int
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error

	// Finders return (nil, nil) when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Update persists every mutable column of the user.
	Update(ctx context.Context, user *model.User) error

	// ListDevelopers returns verified developers with their published
	// project counts, optionally filtered by a name/username/bio search.
	ListDevelopers(ctx context.Context, search string) ([]*DeveloperRow, error)
}
