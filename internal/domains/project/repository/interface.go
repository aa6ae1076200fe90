package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"devfolio-backend/internal/domains/project/model"
)

// ErrDuplicateSlug is returned by Create when the (user_id, slug) unique
// constraint fires. The service retries with the next counter.
var ErrDuplicateSlug = errors.New("slug already in use for this owner")

type ProjectRepository interface {
	// Create inserts the project and its tech-stack rows in one transaction.
	Create(ctx context.Context, project *model.Project, techStackIDs []int) error

	ExistsByUserAndSlug(ctx context.Context, userID uuid.UUID, slug string) (bool, error)

	// FindByID loads the full aggregate (owner, images, tech stack).
	// Returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)

	// FindAllByOwner returns the owner's projects newest-first, optionally
	// filtered by status.
	FindAllByOwner(ctx context.Context, userID uuid.UUID, status string) ([]*model.Project, error)

	// FindPublicBySlug resolves a published project by owner username and
	// slug. Draft, foreign and missing projects all come back (nil, nil).
	FindPublicBySlug(ctx context.Context, username, slug string) (*model.Project, error)

	Update(ctx context.Context, project *model.Project) error

	// ReplaceTechStack swaps the association for the given skill set.
	ReplaceTechStack(ctx context.Context, projectID uuid.UUID, skillIDs []int) error

	// Remove deletes images, tech-stack rows and the project atomically.
	Remove(ctx context.Context, id uuid.UUID) error

	AddImage(ctx context.Context, image *model.ProjectImage) error

	// FindImage returns (nil, nil) unless the image exists AND belongs to
	// the given project.
	FindImage(ctx context.Context, projectID, imageID uuid.UUID) (*model.ProjectImage, error)

	RemoveImage(ctx context.Context, imageID uuid.UUID) error
}
