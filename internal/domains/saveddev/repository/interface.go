package repository

import (
	"context"

	"github.com/google/uuid"

	"devfolio-backend/internal/domains/saveddev/model"
)

type SavedDevRepository interface {
	// Create maps a duplicate (recruiter_id, developer_id) pair to the
	// domain's AlreadySaved error.
	Create(ctx context.Context, saved *model.SavedDeveloper) error

	// Delete reports whether a relation was actually removed.
	Delete(ctx context.Context, recruiterID, developerID uuid.UUID) (bool, error)

	// FindAllByRecruiter returns relations newest-first with the developer's
	// sanitized profile embedded.
	FindAllByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]*model.SavedDeveloper, error)

	Exists(ctx context.Context, recruiterID, developerID uuid.UUID) (bool, error)
}
