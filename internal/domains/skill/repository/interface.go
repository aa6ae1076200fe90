package repository

import (
	"context"

	"devfolio-backend/internal/domains/skill/model"
)

type SkillRepository interface {
	// List returns skills ordered by name, optionally filtered by a
	// case-insensitive name search and/or an exact category.
	List(ctx context.Context, search, category string) ([]*model.Skill, error)

	// FindByIDs resolves skill ids to catalog entries. Unknown ids are
	// silently omitted from the result.
	FindByIDs(ctx context.Context, ids []int) ([]*model.Skill, error)
}
