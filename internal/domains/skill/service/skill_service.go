package service

import (
	"context"
	"fmt"
	"time"

	"devfolio-backend/internal/domains/skill/model"
	"devfolio-backend/internal/domains/skill/repository"
	"devfolio-backend/pkg/cache"
	"devfolio-backend/pkg/logger"
)

const (
	skillListCacheKey = "skills:list:%s:%s"
	skillListCacheTTL = 10 * time.Minute
)

type SkillService interface {
	List(ctx context.Context, search, category string) ([]*model.Skill, error)
	FindByIDs(ctx context.Context, ids []int) ([]*model.Skill, error)
}

type skillService struct {
	repo  repository.SkillRepository
	cache cache.Cache
}

func NewSkillService(repo repository.SkillRepository, cache cache.Cache) SkillService {
	return &skillService{
		repo:  repo,
		cache: cache,
	}
}

// List returns the catalog, cached per (search, category) pair. The catalog
// changes rarely so a short TTL is enough; cache failures fall through to
// the database.
func (s *skillService) List(ctx context.Context, search, category string) ([]*model.Skill, error) {
	key := fmt.Sprintf(skillListCacheKey, search, category)

	var cached []*model.Skill
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	skills, err := s.repo.List(ctx, search, category)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, skills, skillListCacheTTL); err != nil {
		logger.Error("failed to cache skill list", err)
	}

	return skills, nil
}

// FindByIDs resolves ids against the catalog. Unknown ids are dropped, not
// rejected; callers get back only the skills that exist.
func (s *skillService) FindByIDs(ctx context.Context, ids []int) ([]*model.Skill, error) {
	return s.repo.FindByIDs(ctx, ids)
}
