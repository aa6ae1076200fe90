package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"devfolio-backend/internal/domains/project/model"
	"devfolio-backend/internal/domains/project/repository"
	skillservice "devfolio-backend/internal/domains/skill/service"
	"devfolio-backend/internal/shared/utils"
	"devfolio-backend/pkg/cache"
	"devfolio-backend/pkg/logger"
)

const (
	publicProjectCacheKey = "projects:public:%s:%s"
	publicProjectCacheTTL = 5 * time.Minute
)

// ImageStore is the blob-store surface the project domain needs.
// *storage.MinIOStorage satisfies it.
type ImageStore interface {
	UploadImage(ctx context.Context, prefix string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type ProjectService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateProjectRequest) (*model.Project, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID, status string) ([]*model.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	FindPublicBySlug(ctx context.Context, username, slug string) (*model.Project, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, req *model.UpdateProjectRequest) (*model.Project, error)
	Remove(ctx context.Context, id, requesterID uuid.UUID) error
	Publish(ctx context.Context, id, requesterID uuid.UUID) (*model.Project, error)
	Unpublish(ctx context.Context, id, requesterID uuid.UUID) (*model.Project, error)

	AddImage(ctx context.Context, projectID, requesterID uuid.UUID, data []byte, contentType string, req *model.AddImageRequest) (*model.ProjectImage, error)
	RemoveImage(ctx context.Context, projectID, imageID, requesterID uuid.UUID) error
}

type projectService struct {
	repo   repository.ProjectRepository
	skills skillservice.SkillService
	store  ImageStore
	cache  cache.Cache
}

func NewProjectService(repo repository.ProjectRepository, skills skillservice.SkillService, store ImageStore, cache cache.Cache) ProjectService {
	return &projectService{
		repo:   repo,
		skills: skills,
		store:  store,
		cache:  cache,
	}
}

// generateUniqueSlug derives the base slug from the title and probes
// (owner, slug) existence, appending -1, -2, ... until a free candidate is
// found. The pre-check is an optimization; the unique constraint is the
// real enforcement and Create retries on collision.
func (s *projectService) generateUniqueSlug(ctx context.Context, ownerID uuid.UUID, title string) (base string, slug string, counter int, err error) {
	base = utils.Slugify(title)

	slug = base
	if base == "" {
		// An all-punctuation title slugifies to nothing; counter-suffixed
		// candidates are still valid.
		counter = 1
		slug = nextSlug(base, counter)
	}

	for {
		exists, err := s.repo.ExistsByUserAndSlug(ctx, ownerID, slug)
		if err != nil {
			return "", "", 0, model.NewInternalError("failed to check slug", err)
		}
		if !exists {
			return base, slug, counter, nil
		}
		counter++
		slug = nextSlug(base, counter)
	}
}

func nextSlug(base string, counter int) string {
	return fmt.Sprintf("%s-%d", base, counter)
}

func (s *projectService) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateProjectRequest) (*model.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Unknown skill ids are dropped, not rejected.
	techStack, err := s.skills.FindByIDs(ctx, req.TechStackIDs)
	if err != nil {
		return nil, model.NewInternalError("failed to resolve tech stack", err)
	}
	skillIDs := make([]int, 0, len(techStack))
	for _, skill := range techStack {
		skillIDs = append(skillIDs, skill.ID)
	}

	base, slug, counter, err := s.generateUniqueSlug(ctx, ownerID, req.Title)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		ID:                 uuid.New(),
		UserID:             ownerID,
		Title:              req.Title,
		Description:        req.Description,
		Goals:              req.Goals,
		DevelopmentProcess: req.DevelopmentProcess,
		Challenges:         req.Challenges,
		Outcomes:           req.Outcomes,
		ProjectURL:         req.ProjectURL,
		RepoURL:            req.RepoURL,
		ThumbnailURL:       req.ThumbnailURL,
		Status:             model.StatusDraft,
		TechStack:          techStack,
		Images:             []*model.ProjectImage{},
	}

	// A concurrent creation by the same owner can win the slug between the
	// existence probe and the insert; retry with the next counter.
	for {
		project.Slug = slug
		err = s.repo.Create(ctx, project, skillIDs)
		if err == nil {
			return project, nil
		}
		if !errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, model.NewInternalError("failed to create project", err)
		}
		counter++
		slug = nextSlug(base, counter)
	}
}

func (s *projectService) FindAllByOwner(ctx context.Context, ownerID uuid.UUID, status string) ([]*model.Project, error) {
	if status != "" && !model.ProjectStatus(status).IsValid() {
		return nil, model.NewValidationError(fmt.Errorf("invalid status filter %q", status))
	}

	projects, err := s.repo.FindAllByOwner(ctx, ownerID, status)
	if err != nil {
		return nil, model.NewInternalError("failed to list projects", err)
	}
	return projects, nil
}

func (s *projectService) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, model.NewInternalError("failed to find project", err)
	}
	if project == nil {
		return nil, model.NewProjectNotFound()
	}
	return project, nil
}

// FindPublicBySlug resolves the public case-study page. Draft, foreign and
// missing projects are indistinguishable to the caller.
func (s *projectService) FindPublicBySlug(ctx context.Context, username, slug string) (*model.Project, error) {
	key := fmt.Sprintf(publicProjectCacheKey, username, slug)

	var cached *model.Project
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found && cached != nil {
		return cached, nil
	}

	project, err := s.repo.FindPublicBySlug(ctx, username, slug)
	if err != nil {
		return nil, model.NewInternalError("failed to find public project", err)
	}
	if project == nil {
		return nil, model.NewProjectNotFound()
	}

	if err := s.cache.Set(ctx, key, project, publicProjectCacheTTL); err != nil {
		logger.Error("failed to cache public project", err)
	}

	return project, nil
}

// loadOwned loads the project and applies the ownership gate: NotFound when
// missing, Forbidden when owned by someone else.
func (s *projectService) loadOwned(ctx context.Context, id, requesterID uuid.UUID) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, model.NewInternalError("failed to find project", err)
	}
	if project == nil {
		return nil, model.NewProjectNotFound()
	}
	if project.UserID != requesterID {
		return nil, model.NewForbidden()
	}
	return project, nil
}

// Update applies a partial update. The slug is never regenerated, even when
// the title changes.
func (s *projectService) Update(ctx context.Context, id, requesterID uuid.UUID, req *model.UpdateProjectRequest) (*model.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	project, err := s.loadOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Goals != nil {
		project.Goals = req.Goals
	}
	if req.DevelopmentProcess != nil {
		project.DevelopmentProcess = req.DevelopmentProcess
	}
	if req.Challenges != nil {
		project.Challenges = req.Challenges
	}
	if req.Outcomes != nil {
		project.Outcomes = req.Outcomes
	}
	if req.ProjectURL != nil {
		project.ProjectURL = req.ProjectURL
	}
	if req.RepoURL != nil {
		project.RepoURL = req.RepoURL
	}
	if req.ThumbnailURL != nil {
		project.ThumbnailURL = req.ThumbnailURL
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	// A supplied tech stack replaces the association wholesale; unknown ids
	// are dropped during resolution.
	if req.TechStackIDs != nil {
		techStack, err := s.skills.FindByIDs(ctx, *req.TechStackIDs)
		if err != nil {
			return nil, model.NewInternalError("failed to resolve tech stack", err)
		}
		skillIDs := make([]int, 0, len(techStack))
		for _, skill := range techStack {
			skillIDs = append(skillIDs, skill.ID)
		}
		if err := s.repo.ReplaceTechStack(ctx, project.ID, skillIDs); err != nil {
			return nil, model.NewInternalError("failed to replace tech stack", err)
		}
		project.TechStack = techStack
	}

	s.invalidatePublicCache(ctx)

	return project, nil
}

func (s *projectService) Remove(ctx context.Context, id, requesterID uuid.UUID) error {
	project, err := s.loadOwned(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.repo.Remove(ctx, project.ID); err != nil {
		return model.NewInternalError("failed to delete project", err)
	}

	// Best effort; the rows are already gone and orphaned objects are
	// harmless.
	if err := s.store.DeleteByPrefix(ctx, fmt.Sprintf("projects/%s", project.ID)); err != nil {
		logger.Error("failed to delete project images from storage", err)
	}

	s.invalidatePublicCache(ctx)

	return nil
}

// Publish stamps publishedAt even when the project is already published.
func (s *projectService) Publish(ctx context.Context, id, requesterID uuid.UUID) (*model.Project, error) {
	project, err := s.loadOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project.Status = model.StatusPublished
	project.PublishedAt = &now

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.invalidatePublicCache(ctx)

	return project, nil
}

// Unpublish reverts the status but keeps publishedAt, preserving the first
// publication timestamp across republish cycles.
func (s *projectService) Unpublish(ctx context.Context, id, requesterID uuid.UUID) (*model.Project, error) {
	project, err := s.loadOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	project.Status = model.StatusDraft

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.invalidatePublicCache(ctx)

	return project, nil
}

func (s *projectService) invalidatePublicCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "projects:public:*"); err != nil {
		logger.Error("failed to invalidate public project cache", err)
	}
}
