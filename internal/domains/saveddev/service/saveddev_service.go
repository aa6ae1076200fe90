package service

import (
	"context"

	"github.com/google/uuid"

	"devfolio-backend/internal/domains/saveddev/model"
	"devfolio-backend/internal/domains/saveddev/repository"
	usermodel "devfolio-backend/internal/domains/user/model"
	userrepo "devfolio-backend/internal/domains/user/repository"
)

type SavedDevService interface {
	Save(ctx context.Context, recruiterID, developerID uuid.UUID) (*model.SavedDeveloper, error)
	Unsave(ctx context.Context, recruiterID, developerID uuid.UUID) error
	FindAllByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]*model.SavedDeveloper, error)
	IsSaved(ctx context.Context, recruiterID, developerID uuid.UUID) (bool, error)
}

type savedDevService struct {
	repo     repository.SavedDevRepository
	userRepo userrepo.UserRepository
}

func NewSavedDevService(repo repository.SavedDevRepository, userRepo userrepo.UserRepository) SavedDevService {
	return &savedDevService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Save bookmarks a developer. The target must exist and actually be a
// developer; saving twice is a conflict, with the unique constraint as the
// backstop under concurrent saves.
func (s *savedDevService) Save(ctx context.Context, recruiterID, developerID uuid.UUID) (*model.SavedDeveloper, error) {
	developer, err := s.userRepo.FindByID(ctx, developerID)
	if err != nil {
		return nil, model.NewInternalError("failed to find developer", err)
	}
	if developer == nil || developer.Role != usermodel.RoleDeveloper {
		return nil, model.NewDeveloperNotFound()
	}

	exists, err := s.repo.Exists(ctx, recruiterID, developerID)
	if err != nil {
		return nil, model.NewInternalError("failed to check saved status", err)
	}
	if exists {
		return nil, model.NewAlreadySaved()
	}

	saved := &model.SavedDeveloper{
		ID:          uuid.New(),
		RecruiterID: recruiterID,
		DeveloperID: developerID,
	}
	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, err
	}

	saved.Developer = developer.Profile()
	return saved, nil
}

func (s *savedDevService) Unsave(ctx context.Context, recruiterID, developerID uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, recruiterID, developerID)
	if err != nil {
		return model.NewInternalError("failed to unsave developer", err)
	}
	if !deleted {
		return model.NewNotSaved()
	}
	return nil
}

func (s *savedDevService) FindAllByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]*model.SavedDeveloper, error) {
	saved, err := s.repo.FindAllByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, model.NewInternalError("failed to list saved developers", err)
	}
	return saved, nil
}

// IsSaved never errors on absence; it is a plain boolean check.
func (s *savedDevService) IsSaved(ctx context.Context, recruiterID, developerID uuid.UUID) (bool, error) {
	exists, err := s.repo.Exists(ctx, recruiterID, developerID)
	if err != nil {
		return false, model.NewInternalError("failed to check saved status", err)
	}
	return exists, nil
}
