package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"devfolio-backend/internal/domains/user/model"
	"devfolio-backend/internal/domains/user/repository"
	"devfolio-backend/internal/infrastructure/storage"
	"devfolio-backend/pkg/cache"
	"devfolio-backend/pkg/logger"
)

const (
	developerListCacheKey = "developers:list:%s"
	developerListCacheTTL = 5 * time.Minute
)

// AvatarStore is the blob-store surface the user domain needs.
// *storage.MinIOStorage satisfies it.
type AvatarStore interface {
	UploadImage(ctx context.Context, prefix string, data []byte, contentType string) (string, error)
}

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*model.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.ProfileResponse, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*model.ProfileResponse, error)
	SendWorkEmailCode(ctx context.Context, userID uuid.UUID) error
	VerifyWorkEmail(ctx context.Context, userID uuid.UUID, code string) (*model.ProfileResponse, error)
	GetPublicProfile(ctx context.Context, username string) (*model.ProfileResponse, error)
	ListDevelopers(ctx context.Context, search string) ([]*model.DeveloperListing, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  AvatarStore
	cache    cache.Cache
}

func NewUserService(userRepo repository.UserRepository, storage AvatarStore, cache cache.Cache) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
		cache:    cache,
	}
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*model.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return nil, model.NewUserNotFound()
	}
	return user.Profile(), nil
}

// UpdateProfile applies a partial update. Changing the work email resets its
// verified flag and drops any pending verification code.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return nil, model.NewUserNotFound()
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.WebsiteURL != nil {
		user.WebsiteURL = req.WebsiteURL
	}
	if req.GithubURL != nil {
		user.GithubURL = req.GithubURL
	}
	if req.LinkedinURL != nil {
		user.LinkedinURL = req.LinkedinURL
	}
	if req.TwitterURL != nil {
		user.TwitterURL = req.TwitterURL
	}
	if req.CompanyName != nil {
		user.CompanyName = req.CompanyName
	}
	if req.CompanyURL != nil {
		user.CompanyURL = req.CompanyURL
	}
	if req.Industry != nil {
		user.Industry = req.Industry
	}
	if req.WorkEmail != nil && (user.WorkEmail == nil || *user.WorkEmail != *req.WorkEmail) {
		user.WorkEmail = req.WorkEmail
		user.IsWorkEmailVerified = false
		user.WorkEmailVerificationCode = nil
		user.WorkEmailVerificationExp = nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateDeveloperList(ctx)

	return user.Profile(), nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*model.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return nil, model.NewUserNotFound()
	}

	url, err := s.storage.UploadImage(ctx, fmt.Sprintf("avatars/%s", userID), data, contentType)
	if err != nil {
		switch err {
		case storage.ErrFileTooLarge, storage.ErrDisallowedType, storage.ErrEmptyFile:
			return nil, model.NewValidationError(err)
		default:
			return nil, model.NewInternalError("failed to upload avatar", err)
		}
	}

	user.AvatarURL = &url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateDeveloperList(ctx)

	return user.Profile(), nil
}

func (s *userService) SendWorkEmailCode(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return model.NewUserNotFound()
	}

	if user.WorkEmail == nil || *user.WorkEmail == "" {
		return model.NewNoWorkEmail()
	}

	code, err := generateVerificationCode()
	if err != nil {
		return model.NewInternalError("failed to generate verification code", err)
	}
	expiry := time.Now().Add(verificationCodeTTL)

	user.WorkEmailVerificationCode = &code
	user.WorkEmailVerificationExp = &expiry

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	logger.Info("work email verification code issued", map[string]interface{}{
		"user_id": user.ID.String(),
		"code":    code,
	})

	return nil
}

func (s *userService) VerifyWorkEmail(ctx context.Context, userID uuid.UUID, code string) (*model.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return nil, model.NewUserNotFound()
	}

	if !user.HasPendingWorkEmailCode() {
		return nil, model.NewNoCodePending()
	}
	if time.Now().After(*user.WorkEmailVerificationExp) {
		return nil, model.NewCodeExpired()
	}
	if *user.WorkEmailVerificationCode != code {
		return nil, model.NewCodeInvalid()
	}

	user.IsWorkEmailVerified = true
	user.WorkEmailVerificationCode = nil
	user.WorkEmailVerificationExp = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Profile(), nil
}

func (s *userService) GetPublicProfile(ctx context.Context, username string) (*model.ProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return nil, model.NewUserNotFound()
	}
	return user.Profile(), nil
}

// ListDevelopers returns the public directory, cached per search term.
func (s *userService) ListDevelopers(ctx context.Context, search string) ([]*model.DeveloperListing, error) {
	key := fmt.Sprintf(developerListCacheKey, search)

	var cached []*model.DeveloperListing
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	rows, err := s.userRepo.ListDevelopers(ctx, search)
	if err != nil {
		return nil, model.NewInternalError("failed to list developers", err)
	}

	listings := make([]*model.DeveloperListing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, &model.DeveloperListing{
			ProfileResponse: row.User.Profile(),
			ProjectCount:    row.ProjectCount,
		})
	}

	if err := s.cache.Set(ctx, key, listings, developerListCacheTTL); err != nil {
		logger.Error("failed to cache developer list", err)
	}

	return listings, nil
}

func (s *userService) invalidateDeveloperList(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "developers:list:*"); err != nil {
		logger.Error("failed to invalidate developer list cache", err)
	}
}
