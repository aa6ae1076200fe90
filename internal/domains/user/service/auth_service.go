package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"devfolio-backend/internal/domains/user/model"
	"devfolio-backend/internal/domains/user/repository"
	"devfolio-backend/pkg/jwt"
	"devfolio-backend/pkg/logger"
)

const verificationCodeTTL = 15 * time.Minute

type AuthService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error)
	Signin(ctx context.Context, req *model.SigninRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.TokenResponse, error)
	VerifyEmail(ctx context.Context, userID uuid.UUID, code string) (*model.ProfileResponse, error)
	ResendEmailCode(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// generateVerificationCode returns a random 6-digit code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *authService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, model.NewInternalError("failed to check email", err)
	}
	if existing != nil {
		return nil, model.NewEmailTaken()
	}

	existing, err = s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, model.NewInternalError("failed to check username", err)
	}
	if existing != nil {
		return nil, model.NewUsernameTaken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, model.NewInternalError("failed to hash password", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, model.NewInternalError("failed to generate verification code", err)
	}
	expiry := time.Now().Add(verificationCodeTTL)

	user := &model.User{
		ID:                      uuid.New(),
		Email:                   req.Email,
		Username:                req.Username,
		FullName:                req.FullName,
		Role:                    model.Role(req.Role),
		PasswordHash:            string(hash),
		EmailVerificationCode:   &code,
		EmailVerificationExpiry: &expiry,
	}
	if user.Role == model.RoleRecruiter && req.CompanyName != "" {
		user.CompanyName = &req.CompanyName
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Mail delivery is handled out of band; the code is logged so local
	// environments can complete the flow.
	logger.Info("email verification code issued", map[string]interface{}{
		"user_id": user.ID.String(),
		"code":    code,
	})

	return s.buildAuthResponse(user)
}

func (s *authService) Signin(ctx context.Context, req *model.SigninRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentials()
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.NewInvalidToken()
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.NewInvalidToken()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return nil, model.NewInvalidToken()
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Email, user.Role.String())
	if err != nil {
		return nil, model.NewInternalError("failed to generate access token", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, model.NewInternalError("failed to generate refresh token", err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, userID uuid.UUID, code string) (*model.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return nil, model.NewUserNotFound()
	}

	if !user.HasPendingEmailCode() {
		return nil, model.NewNoCodePending()
	}
	if time.Now().After(*user.EmailVerificationExpiry) {
		return nil, model.NewCodeExpired()
	}
	if *user.EmailVerificationCode != code {
		return nil, model.NewCodeInvalid()
	}

	user.IsEmailVerified = true
	user.EmailVerificationCode = nil
	user.EmailVerificationExpiry = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Profile(), nil
}

func (s *authService) ResendEmailCode(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.NewInternalError("failed to find user", err)
	}
	if user == nil {
		return model.NewUserNotFound()
	}

	code, err := generateVerificationCode()
	if err != nil {
		return model.NewInternalError("failed to generate verification code", err)
	}
	expiry := time.Now().Add(verificationCodeTTL)

	user.EmailVerificationCode = &code
	user.EmailVerificationExpiry = &expiry

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	logger.Info("email verification code reissued", map[string]interface{}{
		"user_id": user.ID.String(),
		"code":    code,
	})

	return nil
}

func (s *authService) buildAuthResponse(user *model.User) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Email, user.Role.String())
	if err != nil {
		return nil, model.NewInternalError("failed to generate access token", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, model.NewInternalError("failed to generate refresh token", err)
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Profile(),
	}, nil
}
