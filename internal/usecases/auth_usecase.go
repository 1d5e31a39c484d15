package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/domain/errors"
	domainRepos "contract-hub.backend/internal/domain/repositories"
	"contract-hub.backend/pkg/crypto"
	"contract-hub.backend/pkg/jwt"
	"contract-hub.backend/pkg/logger"
	"contract-hub.backend/pkg/utils"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   domainRepos.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo domainRepos.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates an account and returns a signed-in session.
func (u *AuthUsecase) Register(ctx context.Context, input entities.RegisterInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errors.Conflict("an account with this email already exists")
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, errors.InternalError(err)
	}

	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: passwordHash,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, errors.InternalError(err)
	}

	logger.Info(ctx, "user registered", zap.String("user_id", user.ID.String()))
	return u.issueSession(user)
}

// Login verifies credentials and returns a session.
func (u *AuthUsecase) Login(ctx context.Context, input entities.LoginInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and bad password.
		return nil, errors.Unauthorized("invalid email or password")
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, errors.Unauthorized("invalid email or password")
	}

	return u.issueSession(user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errors.Unauthorized("invalid refresh token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Unauthorized("account no longer exists")
	}

	return u.issueSession(user)
}

// Me returns the account behind an authenticated identity, provisioning it
// on first sight.
func (u *AuthUsecase) Me(ctx context.Context, actor entities.CurrentUser) (*entities.User, error) {
	user, err := u.userRepo.GetOrCreate(ctx, actor.ID, actor.Email, actor.Name)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return user, nil
}

func (u *AuthUsecase) issueSession(user *entities.User) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}
