package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"contract-hub.backend/internal/domain/entities"
	domainErrors "contract-hub.backend/internal/domain/errors"
	"contract-hub.backend/internal/usecases"
	"contract-hub.backend/pkg/crypto"
	"contract-hub.backend/pkg/jwt"
)

func newAuthUC() (*usecases.AuthUsecase, *MockUserRepository, *jwt.JWTService) {
	users := new(MockUserRepository)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return usecases.NewAuthUsecase(users, jwtService), users, jwtService
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	uc, users, _ := newAuthUC()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "new@example.com").Return(nil, assert.AnError).Once()
	users.On("Create", ctx, mock.MatchedBy(func(u *entities.User) bool {
		return u.Email == "new@example.com" && u.PasswordHash != "" && u.PasswordHash != "hunter2secret"
	})).Return(nil).Once()

	resp, err := uc.Register(ctx, entities.RegisterInput{
		Email:    "  New@Example.COM ",
		Name:     "New User",
		Password: "hunter2secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new@example.com", resp.User.Email)
	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	uc, users, _ := newAuthUC()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "taken@example.com").Return(&entities.User{
		ID: uuid.New(), Email: "taken@example.com",
	}, nil).Once()

	_, err := uc.Register(ctx, entities.RegisterInput{
		Email:    "taken@example.com",
		Name:     "Somebody",
		Password: "hunter2secret",
	})
	assert.Equal(t, domainErrors.CodeConflict, appCode(t, err))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	uc, users, jwtService := newAuthUC()
	ctx := context.Background()

	hash, err := crypto.HashPassword("hunter2secret")
	require.NoError(t, err)
	userID := uuid.New()
	users.On("GetByEmail", ctx, "user@example.com").Return(&entities.User{
		ID: userID, Email: "user@example.com", Name: "User", PasswordHash: hash,
	}, nil).Once()

	resp, err := uc.Login(ctx, entities.LoginInput{
		Email:    "User@Example.com",
		Password: "hunter2secret",
	})
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestAuthUsecase_Login_SameAnswerForBothFailures(t *testing.T) {
	uc, users, _ := newAuthUC()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, assert.AnError).Once()
	_, unknownErr := uc.Login(ctx, entities.LoginInput{Email: "ghost@example.com", Password: "whatever12"})

	hash, err := crypto.HashPassword("rightpassword")
	require.NoError(t, err)
	users.On("GetByEmail", ctx, "user@example.com").Return(&entities.User{
		ID: uuid.New(), Email: "user@example.com", PasswordHash: hash,
	}, nil).Once()
	_, badPassErr := uc.Login(ctx, entities.LoginInput{Email: "user@example.com", Password: "wrongpassword"})

	assert.Equal(t, domainErrors.CodeUnauthorized, appCode(t, unknownErr))
	assert.Equal(t, domainErrors.CodeUnauthorized, appCode(t, badPassErr))
	assert.Equal(t, unknownErr.Error(), badPassErr.Error())
}

func TestAuthUsecase_Refresh_Success(t *testing.T) {
	uc, users, jwtService := newAuthUC()
	ctx := context.Background()

	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "user@example.com", "User")
	require.NoError(t, err)

	users.On("GetByID", ctx, userID).Return(&entities.User{
		ID: userID, Email: "user@example.com", Name: "User",
	}, nil).Once()

	resp, err := uc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, userID, resp.User.ID)
}

func TestAuthUsecase_Refresh_InvalidToken(t *testing.T) {
	uc, users, _ := newAuthUC()

	_, err := uc.Refresh(context.Background(), "not-a-jwt")
	assert.Equal(t, domainErrors.CodeUnauthorized, appCode(t, err))
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Refresh_DeletedAccount(t *testing.T) {
	uc, users, jwtService := newAuthUC()
	ctx := context.Background()

	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "gone@example.com", "Gone")
	require.NoError(t, err)

	users.On("GetByID", ctx, userID).Return(nil, assert.AnError).Once()

	_, err = uc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, domainErrors.CodeUnauthorized, appCode(t, err))
}

func TestAuthUsecase_Me_ProvisionsOnFirstSight(t *testing.T) {
	uc, users, _ := newAuthUC()
	ctx := context.Background()

	actor := entities.CurrentUser{ID: uuid.New(), Email: "sso@example.com", Name: "SSO User"}
	users.On("GetOrCreate", ctx, actor.ID, actor.Email, actor.Name).Return(&entities.User{
		ID: actor.ID, Email: actor.Email, Name: actor.Name,
	}, nil).Once()

	user, err := uc.Me(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, user.ID)
	users.AssertExpectations(t)
}
