package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "user@example.com", "User")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "User", claims.Name)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, time.Hour)
	pair, err := svc.GenerateTokenPair(uuid.New(), "user@example.com", "User")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour)
	pair, err := svc.GenerateTokenPair(uuid.New(), "user@example.com", "User")
	require.NoError(t, err)

	other := NewJWTService("other-secret", time.Hour, time.Hour)
	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateSignError(t *testing.T) {
	orig := signJWTToken
	defer func() { signJWTToken = orig }()
	signJWTToken = func(token *gojwt.Token, secret []byte) (string, error) {
		return "", errors.New("sign failed")
	}

	svc := NewJWTService("test-secret", time.Hour, time.Hour)
	_, err := svc.GenerateTokenPair(uuid.New(), "user@example.com", "User")
	assert.Error(t, err)
}
