package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"contract-hub.backend/internal/domain/entities"
	domainerrors "contract-hub.backend/internal/domain/errors"
)

type signatureServiceStub struct {
	createTokenFn   func(ctx context.Context, actor entities.CurrentUser, input entities.CreateTokenInput) (*entities.SignatureTokenResult, error)
	validateTokenFn func(ctx context.Context, raw string) (*entities.TokenValidation, error)
	signFn          func(ctx context.Context, actor entities.CurrentUser, input entities.SignInput) (*entities.SignResult, error)
	guestSignFn     func(ctx context.Context, input entities.GuestSignInput) (*entities.SignResult, error)
	getSignaturesFn func(ctx context.Context, actor entities.CurrentUser, contractID uuid.UUID) ([]*entities.Signature, error)
}

func (s signatureServiceStub) CreateToken(ctx context.Context, actor entities.CurrentUser, input entities.CreateTokenInput) (*entities.SignatureTokenResult, error) {
	return s.createTokenFn(ctx, actor, input)
}
func (s signatureServiceStub) ValidateToken(ctx context.Context, raw string) (*entities.TokenValidation, error) {
	return s.validateTokenFn(ctx, raw)
}
func (s signatureServiceStub) Sign(ctx context.Context, actor entities.CurrentUser, input entities.SignInput) (*entities.SignResult, error) {
	return s.signFn(ctx, actor, input)
}
func (s signatureServiceStub) GuestSign(ctx context.Context, input entities.GuestSignInput) (*entities.SignResult, error) {
	return s.guestSignFn(ctx, input)
}
func (s signatureServiceStub) GetContractSignatures(ctx context.Context, actor entities.CurrentUser, contractID uuid.UUID) ([]*entities.Signature, error) {
	return s.getSignaturesFn(ctx, actor, contractID)
}

func registerSignatureRoutes(r *gin.Engine, h *SignatureHandler) {
	r.POST("/signatures/tokens", h.CreateToken)
	r.GET("/signatures/tokens/:token/validate", h.ValidateToken)
	r.POST("/signatures/sign", h.Sign)
	r.POST("/signatures/guest-sign", h.GuestSign)
	r.GET("/signatures/contracts/:id", h.GetContractSignatures)
}

func TestSignatureHandler_CreateToken(t *testing.T) {
	userID := uuid.New()
	contractID := uuid.New()
	partyID := uuid.New()
	expiresAt := time.Now().Add(7 * 24 * time.Hour).UTC()

	service := signatureServiceStub{
		createTokenFn: func(_ context.Context, actor entities.CurrentUser, input entities.CreateTokenInput) (*entities.SignatureTokenResult, error) {
			assert.Equal(t, userID, actor.ID)
			assert.Equal(t, contractID, input.ContractID)
			assert.Equal(t, partyID, input.PartyID)
			return &entities.SignatureTokenResult{
				Token:     "tok-abc",
				SignURL:   "https://app.example.com/sign/tok-abc",
				ExpiresAt: expiresAt,
			}, nil
		},
	}
	r := testRouter(userID)
	registerSignatureRoutes(r, NewSignatureHandler(service))

	w := doRequest(r, jsonRequest(t, http.MethodPost, "/signatures/tokens",
		gin.H{"contractId": contractID, "partyId": partyID}))
	require.Equal(t, http.StatusCreated, w.Code)

	var result entities.SignatureTokenResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "tok-abc", result.Token)
	assert.Equal(t, "https://app.example.com/sign/tok-abc", result.SignURL)

	// missing partyId fails binding
	w = doRequest(r, jsonRequest(t, http.MethodPost, "/signatures/tokens", gin.H{"contractId": contractID}))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignatureHandler_ValidateToken(t *testing.T) {
	contractID := uuid.New()
	service := signatureServiceStub{
		validateTokenFn: func(_ context.Context, raw string) (*entities.TokenValidation, error) {
			if raw != "live-token" {
				return &entities.TokenValidation{Valid: false}, nil
			}
			return &entities.TokenValidation{Valid: true, ContractID: &contractID}, nil
		},
	}
	r := testRouter(uuid.Nil)
	registerSignatureRoutes(r, NewSignatureHandler(service))

	w := doRequest(r, jsonRequest(t, http.MethodGet, "/signatures/tokens/live-token/validate", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)

	// an unusable token is still a 200, the payload carries the answer
	w = doRequest(r, jsonRequest(t, http.MethodGet, "/signatures/tokens/dead-token/validate", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":false`)
}

func TestSignatureHandler_SignFillsEvidenceFromRequest(t *testing.T) {
	userID := uuid.New()
	var seen entities.SignInput
	service := signatureServiceStub{
		signFn: func(_ context.Context, _ entities.CurrentUser, input entities.SignInput) (*entities.SignResult, error) {
			seen = input
			return &entities.SignResult{SignatureID: uuid.New(), DocumentHash: "abc123", SignedAt: time.Now()}, nil
		},
	}
	r := testRouter(userID)
	registerSignatureRoutes(r, NewSignatureHandler(service))

	req := jsonRequest(t, http.MethodPost, "/signatures/sign",
		gin.H{"contractId": uuid.New(), "partyId": uuid.New()})
	req.Header.Set("User-Agent", "probe/1.0")
	w := doRequest(r, req)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, seen.Evidence)
	assert.Equal(t, "probe/1.0", seen.Evidence.UserAgent)
	assert.NotEmpty(t, seen.Evidence.IPAddress)
}

func TestSignatureHandler_SignKeepsCallerEvidence(t *testing.T) {
	userID := uuid.New()
	var seen entities.SignInput
	service := signatureServiceStub{
		signFn: func(_ context.Context, _ entities.CurrentUser, input entities.SignInput) (*entities.SignResult, error) {
			seen = input
			return &entities.SignResult{SignatureID: uuid.New()}, nil
		},
	}
	r := testRouter(userID)
	registerSignatureRoutes(r, NewSignatureHandler(service))

	w := doRequest(r, jsonRequest(t, http.MethodPost, "/signatures/sign", gin.H{
		"contractId": uuid.New(),
		"partyId":    uuid.New(),
		"evidence":   gin.H{"ipAddress": "203.0.113.9", "userAgent": "kiosk/2"},
	}))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "203.0.113.9", seen.Evidence.IPAddress)
	assert.Equal(t, "kiosk/2", seen.Evidence.UserAgent)
}

func TestSignatureHandler_GuestSign(t *testing.T) {
	service := signatureServiceStub{
		guestSignFn: func(_ context.Context, input entities.GuestSignInput) (*entities.SignResult, error) {
			if input.Token != "live-token" {
				return nil, domainerrors.Unauthorized("invalid or expired token")
			}
			return &entities.SignResult{SignatureID: uuid.New(), DocumentHash: "hash", SignedAt: time.Now()}, nil
		},
	}
	r := testRouter(uuid.Nil)
	registerSignatureRoutes(r, NewSignatureHandler(service))

	w := doRequest(r, jsonRequest(t, http.MethodPost, "/signatures/guest-sign", gin.H{"token": "live-token"}))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, jsonRequest(t, http.MethodPost, "/signatures/guest-sign", gin.H{"token": "used-token"}))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, jsonRequest(t, http.MethodPost, "/signatures/guest-sign", gin.H{}))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignatureHandler_GetContractSignatures(t *testing.T) {
	userID := uuid.New()
	contractID := uuid.New()
	service := signatureServiceStub{
		getSignaturesFn: func(_ context.Context, _ entities.CurrentUser, id uuid.UUID) ([]*entities.Signature, error) {
			if id != contractID {
				return nil, domainerrors.Forbidden("not your contract")
			}
			return []*entities.Signature{{ID: uuid.New(), ContractID: id}}, nil
		},
	}
	r := testRouter(userID)
	registerSignatureRoutes(r, NewSignatureHandler(service))

	w := doRequest(r, jsonRequest(t, http.MethodGet, "/signatures/contracts/"+contractID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, jsonRequest(t, http.MethodGet, "/signatures/contracts/"+uuid.New().String(), nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}
