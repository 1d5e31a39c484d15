package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"contract-hub.backend/internal/domain/entities"
	domainerrors "contract-hub.backend/internal/domain/errors"
	"contract-hub.backend/internal/interfaces/http/response"
	"contract-hub.backend/internal/usecases"
)

// SignatureService is the usecase surface the handler depends on
type SignatureService interface {
	CreateToken(ctx context.Context, actor entities.CurrentUser, input entities.CreateTokenInput) (*entities.SignatureTokenResult, error)
	ValidateToken(ctx context.Context, raw string) (*entities.TokenValidation, error)
	Sign(ctx context.Context, actor entities.CurrentUser, input entities.SignInput) (*entities.SignResult, error)
	GuestSign(ctx context.Context, input entities.GuestSignInput) (*entities.SignResult, error)
	GetContractSignatures(ctx context.Context, actor entities.CurrentUser, contractID uuid.UUID) ([]*entities.Signature, error)
}

var _ SignatureService = (*usecases.SignatureUsecase)(nil)

type SignatureHandler struct {
	usecase SignatureService
}

func NewSignatureHandler(usecase SignatureService) *SignatureHandler {
	return &SignatureHandler{usecase: usecase}
}

// CreateToken issues a single-use signing link for a party
// POST /api/v1/signatures/tokens
func (h *SignatureHandler) CreateToken(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req entities.CreateTokenInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	result, err := h.usecase.CreateToken(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// ValidateToken answers whether a signing link is usable
// GET /api/v1/signatures/tokens/:token/validate
func (h *SignatureHandler) ValidateToken(c *gin.Context) {
	result, err := h.usecase.ValidateToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Sign records a signing act by an authenticated user
// POST /api/v1/signatures/sign
func (h *SignatureHandler) Sign(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req entities.SignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}
	attachRequestEvidence(c, &req.Evidence)

	result, err := h.usecase.Sign(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// GuestSign records a signing act authorized by a single-use token
// POST /api/v1/signatures/guest-sign
func (h *SignatureHandler) GuestSign(c *gin.Context) {
	var req entities.GuestSignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}
	attachRequestEvidence(c, &req.Evidence)

	result, err := h.usecase.GuestSign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// GetContractSignatures lists the evidentiary records for a contract
// GET /api/v1/signatures/contracts/:id
func (h *SignatureHandler) GetContractSignatures(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sigs, err := h.usecase.GetContractSignatures(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sigs)
}

// attachRequestEvidence fills client evidence the caller did not supply from
// the request itself.
func attachRequestEvidence(c *gin.Context, evidence **entities.SignatureEvidence) {
	if *evidence == nil {
		*evidence = &entities.SignatureEvidence{}
	}
	if (*evidence).IPAddress == "" {
		(*evidence).IPAddress = c.ClientIP()
	}
	if (*evidence).UserAgent == "" {
		(*evidence).UserAgent = c.Request.UserAgent()
	}
}
