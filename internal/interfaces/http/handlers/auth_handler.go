package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"contract-hub.backend/internal/domain/entities"
	domainerrors "contract-hub.backend/internal/domain/errors"
	"contract-hub.backend/internal/interfaces/http/middleware"
	"contract-hub.backend/internal/interfaces/http/response"
	"contract-hub.backend/internal/usecases"
)

// AuthService is the usecase surface the handler depends on
type AuthService interface {
	Register(ctx context.Context, input entities.RegisterInput) (*entities.AuthResponse, error)
	Login(ctx context.Context, input entities.LoginInput) (*entities.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error)
	Me(ctx context.Context, actor entities.CurrentUser) (*entities.User, error)
}

var _ AuthService = (*usecases.AuthUsecase)(nil)

type AuthHandler struct {
	usecase AuthService
}

func NewAuthHandler(usecase AuthService) *AuthHandler {
	return &AuthHandler{usecase: usecase}
}

// Register creates an account
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req entities.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	result, err := h.usecase.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Login authenticates by email and password
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req entities.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	result, err := h.usecase.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh exchanges a refresh token for a new pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	result, err := h.usecase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Me returns the authenticated account
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	user, err := h.usecase.Me(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
