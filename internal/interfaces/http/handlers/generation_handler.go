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

// GenerationService is the usecase surface the handler depends on
type GenerationService interface {
	Generate(ctx context.Context, actor entities.CurrentUser, input entities.GenerateInput) (*entities.GenerateResult, error)
	GenerateAsync(ctx context.Context, actor entities.CurrentUser, input entities.GenerateInput) (*entities.GenerationJob, error)
	GetJob(ctx context.Context, actor entities.CurrentUser, jobID uuid.UUID) (*entities.GenerationJob, error)
}

var _ GenerationService = (*usecases.GenerationUsecase)(nil)

type GenerationHandler struct {
	usecase GenerationService
}

func NewGenerationHandler(usecase GenerationService) *GenerationHandler {
	return &GenerationHandler{usecase: usecase}
}

// Generate renders contract content synchronously
// POST /api/v1/ai/generate
func (h *GenerationHandler) Generate(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req entities.GenerateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	result, err := h.usecase.Generate(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GenerateAsync queues a generation job
// POST /api/v1/ai/generate-async
func (h *GenerationHandler) GenerateAsync(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req entities.GenerateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	job, err := h.usecase.GenerateAsync(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, job)
}

// GetJob returns a generation job for polling
// GET /api/v1/ai/jobs/:id
func (h *GenerationHandler) GetJob(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	job, err := h.usecase.GetJob(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, job)
}
