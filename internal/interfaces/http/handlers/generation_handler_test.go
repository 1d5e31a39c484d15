package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"contract-hub.backend/internal/domain/entities"
	domainerrors "contract-hub.backend/internal/domain/errors"
)

type generationServiceStub struct {
	generateFn      func(ctx context.Context, actor entities.CurrentUser, input entities.GenerateInput) (*entities.GenerateResult, error)
	generateAsyncFn func(ctx context.Context, actor entities.CurrentUser, input entities.GenerateInput) (*entities.GenerationJob, error)
	getJobFn        func(ctx context.Context, actor entities.CurrentUser, jobID uuid.UUID) (*entities.GenerationJob, error)
}

func (s generationServiceStub) Generate(ctx context.Context, actor entities.CurrentUser, input entities.GenerateInput) (*entities.GenerateResult, error) {
	return s.generateFn(ctx, actor, input)
}
func (s generationServiceStub) GenerateAsync(ctx context.Context, actor entities.CurrentUser, input entities.GenerateInput) (*entities.GenerationJob, error) {
	return s.generateAsyncFn(ctx, actor, input)
}
func (s generationServiceStub) GetJob(ctx context.Context, actor entities.CurrentUser, jobID uuid.UUID) (*entities.GenerationJob, error) {
	return s.getJobFn(ctx, actor, jobID)
}

func registerGenerationRoutes(r *gin.Engine, h *GenerationHandler) {
	r.POST("/ai/generate", h.Generate)
	r.POST("/ai/generate-async", h.GenerateAsync)
	r.GET("/ai/jobs/:id", h.GetJob)
}

func TestGenerationHandler_Generate(t *testing.T) {
	userID := uuid.New()
	contractID := uuid.New()
	service := generationServiceStub{
		generateFn: func(_ context.Context, _ entities.CurrentUser, input entities.GenerateInput) (*entities.GenerateResult, error) {
			assert.Equal(t, contractID, input.ContractID)
			assert.Equal(t, "rental", input.ContractType)
			return &entities.GenerateResult{Content: "RENTAL AGREEMENT", Cached: true, CacheKey: "deadbeef"}, nil
		},
	}
	r := testRouter(userID)
	registerGenerationRoutes(r, NewGenerationHandler(service))

	w := doRequest(r, jsonRequest(t, http.MethodPost, "/ai/generate", gin.H{
		"contractId":   contractID,
		"contractType": "rental",
		"inputs":       gin.H{"landlord": "Ada"},
	}))
	require.Equal(t, http.StatusOK, w.Code)

	var result entities.GenerateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Cached)
	assert.Equal(t, "RENTAL AGREEMENT", result.Content)

	// missing inputs fails binding
	w = doRequest(r, jsonRequest(t, http.MethodPost, "/ai/generate",
		gin.H{"contractId": contractID, "contractType": "rental"}))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerationHandler_GenerateAsyncIsAccepted(t *testing.T) {
	userID := uuid.New()
	jobID := uuid.New()
	service := generationServiceStub{
		generateAsyncFn: func(_ context.Context, _ entities.CurrentUser, _ entities.GenerateInput) (*entities.GenerationJob, error) {
			return &entities.GenerationJob{ID: jobID, Status: entities.JobStatusPending}, nil
		},
	}
	r := testRouter(userID)
	registerGenerationRoutes(r, NewGenerationHandler(service))

	w := doRequest(r, jsonRequest(t, http.MethodPost, "/ai/generate-async", gin.H{
		"contractId":   uuid.New(),
		"contractType": "rental",
		"inputs":       gin.H{},
	}))
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), jobID.String())
}

func TestGenerationHandler_GetJob(t *testing.T) {
	userID := uuid.New()
	jobID := uuid.New()
	service := generationServiceStub{
		getJobFn: func(_ context.Context, _ entities.CurrentUser, id uuid.UUID) (*entities.GenerationJob, error) {
			if id != jobID {
				return nil, domainerrors.NotFound("job not found")
			}
			return &entities.GenerationJob{ID: id, Status: entities.JobStatusCompleted, Content: "done"}, nil
		},
	}
	r := testRouter(userID)
	registerGenerationRoutes(r, NewGenerationHandler(service))

	w := doRequest(r, jsonRequest(t, http.MethodGet, "/ai/jobs/"+jobID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(entities.JobStatusCompleted))

	w = doRequest(r, jsonRequest(t, http.MethodGet, "/ai/jobs/"+uuid.New().String(), nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, jsonRequest(t, http.MethodGet, "/ai/jobs/oops", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
