package repositories

import (
	"context"

	"github.com/google/uuid"
	"contract-hub.backend/internal/domain/entities"
)

// GenerationJobRepository interface
type GenerationJobRepository interface {
	Create(ctx context.Context, job *entities.GenerationJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.GenerationJob, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, content string) error
	MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string) error
}

// GenerationCacheRepository caches deterministic generation results keyed by
// a content hash of (contract type, inputs).
type GenerationCacheRepository interface {
	Get(ctx context.Context, cacheKey string) (string, bool, error)
	Put(ctx context.Context, cacheKey, content string) error
}
