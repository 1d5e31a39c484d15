package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/infrastructure/models"
)

// GenerationJobRepositoryImpl implements GenerationJobRepository
type GenerationJobRepositoryImpl struct {
	db *gorm.DB
}

func NewGenerationJobRepository(db *gorm.DB) *GenerationJobRepositoryImpl {
	return &GenerationJobRepositoryImpl{db: db}
}

func (r *GenerationJobRepositoryImpl) Create(ctx context.Context, job *entities.GenerationJob) error {
	now := time.Now().UTC()
	m := &models.GenerationJob{
		ID:           job.ID,
		ContractID:   job.ContractID,
		OwnerUserID:  job.OwnerUserID,
		ContractType: job.ContractType,
		Inputs:       marshalJSON(job.Inputs),
		Status:       string(job.Status),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	job.CreatedAt = m.CreatedAt
	job.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *GenerationJobRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.GenerationJob, error) {
	var m models.GenerationJob
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &entities.GenerationJob{
		ID:           m.ID,
		ContractID:   m.ContractID,
		OwnerUserID:  m.OwnerUserID,
		ContractType: m.ContractType,
		Inputs:       unmarshalJSON(m.Inputs),
		Status:       entities.JobStatus(m.Status),
		Content:      m.Content,
		ErrorMessage: null.StringFromPtr(m.ErrorMessage),
		StartedAt:    null.TimeFromPtr(m.StartedAt),
		CompletedAt:  null.TimeFromPtr(m.CompletedAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func (r *GenerationJobRepositoryImpl) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return GetDB(ctx, r.db).Model(&models.GenerationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(entities.JobStatusProcessing),
			"started_at": now,
			"updated_at": now,
		}).Error
}

func (r *GenerationJobRepositoryImpl) MarkCompleted(ctx context.Context, id uuid.UUID, content string) error {
	now := time.Now().UTC()
	return GetDB(ctx, r.db).Model(&models.GenerationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(entities.JobStatusCompleted),
			"content":      content,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

func (r *GenerationJobRepositoryImpl) MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string) error {
	now := time.Now().UTC()
	return GetDB(ctx, r.db).Model(&models.GenerationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        string(entities.JobStatusFailed),
			"error_message": errorMsg,
			"updated_at":    now,
		}).Error
}

// GenerationCacheRepositoryImpl implements GenerationCacheRepository
type GenerationCacheRepositoryImpl struct {
	db *gorm.DB
}

func NewGenerationCacheRepository(db *gorm.DB) *GenerationCacheRepositoryImpl {
	return &GenerationCacheRepositoryImpl{db: db}
}

func (r *GenerationCacheRepositoryImpl) Get(ctx context.Context, cacheKey string) (string, bool, error) {
	var m models.GenerationCache
	err := GetDB(ctx, r.db).Where("cache_key = ?", cacheKey).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return m.Content, true, nil
}

func (r *GenerationCacheRepositoryImpl) Put(ctx context.Context, cacheKey, content string) error {
	m := &models.GenerationCache{
		CacheKey:  cacheKey,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	err := GetDB(ctx, r.db).Create(m).Error
	if isUniqueViolation(err) {
		// Same deterministic content; losing the race is fine.
		return nil
	}
	return err
}
