package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// JobStatus tracks an async generation job
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// GenerationJob is an async content-generation request polled by id.
// Generation itself is deterministic template substitution.
type GenerationJob struct {
	ID           uuid.UUID              `json:"id"`
	ContractID   uuid.UUID              `json:"contractId"`
	OwnerUserID  uuid.UUID              `json:"-"`
	ContractType string                 `json:"contractType"`
	Inputs       map[string]interface{} `json:"inputs,omitempty"`
	Status       JobStatus              `json:"status"`
	Content      string                 `json:"content,omitempty"`
	ErrorMessage null.String            `json:"errorMessage,omitempty"`
	StartedAt    null.Time              `json:"startedAt,omitempty"`
	CompletedAt  null.Time              `json:"completedAt,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// GenerateInput represents input for content generation
type GenerateInput struct {
	ContractID   uuid.UUID              `json:"contractId" binding:"required"`
	ContractType string                 `json:"contractType" binding:"required"`
	Inputs       map[string]interface{} `json:"inputs" binding:"required"`
}

// GenerateResult is the synchronous generation response
type GenerateResult struct {
	Content  string `json:"content"`
	Cached   bool   `json:"cached"`
	CacheKey string `json:"cacheKey"`
}
