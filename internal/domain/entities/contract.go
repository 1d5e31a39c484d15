package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ContractStatus represents the lifecycle status of a contract
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "DRAFT"
	ContractStatusGenerated ContractStatus = "GENERATED"
	ContractStatusSigning   ContractStatus = "SIGNING"
	ContractStatusSigned    ContractStatus = "SIGNED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
	ContractStatusExpired   ContractStatus = "EXPIRED"
)

// IsTerminal reports whether no further transitions are possible.
func (s ContractStatus) IsTerminal() bool {
	switch s {
	case ContractStatusSigned, ContractStatusCancelled, ContractStatusExpired:
		return true
	}
	return false
}

// VersionSource identifies who produced a content snapshot
type VersionSource string

const (
	VersionSourceAI   VersionSource = "AI"
	VersionSourceUser VersionSource = "USER"
)

// Contract represents a contract owned by a single user
type Contract struct {
	ID           uuid.UUID              `json:"id"`
	Title        string                 `json:"title"`
	ContractType string                 `json:"contractType"`
	TemplateID   string                 `json:"templateId"`
	OwnerUserID  uuid.UUID              `json:"ownerUserId"`
	Status       ContractStatus         `json:"status"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
	SignedAt     null.Time              `json:"signedAt,omitempty"`
	DeletedAt    *time.Time             `json:"-"`
}

// ContractVersion is a full content snapshot, never edited in place
type ContractVersion struct {
	ID         uuid.UUID     `json:"id"`
	ContractID uuid.UUID     `json:"contractId"`
	Version    int           `json:"version"`
	Content    string        `json:"content"`
	Source     VersionSource `json:"source"`
	CreatedBy  uuid.UUID     `json:"createdBy"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// ContractDetail is a contract with its latest content and roster attached
type ContractDetail struct {
	Contract
	Content   string           `json:"content,omitempty"`
	Parties   []*ContractParty `json:"parties"`
	Signature []*Signature     `json:"signatures"`
}

// CreateContractInput represents input for creating a contract
type CreateContractInput struct {
	Title        string `json:"title" binding:"required,min=3,max=500"`
	TemplateID   string `json:"templateId" binding:"required"`
	ContractType string `json:"contractType" binding:"required"`
}

// UpdateContractInput is a partial metadata patch; nil fields are not applied
type UpdateContractInput struct {
	Title    *string                `json:"title,omitempty" binding:"omitempty,min=3,max=500"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateContentInput represents input for appending a content version
type UpdateContentInput struct {
	Content string        `json:"content" binding:"required"`
	Source  VersionSource `json:"source,omitempty"`
}

// UpdateStatusInput represents input for a status transition request
type UpdateStatusInput struct {
	Status ContractStatus `json:"status" binding:"required"`
	Reason string         `json:"reason,omitempty"`
}

// ContractFilter holds list query filters
type ContractFilter struct {
	Status     ContractStatus
	Search     string
	TemplateID string
	FromDate   null.Time
	ToDate     null.Time
}

// ContractListQuery combines filters with pagination and sorting
type ContractListQuery struct {
	Filter    ContractFilter
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ContractStats is the owner's dashboard aggregate
type ContractStats struct {
	Total             int64                    `json:"total"`
	ByStatus          map[ContractStatus]int64 `json:"byStatus"`
	PendingSignatures int64                    `json:"pendingSignatures"`
	SignedThisMonth   int64                    `json:"signedThisMonth"`
}
