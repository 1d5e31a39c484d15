package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction enumerates contract-level audit actions
type ActivityAction string

const (
	ActivityCreated   ActivityAction = "CREATED"
	ActivityUpdated   ActivityAction = "UPDATED"
	ActivityGenerated ActivityAction = "GENERATED"
	ActivitySigned    ActivityAction = "SIGNED"
	ActivitySent      ActivityAction = "SENT"
	ActivityCancelled ActivityAction = "CANCELLED"
)

// ActivityLog is an append-only audit entry. Entries are written in the same
// transaction as the mutation they describe and are never updated or deleted.
type ActivityLog struct {
	ID         uuid.UUID              `json:"id"`
	ContractID uuid.UUID              `json:"contractId"`
	Action     ActivityAction         `json:"action"`
	UserID     uuid.UUID              `json:"userId"`
	UserName   string                 `json:"userName"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}
