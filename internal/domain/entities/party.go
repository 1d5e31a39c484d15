package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PartyRole represents a party's role on a contract
type PartyRole string

const (
	PartyRoleHost    PartyRole = "HOST"
	PartyRoleGuest   PartyRole = "GUEST"
	PartyRoleWitness PartyRole = "WITNESS"
)

// PartySignatureStatus tracks a party through the signing funnel.
// Transitions are monotonic: PENDING -> INVITED -> SIGNED.
type PartySignatureStatus string

const (
	PartyStatusPending PartySignatureStatus = "PENDING"
	PartyStatusInvited PartySignatureStatus = "INVITED"
	PartyStatusSigned  PartySignatureStatus = "SIGNED"
)

// ContractParty is a named signer or witness attached to a contract.
// A given email appears at most once per contract.
type ContractParty struct {
	ID              uuid.UUID            `json:"id"`
	ContractID      uuid.UUID            `json:"contractId"`
	Role            PartyRole            `json:"role"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	SignatureStatus PartySignatureStatus `json:"signatureStatus"`
	SignedAt        null.Time            `json:"signedAt,omitempty"`
	SigningOrder    int                  `json:"order"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// AddPartyInput represents input for adding a party to a contract
type AddPartyInput struct {
	Role  PartyRole `json:"role" binding:"required,oneof=HOST GUEST WITNESS"`
	Name  string    `json:"name" binding:"required,max=255"`
	Email string    `json:"email" binding:"required,email"`
	Order int       `json:"order,omitempty" binding:"omitempty,min=1"`
}
