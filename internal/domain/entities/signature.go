package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Signature is the evidentiary record of a completed signing act.
// Immutable once created.
type Signature struct {
	ID           uuid.UUID              `json:"id"`
	ContractID   uuid.UUID              `json:"contractId"`
	PartyID      uuid.UUID              `json:"partyId"`
	PartyName    string                 `json:"partyName"`
	DocumentHash string                 `json:"documentHash"`
	IPAddress    null.String            `json:"ipAddress,omitempty"`
	UserAgent    null.String            `json:"userAgent,omitempty"`
	Geolocation  null.String            `json:"geolocation,omitempty"`
	Evidence     map[string]interface{} `json:"evidence,omitempty"`
	SignedAt     time.Time              `json:"signedAt"`
}

// SignatureToken is a single-use token that lets a guest party sign
// without an account.
type SignatureToken struct {
	ID         uuid.UUID `json:"id"`
	Token      string    `json:"token"`
	ContractID uuid.UUID `json:"contractId"`
	PartyID    uuid.UUID `json:"partyId"`
	ExpiresAt  time.Time `json:"expiresAt"`
	UsedAt     null.Time `json:"usedAt,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SignatureEvidence carries client-side evidence captured at signing time
type SignatureEvidence struct {
	IPAddress   string `json:"ipAddress,omitempty"`
	UserAgent   string `json:"userAgent,omitempty"`
	Geolocation string `json:"geolocation,omitempty"`
}

// CreateTokenInput represents input for issuing a signing token
type CreateTokenInput struct {
	ContractID       uuid.UUID `json:"contractId" binding:"required"`
	PartyID          uuid.UUID `json:"partyId" binding:"required"`
	ExpiresInMinutes int       `json:"expiresInMinutes,omitempty" binding:"omitempty,min=1,max=43200"`
}

// SignInput represents input for signing as an authenticated user
type SignInput struct {
	ContractID uuid.UUID          `json:"contractId" binding:"required"`
	PartyID    uuid.UUID          `json:"partyId" binding:"required"`
	Evidence   *SignatureEvidence `json:"evidence,omitempty"`
}

// GuestSignInput represents input for signing with a token
type GuestSignInput struct {
	Token    string             `json:"token" binding:"required"`
	Evidence *SignatureEvidence `json:"evidence,omitempty"`
}

// SignatureTokenResult is returned when a token is issued
type SignatureTokenResult struct {
	Token     string    `json:"token"`
	SignURL   string    `json:"signUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignResult is returned after a successful signing act
type SignResult struct {
	SignatureID  uuid.UUID `json:"signatureId"`
	DocumentHash string    `json:"documentHash"`
	SignedAt     time.Time `json:"signedAt"`
}

// TokenValidation is the public answer to "is this token usable?"
type TokenValidation struct {
	Valid      bool       `json:"valid"`
	ContractID *uuid.UUID `json:"contractId,omitempty"`
	PartyID    *uuid.UUID `json:"partyId,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// PublicContractView is the reduced contract view shown to a guest signer
type PublicContractView struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content,omitempty"`
}
