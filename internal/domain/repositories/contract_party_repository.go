package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"contract-hub.backend/internal/domain/entities"
)

// ContractPartyRepository interface
type ContractPartyRepository interface {
	GetAll(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractParty, error)
	GetByID(ctx context.Context, partyID uuid.UUID) (*entities.ContractParty, error)
	Create(ctx context.Context, party *entities.ContractParty) error
	Delete(ctx context.Context, partyID, contractID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, partyID uuid.UUID, status entities.PartySignatureStatus, signedAt *time.Time) error
	CountUnsigned(ctx context.Context, contractID uuid.UUID) (int64, error)
}
