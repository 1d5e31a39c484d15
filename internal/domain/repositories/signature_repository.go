package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"contract-hub.backend/internal/domain/entities"
)

// SignatureRepository interface
type SignatureRepository interface {
	Create(ctx context.Context, sig *entities.Signature) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Signature, error)
	GetByContract(ctx context.Context, contractID uuid.UUID) ([]*entities.Signature, error)
	GetByParty(ctx context.Context, partyID uuid.UUID) (*entities.Signature, error)
}

// SignatureTokenRepository interface
type SignatureTokenRepository interface {
	Create(ctx context.Context, token *entities.SignatureToken) error
	// Validate returns the token only when it exists, is unused, and has
	// not expired.
	Validate(ctx context.Context, token string) (*entities.SignatureToken, error)
	MarkUsed(ctx context.Context, token string) error
	// PurgeExpired removes tokens that expired before the cutoff.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
