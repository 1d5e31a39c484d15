package repositories

import (
	"context"

	"github.com/google/uuid"
	"contract-hub.backend/internal/domain/entities"
)

// UserRepository interface
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// GetOrCreate auto-provisions an account for an authenticated identity.
	// Concurrent first logins race on the unique email constraint; the loser
	// re-reads instead of failing, bounded by a fixed attempt count.
	GetOrCreate(ctx context.Context, id uuid.UUID, email, name string) (*entities.User, error)
}
