package repositories

import (
	"context"

	"github.com/google/uuid"
	"contract-hub.backend/internal/domain/entities"
)

// ContractRepository interface
type ContractRepository interface {
	Create(ctx context.Context, contract *entities.Contract) error
	// GetByID returns a live contract; soft-deleted rows are invisible
	// unless includeDeleted is set.
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*entities.Contract, error)
	List(ctx context.Context, ownerID uuid.UUID, query entities.ContractListQuery) ([]*entities.Contract, int64, error)
	// Update applies only the non-nil fields of the patch.
	Update(ctx context.Context, id uuid.UUID, patch ContractPatch) error
	// UpdateStatusCAS atomically moves status from expected to next.
	// Returns false when the row was not in the expected status.
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, expected, next entities.ContractStatus, signedAt bool) (bool, error)
	// SoftDelete is idempotent: false when already deleted or absent.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
	// HardDelete removes the contract and all owned rows in one transaction.
	// Administrative escape hatch; soft delete is the normal path.
	HardDelete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID) (*entities.ContractStats, error)
	Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*entities.Contract, error)
	Pending(ctx context.Context, ownerID uuid.UUID) ([]*entities.Contract, error)
}

// ContractPatch is a partial contract update; nil fields are left untouched.
type ContractPatch struct {
	Title    *string
	Metadata map[string]interface{}
}
