package repositories

import (
	"context"

	"github.com/google/uuid"
	"contract-hub.backend/internal/domain/entities"
)

// ContractVersionRepository interface
type ContractVersionRepository interface {
	GetAll(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractVersion, error)
	GetLatest(ctx context.Context, contractID uuid.UUID) (*entities.ContractVersion, error)
	// Append creates the next version as (max existing)+1, starting at 1.
	// Concurrent appends are serialized by the unique (contract_id, version)
	// constraint; on collision the losing writer recomputes and retries up
	// to a bounded attempt count.
	Append(ctx context.Context, contractID uuid.UUID, content string, source entities.VersionSource, createdBy uuid.UUID) (*entities.ContractVersion, error)
}
