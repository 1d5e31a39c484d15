package repositories

import (
	"context"

	"github.com/google/uuid"
	"contract-hub.backend/internal/domain/entities"
)

// ActivityLogRepository interface. Append-only: there is deliberately no
// update or delete operation.
type ActivityLogRepository interface {
	GetAll(ctx context.Context, contractID uuid.UUID) ([]*entities.ActivityLog, error)
	Create(ctx context.Context, log *entities.ActivityLog) error
}
