package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/infrastructure/models"
)

// ActivityLogRepositoryImpl implements ActivityLogRepository.
// Insert and read only; the trail is never rewritten.
type ActivityLogRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepositoryImpl {
	return &ActivityLogRepositoryImpl{db: db}
}

func (r *ActivityLogRepositoryImpl) GetAll(ctx context.Context, contractID uuid.UUID) ([]*entities.ActivityLog, error) {
	var ms []models.ActivityLog
	if err := GetDB(ctx, r.db).
		Where("contract_id = ?", contractID).
		Order("timestamp DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	logs := make([]*entities.ActivityLog, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		logs = append(logs, &entities.ActivityLog{
			ID:         m.ID,
			ContractID: m.ContractID,
			Action:     entities.ActivityAction(m.Action),
			UserID:     m.UserID,
			UserName:   m.UserName,
			Details:    unmarshalJSON(m.Details),
			Timestamp:  m.Timestamp,
		})
	}
	return logs, nil
}

func (r *ActivityLogRepositoryImpl) Create(ctx context.Context, log *entities.ActivityLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	m := &models.ActivityLog{
		ID:         log.ID,
		ContractID: log.ContractID,
		Action:     string(log.Action),
		UserID:     log.UserID,
		UserName:   log.UserName,
		Details:    marshalJSON(log.Details),
		Timestamp:  log.Timestamp,
	}
	return GetDB(ctx, r.db).Create(m).Error
}
