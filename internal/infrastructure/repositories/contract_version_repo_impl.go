package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/infrastructure/models"
)

// versionAppendAttempts bounds the retry loop on version-number collisions.
// The bound is part of the operation's contract, not an implementation detail.
const versionAppendAttempts = 3

// ContractVersionRepositoryImpl implements ContractVersionRepository
type ContractVersionRepositoryImpl struct {
	db *gorm.DB
}

func NewContractVersionRepository(db *gorm.DB) *ContractVersionRepositoryImpl {
	return &ContractVersionRepositoryImpl{db: db}
}

func (r *ContractVersionRepositoryImpl) GetAll(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractVersion, error) {
	var ms []models.ContractVersion
	if err := GetDB(ctx, r.db).
		Where("contract_id = ?", contractID).
		Order("version DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	versions := make([]*entities.ContractVersion, 0, len(ms))
	for i := range ms {
		versions = append(versions, r.toEntity(&ms[i]))
	}
	return versions, nil
}

func (r *ContractVersionRepositoryImpl) GetLatest(ctx context.Context, contractID uuid.UUID) (*entities.ContractVersion, error) {
	var m models.ContractVersion
	if err := GetDB(ctx, r.db).
		Where("contract_id = ?", contractID).
		Order("version DESC").
		First(&m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Append inserts the next snapshot. Two concurrent appends may compute the
// same next number; the unique (contract_id, version) index rejects the
// loser, which recomputes from a fresh read and tries again. Each attempt
// runs in its own nested transaction (a savepoint when the caller already
// holds one): postgres aborts the surrounding transaction on a constraint
// error, and the savepoint rollback keeps the enclosing unit of work usable
// for the retry.
func (r *ContractVersionRepositoryImpl) Append(ctx context.Context, contractID uuid.UUID, content string, source entities.VersionSource, createdBy uuid.UUID) (*entities.ContractVersion, error) {
	db := GetDB(ctx, r.db)

	var lastErr error
	for attempt := 0; attempt < versionAppendAttempts; attempt++ {
		next, err := r.nextVersion(db, contractID)
		if err != nil {
			return nil, err
		}

		m := &models.ContractVersion{
			ID:         uuid.New(),
			ContractID: contractID,
			Version:    next,
			Content:    content,
			Source:     string(source),
			CreatedBy:  createdBy,
			CreatedAt:  time.Now().UTC(),
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(m).Error
		})
		if err == nil {
			return r.toEntity(m), nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("version append lost %d races for contract %s: %w",
		versionAppendAttempts, contractID, lastErr)
}

func (r *ContractVersionRepositoryImpl) nextVersion(db *gorm.DB, contractID uuid.UUID) (int, error) {
	var max int
	err := db.Model(&models.ContractVersion{}).
		Select("COALESCE(MAX(version), 0)").
		Where("contract_id = ?", contractID).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *ContractVersionRepositoryImpl) toEntity(m *models.ContractVersion) *entities.ContractVersion {
	return &entities.ContractVersion{
		ID:         m.ID,
		ContractID: m.ContractID,
		Version:    m.Version,
		Content:    m.Content,
		Source:     entities.VersionSource(m.Source),
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}
