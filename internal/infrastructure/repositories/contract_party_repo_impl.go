package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"contract-hub.backend/internal/domain/entities"
	domainerrors "contract-hub.backend/internal/domain/errors"
	"contract-hub.backend/internal/infrastructure/models"
)

// ContractPartyRepositoryImpl implements ContractPartyRepository
type ContractPartyRepositoryImpl struct {
	db *gorm.DB
}

func NewContractPartyRepository(db *gorm.DB) *ContractPartyRepositoryImpl {
	return &ContractPartyRepositoryImpl{db: db}
}

func (r *ContractPartyRepositoryImpl) GetAll(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractParty, error) {
	var ms []models.ContractParty
	if err := GetDB(ctx, r.db).
		Where("contract_id = ?", contractID).
		Order("signing_order ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	parties := make([]*entities.ContractParty, 0, len(ms))
	for i := range ms {
		parties = append(parties, r.toEntity(&ms[i]))
	}
	return parties, nil
}

func (r *ContractPartyRepositoryImpl) GetByID(ctx context.Context, partyID uuid.UUID) (*entities.ContractParty, error) {
	var m models.ContractParty
	if err := GetDB(ctx, r.db).Where("id = ?", partyID).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ContractPartyRepositoryImpl) Create(ctx context.Context, party *entities.ContractParty) error {
	m := &models.ContractParty{
		ID:              party.ID,
		ContractID:      party.ContractID,
		Role:            string(party.Role),
		Name:            party.Name,
		Email:           party.Email,
		SignatureStatus: string(party.SignatureStatus),
		SigningOrder:    party.SigningOrder,
		CreatedAt:       time.Now().UTC(),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		// The unique (contract_id, email) index is the authority on duplicates;
		// a pre-insert roster check can lose a race to a concurrent add.
		if isUniqueViolation(err) {
			return fmt.Errorf("party %s already on contract %s: %w",
				m.Email, m.ContractID, domainerrors.ErrAlreadyExists)
		}
		return err
	}
	party.CreatedAt = m.CreatedAt
	return nil
}

func (r *ContractPartyRepositoryImpl) Delete(ctx context.Context, partyID, contractID uuid.UUID) (bool, error) {
	res := GetDB(ctx, r.db).
		Where("id = ? AND contract_id = ?", partyID, contractID).
		Delete(&models.ContractParty{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ContractPartyRepositoryImpl) UpdateStatus(ctx context.Context, partyID uuid.UUID, status entities.PartySignatureStatus, signedAt *time.Time) error {
	updates := map[string]interface{}{
		"signature_status": string(status),
	}
	if signedAt != nil {
		updates["signed_at"] = *signedAt
	}
	return GetDB(ctx, r.db).Model(&models.ContractParty{}).
		Where("id = ?", partyID).
		Updates(updates).Error
}

func (r *ContractPartyRepositoryImpl) CountUnsigned(ctx context.Context, contractID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.ContractParty{}).
		Where("contract_id = ? AND signature_status <> ?", contractID, string(entities.PartyStatusSigned)).
		Count(&count).Error
	return count, err
}

func (r *ContractPartyRepositoryImpl) toEntity(m *models.ContractParty) *entities.ContractParty {
	return &entities.ContractParty{
		ID:              m.ID,
		ContractID:      m.ContractID,
		Role:            entities.PartyRole(m.Role),
		Name:            m.Name,
		Email:           m.Email,
		SignatureStatus: entities.PartySignatureStatus(m.SignatureStatus),
		SignedAt:        null.TimeFromPtr(m.SignedAt),
		SigningOrder:    m.SigningOrder,
		CreatedAt:       m.CreatedAt,
	}
}
