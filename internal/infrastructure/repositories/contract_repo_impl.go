package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"contract-hub.backend/internal/domain/entities"
	domainRepos "contract-hub.backend/internal/domain/repositories"
	"contract-hub.backend/internal/infrastructure/models"
)

// ContractRepositoryImpl implements ContractRepository
type ContractRepositoryImpl struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepositoryImpl {
	return &ContractRepositoryImpl{db: db}
}

func (r *ContractRepositoryImpl) Create(ctx context.Context, contract *entities.Contract) error {
	now := time.Now().UTC()
	m := &models.Contract{
		ID:           contract.ID,
		Title:        contract.Title,
		ContractType: contract.ContractType,
		TemplateID:   contract.TemplateID,
		OwnerUserID:  contract.OwnerUserID,
		Status:       string(contract.Status),
		Metadata:     marshalJSON(contract.Metadata),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	contract.CreatedAt = m.CreatedAt
	contract.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ContractRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*entities.Contract, error) {
	q := GetDB(ctx, r.db)
	if includeDeleted {
		q = q.Unscoped()
	}
	var m models.Contract
	if err := q.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

var contractSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"status":    "status",
}

func (r *ContractRepositoryImpl) List(ctx context.Context, ownerID uuid.UUID, query entities.ContractListQuery) ([]*entities.Contract, int64, error) {
	db := GetDB(ctx, r.db)

	base := db.Model(&models.Contract{}).Where("owner_user_id = ?", ownerID)

	f := query.Filter
	if f.Status != "" {
		base = base.Where("status = ?", string(f.Status))
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		base = base.Where("LOWER(title) LIKE ? OR LOWER(contract_type) LIKE ?", pattern, pattern)
	}
	if f.TemplateID != "" {
		base = base.Where("template_id = ?", f.TemplateID)
	}
	if f.FromDate.Valid {
		base = base.Where("created_at >= ?", f.FromDate.Time)
	}
	if f.ToDate.Valid {
		base = base.Where("created_at <= ?", f.ToDate.Time)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := contractSortColumns[query.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(query.SortOrder, "asc") {
		direction = "ASC"
	}

	offset := (query.Page - 1) * query.PageSize

	var ms []models.Contract
	if err := base.
		Order(column + " " + direction).
		Limit(query.PageSize).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	contracts := make([]*entities.Contract, 0, len(ms))
	for i := range ms {
		contracts = append(contracts, r.toEntity(&ms[i]))
	}
	return contracts, total, nil
}

func (r *ContractRepositoryImpl) Update(ctx context.Context, id uuid.UUID, patch domainRepos.ContractPatch) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Metadata != nil {
		updates["metadata"] = marshalJSON(patch.Metadata)
	}
	return GetDB(ctx, r.db).Model(&models.Contract{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ContractRepositoryImpl) UpdateStatusCAS(ctx context.Context, id uuid.UUID, expected, next entities.ContractStatus, signedAt bool) (bool, error) {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":     string(next),
		"updated_at": now,
	}
	if signedAt {
		updates["signed_at"] = now
	}
	res := GetDB(ctx, r.db).Model(&models.Contract{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ContractRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := GetDB(ctx, r.db).Model(&models.Contract{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now().UTC())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HardDelete removes the contract and everything it owns. The cascade is
// explicit so it also holds on stores without FK ON DELETE CASCADE.
func (r *ContractRepositoryImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", id).Delete(&models.ContractVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contract_id = ?", id).Delete(&models.ContractParty{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contract_id = ?", id).Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", id).Delete(&models.Contract{}).Error
	})
}

func (r *ContractRepositoryImpl) Stats(ctx context.Context, ownerID uuid.UUID) (*entities.ContractStats, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&models.Contract{}).
		Where("owner_user_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&models.Contract{}).
		Select("status, COUNT(*) as count").
		Where("owner_user_id = ?", ownerID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byStatus := make(map[entities.ContractStatus]int64, len(counts))
	for _, c := range counts {
		byStatus[entities.ContractStatus(c.Status)] = c.Count
	}

	now := time.Now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var signedThisMonth int64
	if err := db.Model(&models.Contract{}).
		Where("owner_user_id = ? AND status = ? AND signed_at >= ?",
			ownerID, string(entities.ContractStatusSigned), startOfMonth).
		Count(&signedThisMonth).Error; err != nil {
		return nil, err
	}

	return &entities.ContractStats{
		Total:             total,
		ByStatus:          byStatus,
		PendingSignatures: byStatus[entities.ContractStatusSigning],
		SignedThisMonth:   signedThisMonth,
	}, nil
}

func (r *ContractRepositoryImpl) Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*entities.Contract, error) {
	var ms []models.Contract
	if err := GetDB(ctx, r.db).
		Where("owner_user_id = ?", ownerID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	contracts := make([]*entities.Contract, 0, len(ms))
	for i := range ms {
		contracts = append(contracts, r.toEntity(&ms[i]))
	}
	return contracts, nil
}

func (r *ContractRepositoryImpl) Pending(ctx context.Context, ownerID uuid.UUID) ([]*entities.Contract, error) {
	var ms []models.Contract
	if err := GetDB(ctx, r.db).
		Where("owner_user_id = ? AND status IN ?", ownerID, []string{
			string(entities.ContractStatusDraft),
			string(entities.ContractStatusGenerated),
			string(entities.ContractStatusSigning),
		}).
		Order("updated_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	contracts := make([]*entities.Contract, 0, len(ms))
	for i := range ms {
		contracts = append(contracts, r.toEntity(&ms[i]))
	}
	return contracts, nil
}

func (r *ContractRepositoryImpl) toEntity(m *models.Contract) *entities.Contract {
	c := &entities.Contract{
		ID:           m.ID,
		Title:        m.Title,
		ContractType: m.ContractType,
		TemplateID:   m.TemplateID,
		OwnerUserID:  m.OwnerUserID,
		Status:       entities.ContractStatus(m.Status),
		Metadata:     unmarshalJSON(m.Metadata),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		SignedAt:     null.TimeFromPtr(m.SignedAt),
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		c.DeletedAt = &t
	}
	return c
}
