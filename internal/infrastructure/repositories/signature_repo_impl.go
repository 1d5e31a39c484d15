package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/infrastructure/models"
)

// SignatureRepositoryImpl implements SignatureRepository
type SignatureRepositoryImpl struct {
	db *gorm.DB
}

func NewSignatureRepository(db *gorm.DB) *SignatureRepositoryImpl {
	return &SignatureRepositoryImpl{db: db}
}

func (r *SignatureRepositoryImpl) Create(ctx context.Context, sig *entities.Signature) error {
	if sig.SignedAt.IsZero() {
		sig.SignedAt = time.Now().UTC()
	}
	m := &models.Signature{
		ID:           sig.ID,
		ContractID:   sig.ContractID,
		PartyID:      sig.PartyID,
		PartyName:    sig.PartyName,
		DocumentHash: sig.DocumentHash,
		IPAddress:    sig.IPAddress.Ptr(),
		UserAgent:    sig.UserAgent.Ptr(),
		Geolocation:  sig.Geolocation.Ptr(),
		Evidence:     marshalJSON(sig.Evidence),
		SignedAt:     sig.SignedAt,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *SignatureRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Signature, error) {
	var m models.Signature
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *SignatureRepositoryImpl) GetByContract(ctx context.Context, contractID uuid.UUID) ([]*entities.Signature, error) {
	var ms []models.Signature
	if err := GetDB(ctx, r.db).
		Where("contract_id = ?", contractID).
		Order("signed_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	sigs := make([]*entities.Signature, 0, len(ms))
	for i := range ms {
		sigs = append(sigs, r.toEntity(&ms[i]))
	}
	return sigs, nil
}

func (r *SignatureRepositoryImpl) GetByParty(ctx context.Context, partyID uuid.UUID) (*entities.Signature, error) {
	var m models.Signature
	if err := GetDB(ctx, r.db).Where("party_id = ?", partyID).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *SignatureRepositoryImpl) toEntity(m *models.Signature) *entities.Signature {
	return &entities.Signature{
		ID:           m.ID,
		ContractID:   m.ContractID,
		PartyID:      m.PartyID,
		PartyName:    m.PartyName,
		DocumentHash: m.DocumentHash,
		IPAddress:    null.StringFromPtr(m.IPAddress),
		UserAgent:    null.StringFromPtr(m.UserAgent),
		Geolocation:  null.StringFromPtr(m.Geolocation),
		Evidence:     unmarshalJSON(m.Evidence),
		SignedAt:     m.SignedAt,
	}
}

// SignatureTokenRepositoryImpl implements SignatureTokenRepository
type SignatureTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewSignatureTokenRepository(db *gorm.DB) *SignatureTokenRepositoryImpl {
	return &SignatureTokenRepositoryImpl{db: db}
}

func (r *SignatureTokenRepositoryImpl) Create(ctx context.Context, token *entities.SignatureToken) error {
	m := &models.SignatureToken{
		ID:         token.ID,
		Token:      token.Token,
		ContractID: token.ContractID,
		PartyID:    token.PartyID,
		ExpiresAt:  token.ExpiresAt,
		CreatedAt:  time.Now().UTC(),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	token.CreatedAt = m.CreatedAt
	return nil
}

func (r *SignatureTokenRepositoryImpl) Validate(ctx context.Context, token string) (*entities.SignatureToken, error) {
	var m models.SignatureToken
	err := GetDB(ctx, r.db).
		Where("token = ? AND used_at IS NULL AND expires_at > ?", token, time.Now().UTC()).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &entities.SignatureToken{
		ID:         m.ID,
		Token:      m.Token,
		ContractID: m.ContractID,
		PartyID:    m.PartyID,
		ExpiresAt:  m.ExpiresAt,
		UsedAt:     null.TimeFromPtr(m.UsedAt),
		CreatedAt:  m.CreatedAt,
	}, nil
}

func (r *SignatureTokenRepositoryImpl) MarkUsed(ctx context.Context, token string) error {
	return GetDB(ctx, r.db).Model(&models.SignatureToken{}).
		Where("token = ?", token).
		Update("used_at", time.Now().UTC()).Error
}

func (r *SignatureTokenRepositoryImpl) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := GetDB(ctx, r.db).
		Where("expires_at < ?", cutoff).
		Delete(&models.SignatureToken{})
	return res.RowsAffected, res.Error
}
