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

// getOrCreateAttempts bounds the auto-provisioning retry loop.
const getOrCreateAttempts = 3

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	now := time.Now().UTC()
	m := &models.User{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetOrCreate auto-provisions a row for an authenticated identity. Two
// simultaneous first logins race on the unique email index; the loser falls
// back to reading the winner's row instead of surfacing the violation.
func (r *UserRepositoryImpl) GetOrCreate(ctx context.Context, id uuid.UUID, email, name string) (*entities.User, error) {
	var lastErr error
	for attempt := 0; attempt < getOrCreateAttempts; attempt++ {
		user, err := r.GetByEmail(ctx, email)
		if err == nil {
			return user, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		user = &entities.User{ID: id, Email: email, Name: name}
		err = r.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("user auto-provisioning lost %d races for %s: %w",
		getOrCreateAttempts, email, lastErr)
}

func (r *UserRepositoryImpl) toEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		u.DeletedAt = &t
	}
	return u
}
