package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contract struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Title        string    `gorm:"type:varchar(500);not null"`
	ContractType string    `gorm:"type:varchar(100);not null"`
	TemplateID   string    `gorm:"type:varchar(100);not null"`
	OwnerUserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	Metadata     string    `gorm:"type:jsonb"`
	SignedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

type ContractVersion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contract_version"`
	Version    int       `gorm:"not null;uniqueIndex:idx_contract_version;check:version > 0"`
	Content    string    `gorm:"type:text;not null"`
	Source     string    `gorm:"type:varchar(10);not null"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

type ContractParty struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ContractID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_party_email"`
	Role            string    `gorm:"type:varchar(10);not null"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_party_email"`
	SignatureStatus string    `gorm:"type:varchar(10);not null"`
	SignedAt        *time.Time
	SigningOrder    int `gorm:"not null;default:1;check:signing_order > 0"`
	CreatedAt       time.Time
}

type ActivityLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"type:varchar(20);not null"`
	UserID     uuid.UUID `gorm:"type:uuid;not null"`
	UserName   string    `gorm:"type:varchar(255);not null"`
	Details    string    `gorm:"type:jsonb"`
	Timestamp  time.Time `gorm:"not null;index"`
}
