package models

import (
	"time"

	"github.com/google/uuid"
)

type Signature struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ContractID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PartyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	PartyName    string    `gorm:"type:varchar(255)"`
	DocumentHash string    `gorm:"type:varchar(64);not null"`
	IPAddress    *string   `gorm:"type:varchar(45)"`
	UserAgent    *string   `gorm:"type:text"`
	Geolocation  *string   `gorm:"type:varchar(255)"`
	Evidence     string    `gorm:"type:jsonb"`
	SignedAt     time.Time `gorm:"not null"`
}

type SignatureToken struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Token      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index"`
	PartyID    uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	UsedAt     *time.Time
	CreatedAt  time.Time
}
