package models

import (
	"time"

	"github.com/google/uuid"
)

type GenerationJob struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ContractID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerUserID  uuid.UUID `gorm:"type:uuid;not null"`
	ContractType string    `gorm:"type:varchar(100);not null"`
	Inputs       string    `gorm:"type:jsonb;not null"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	Content      string    `gorm:"type:text"`
	ErrorMessage *string   `gorm:"type:text"`
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type GenerationCache struct {
	CacheKey  string `gorm:"type:varchar(64);primaryKey"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (GenerationCache) TableName() string {
	return "generation_cache"
}
