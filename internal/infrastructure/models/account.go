package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,3);not null;default:0"`
	Currency  string          `gorm:"type:varchar(10);not null"`
	Status    string          `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
