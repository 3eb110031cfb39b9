package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction rows are append-only; status flips PENDING → COMPLETED inside
// the same database transaction as the balance update, so no soft delete.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SenderAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            string          `gorm:"type:varchar(20);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,3);not null"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	Reference       string          `gorm:"type:varchar(64);not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Transfer struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SenderAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BeneficiaryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,3);not null"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	Reference       string          `gorm:"type:varchar(64);not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
