package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Beneficiary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	BankName   string    `gorm:"type:varchar(100);not null"`
	IBAN       string    `gorm:"type:varchar(34);not null"`
	Email      *string   `gorm:"type:varchar(255)"`
	IsVerified bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
