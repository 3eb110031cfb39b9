package models

import (
	"time"

	"github.com/google/uuid"
)

type OTP struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_otps_user_purpose"`
	Code        string    `gorm:"type:varchar(12);not null"`
	Purpose     string    `gorm:"type:varchar(32);not null;index:idx_otps_user_purpose"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	IsUsed      bool      `gorm:"not null;default:false"`
	UsedAt      *time.Time
	Attempts    int `gorm:"not null;default:0"`
	MaxAttempts int `gorm:"not null;default:3"`
	CreatedAt   time.Time
}
