package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	FirstName     string    `gorm:"type:varchar(100);not null"`
	LastName      string    `gorm:"type:varchar(100);not null"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone         *string   `gorm:"type:varchar(32);uniqueIndex"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Role          string    `gorm:"type:varchar(50);not null;default:'user'"`
	IsActive      bool      `gorm:"not null;default:true"`
	EmailVerified bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
