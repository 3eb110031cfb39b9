package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// NotificationType classifies a dispatched email
type NotificationType string

const (
	NotificationTypeOTP            NotificationType = "OTP"
	NotificationTypeTransaction    NotificationType = "TRANSACTION"
	NotificationTypeWelcome        NotificationType = "WELCOME"
	NotificationTypePasswordChange NotificationType = "PASSWORD_CHANGE"
	NotificationTypeNews           NotificationType = "NEWS"
)

// Notification is an append-only record of a dispatched email.
// It is written after a best-effort external send and is never part of
// the financial atomicity boundary.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	SentAt    null.Time        `json:"sentAt,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// BroadcastNewsInput is the admin bank-news payload
type BroadcastNewsInput struct {
	Title   string `json:"title" binding:"required,min=2,max=200"`
	Content string `json:"content" binding:"required"`
}
