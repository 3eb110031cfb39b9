package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"bankflow.backend/internal/domain/entities"
)

// OTPRepository defines one-time-code data operations
type OTPRepository interface {
	Create(ctx context.Context, otp *entities.OTP) error
	// GetLatestUnused returns the most recently created unused OTP for
	// (user, purpose), or ErrNotFound when none exists.
	GetLatestUnused(ctx context.Context, userID uuid.UUID, purpose entities.OTPPurpose) (*entities.OTP, error)
	// IncrementAttempts bumps the attempt counter regardless of outcome
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
	MarkUsed(ctx context.Context, id uuid.UUID) error
	// InvalidateUnused marks all unused OTPs for (user, purpose) as used so
	// at most one usable code exists per user and purpose.
	InvalidateUnused(ctx context.Context, userID uuid.UUID, purpose entities.OTPPurpose) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
