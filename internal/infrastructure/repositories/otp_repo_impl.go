package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/infrastructure/models"
)

// OTPRepository implements one-time-code data operations
type OTPRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new OTP row
func (r *OTPRepository) Create(ctx context.Context, otp *entities.OTP) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	m := &models.OTP{
		ID:          otp.ID,
		UserID:      otp.UserID,
		Code:        otp.Code,
		Purpose:     string(otp.Purpose),
		ExpiresAt:   otp.ExpiresAt,
		IsUsed:      otp.IsUsed,
		Attempts:    otp.Attempts,
		MaxAttempts: otp.MaxAttempts,
	}
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	otp.CreatedAt = m.CreatedAt
	return nil
}

// GetLatestUnused returns the most recently created unused OTP for
// (user, purpose). Expiry and attempt checks belong to the usecase so
// that each verification call re-evaluates them fresh.
func (r *OTPRepository) GetLatestUnused(ctx context.Context, userID uuid.UUID, purpose entities.OTPPurpose) (*entities.OTP, error) {
	var m models.OTP
	err := r.conn(ctx).
		Where("user_id = ? AND purpose = ? AND is_used = ?", userID, string(purpose), false).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return otpToEntity(&m), nil
}

// IncrementAttempts bumps the attempt counter by one
func (r *OTPRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Model(&models.OTP{}).Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkUsed consumes an OTP
func (r *OTPRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.conn(ctx).Model(&models.OTP{}).Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// InvalidateUnused marks all unused OTPs for (user, purpose) as used
func (r *OTPRepository) InvalidateUnused(ctx context.Context, userID uuid.UUID, purpose entities.OTPPurpose) error {
	return r.conn(ctx).Model(&models.OTP{}).
		Where("user_id = ? AND purpose = ? AND is_used = ?", userID, string(purpose), false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": time.Now(),
		}).Error
}

// DeleteExpiredBefore removes expired rows, returning the count reclaimed
func (r *OTPRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.conn(ctx).Where("expires_at < ?", cutoff).Delete(&models.OTP{})
	return result.RowsAffected, result.Error
}

// DeleteByUser removes every OTP of a user (admin cascade)
func (r *OTPRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.conn(ctx).Where("user_id = ?", userID).Delete(&models.OTP{}).Error
}

func otpToEntity(m *models.OTP) *entities.OTP {
	return &entities.OTP{
		ID:          m.ID,
		UserID:      m.UserID,
		Code:        m.Code,
		Purpose:     entities.OTPPurpose(m.Purpose),
		ExpiresAt:   m.ExpiresAt,
		IsUsed:      m.IsUsed,
		UsedAt:      null.TimeFromPtr(m.UsedAt),
		Attempts:    m.Attempts,
		MaxAttempts: m.MaxAttempts,
		CreatedAt:   m.CreatedAt,
	}
}
