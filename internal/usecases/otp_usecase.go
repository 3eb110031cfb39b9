package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"bankflow.backend/internal/config"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/domain/repositories"
	"bankflow.backend/pkg/crypto"
)

// Verification outcome messages returned to clients
const (
	OTPMsgVerified            = "OTP_VERIFIED"
	OTPMsgNoActive            = "NO_ACTIVE_OTP"
	OTPMsgInvalidOrExpired    = "INVALID_OR_EXPIRED"
	OTPMsgMaxAttemptsExceeded = "MAX_ATTEMPTS_EXCEEDED"
	OTPMsgAlreadyUsed         = "OTP_ALREADY_USED"
)

// otpNotifier delivers the generated code to the user. Delivery is
// best-effort and must never fail the generation itself.
type otpNotifier interface {
	SendOTPEmail(ctx context.Context, userID uuid.UUID, purpose entities.OTPPurpose, code string)
}

// OTPUsecase issues and verifies one-time codes
type OTPUsecase struct {
	otpRepo  repositories.OTPRepository
	notifier otpNotifier
	cfg      config.OTPConfig
}

// NewOTPUsecase creates a new OTP usecase
func NewOTPUsecase(otpRepo repositories.OTPRepository, notifier otpNotifier, cfg config.OTPConfig) *OTPUsecase {
	return &OTPUsecase{
		otpRepo:  otpRepo,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Create issues a fresh code for (user, purpose). Any previously issued
// unused codes for the same pair are invalidated first, so at most one
// code can ever verify.
func (u *OTPUsecase) Create(ctx context.Context, userID uuid.UUID, purpose entities.OTPPurpose) (*entities.OTP, error) {
	if err := u.otpRepo.InvalidateUnused(ctx, userID, purpose); err != nil {
		return nil, err
	}

	code, err := crypto.GenerateOTPCode(u.cfg.Digits)
	if err != nil {
		return nil, err
	}

	otp := &entities.OTP{
		UserID:      userID,
		Code:        code,
		Purpose:     purpose,
		ExpiresAt:   time.Now().Add(u.cfg.Validity),
		MaxAttempts: u.cfg.MaxAttempts,
	}

	if err := u.otpRepo.Create(ctx, otp); err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.SendOTPEmail(ctx, userID, purpose, code)
	}

	return otp, nil
}

// Verify checks a submitted code against the most recent unused OTP for
// (user, purpose). The attempt counter is bumped on every evaluated
// submission, correct or not, and expiry is re-checked on each call.
func (u *OTPUsecase) Verify(ctx context.Context, userID uuid.UUID, purpose entities.OTPPurpose, code string) (*entities.OTPVerifyResult, error) {
	otp, err := u.otpRepo.GetLatestUnused(ctx, userID, purpose)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.OTPVerifyResult{Success: false, Message: OTPMsgNoActive}, nil
		}
		return nil, err
	}

	if otp.IsUsed {
		return &entities.OTPVerifyResult{Success: false, Message: OTPMsgAlreadyUsed}, nil
	}

	if otp.Attempts >= otp.MaxAttempts {
		return &entities.OTPVerifyResult{Success: false, Message: OTPMsgMaxAttemptsExceeded}, nil
	}

	if err := u.otpRepo.IncrementAttempts(ctx, otp.ID); err != nil {
		return nil, err
	}

	if time.Now().After(otp.ExpiresAt) {
		return &entities.OTPVerifyResult{Success: false, Message: OTPMsgInvalidOrExpired}, nil
	}

	if !crypto.SecureCompare(code, otp.Code) {
		return &entities.OTPVerifyResult{Success: false, Message: OTPMsgInvalidOrExpired}, nil
	}

	if err := u.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// A concurrent verification consumed the code first
			return &entities.OTPVerifyResult{Success: false, Message: OTPMsgAlreadyUsed}, nil
		}
		return nil, err
	}

	return &entities.OTPVerifyResult{Success: true, Message: OTPMsgVerified}, nil
}

// RequireVerified runs Verify and converts any non-success outcome into an
// ErrOTPInvalid domain error, for flows gated on a valid code.
func (u *OTPUsecase) RequireVerified(ctx context.Context, userID uuid.UUID, purpose entities.OTPPurpose, code string) error {
	result, err := u.Verify(ctx, userID, purpose, code)
	if err != nil {
		return err
	}
	if !result.Success {
		return domainerrors.NewError(result.Message, domainerrors.ErrOTPInvalid)
	}
	return nil
}
