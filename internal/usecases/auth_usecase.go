package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"bankflow.backend/internal/config"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/domain/repositories"
	"bankflow.backend/pkg/crypto"
	"bankflow.backend/pkg/jwt"
)

const pendingRegistrationKeyPrefix = "reg:"

// pendingRegistration parks a signup until the emailed code is confirmed.
// No user row exists yet, so the verification code and its attempt counter
// live inside the entry rather than in the otps table.
type pendingRegistration struct {
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	PasswordHash  string    `json:"passwordHash"`
	Code          string    `json:"code"`
	CodeExpiresAt time.Time `json:"codeExpiresAt"`
	Attempts      int       `json:"attempts"`
	LastSentAt    time.Time `json:"lastSentAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// AuthUsecase handles registration, login and password flows. Registration
// is deferred: the user row is created only after email verification.
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	otp        *OTPUsecase
	pending    repositories.PendingStore
	notifier   *NotificationUsecase
	jwtService *jwt.JWTService
	cfg        config.OTPConfig
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	otp *OTPUsecase,
	pending repositories.PendingStore,
	notifier *NotificationUsecase,
	jwtService *jwt.JWTService,
	cfg config.OTPConfig,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		otp:        otp,
		pending:    pending,
		notifier:   notifier,
		jwtService: jwtService,
		cfg:        cfg,
	}
}

func registrationKey(email string) string {
	return pendingRegistrationKeyPrefix + crypto.HashEmail(email)
}

func (u *AuthUsecase) putPending(ctx context.Context, reg *pendingRegistration, ttl time.Duration) error {
	raw, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	return u.pending.Put(ctx, registrationKey(reg.Email), raw, ttl)
}

func (u *AuthUsecase) getPending(ctx context.Context, email string) (*pendingRegistration, error) {
	raw, err := u.pending.Get(ctx, registrationKey(email))
	if err != nil {
		if errors.Is(err, repositories.ErrPendingNotFound) {
			return nil, domainerrors.NewError("no pending registration for this email", domainerrors.ErrNotFound)
		}
		return nil, err
	}

	var reg pendingRegistration
	if err := json.Unmarshal(raw, &reg); err != nil {
		_ = u.pending.Remove(ctx, registrationKey(email))
		return nil, domainerrors.ErrInvalidInput
	}
	return &reg, nil
}

// Register starts a registration. Submitting again for the same email
// before verification replaces the pending entry and issues a fresh code.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) error {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return err
	}

	code, err := crypto.GenerateOTPCode(u.cfg.Digits)
	if err != nil {
		return err
	}

	now := time.Now()
	reg := &pendingRegistration{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		Phone:         input.Phone,
		PasswordHash:  passwordHash,
		Code:          code,
		CodeExpiresAt: now.Add(u.cfg.Validity),
		LastSentAt:    now,
		ExpiresAt:     now.Add(u.cfg.PendingTTL),
	}

	if err := u.putPending(ctx, reg, u.cfg.PendingTTL); err != nil {
		return err
	}

	u.notifier.SendRegistrationCode(ctx, input.Email, input.FirstName, code)
	return nil
}

// VerifyEmail consumes a pending registration and creates the user row
func (u *AuthUsecase) VerifyEmail(ctx context.Context, input *entities.VerifyEmailInput) (*entities.User, error) {
	key := registrationKey(input.Email)

	reg, err := u.getPending(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	reg.Attempts++
	if reg.Attempts > u.cfg.MaxAttempts {
		_ = u.pending.Remove(ctx, key)
		return nil, domainerrors.NewError(OTPMsgMaxAttemptsExceeded, domainerrors.ErrOTPInvalid)
	}
	if ttl := time.Until(reg.ExpiresAt); ttl > 0 {
		_ = u.putPending(ctx, reg, ttl)
	}

	if time.Now().After(reg.CodeExpiresAt) || !crypto.SecureCompare(input.Code, reg.Code) {
		return nil, domainerrors.NewError(OTPMsgInvalidOrExpired, domainerrors.ErrOTPInvalid)
	}

	user := &entities.User{
		FirstName:     reg.FirstName,
		LastName:      reg.LastName,
		Email:         reg.Email,
		PasswordHash:  reg.PasswordHash,
		Role:          entities.UserRoleUser,
		IsActive:      true,
		EmailVerified: true,
	}
	if reg.Phone != "" {
		user.Phone = null.StringFrom(reg.Phone)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	_ = u.pending.Remove(ctx, key)
	u.notifier.SendWelcomeEmail(ctx, user)
	return user, nil
}

// ResendOTP re-issues the registration code, at most once per resend window
func (u *AuthUsecase) ResendOTP(ctx context.Context, email string) error {
	reg, err := u.getPending(ctx, email)
	if err != nil {
		return err
	}

	if time.Since(reg.LastSentAt) < u.cfg.ResendFloor {
		return domainerrors.NewError("please wait before requesting a new code", domainerrors.ErrInvalidInput)
	}

	code, err := crypto.GenerateOTPCode(u.cfg.Digits)
	if err != nil {
		return err
	}

	now := time.Now()
	reg.Code = code
	reg.CodeExpiresAt = now.Add(u.cfg.Validity)
	reg.LastSentAt = now
	reg.Attempts = 0

	ttl := time.Until(reg.ExpiresAt)
	if ttl <= 0 {
		_ = u.pending.Remove(ctx, registrationKey(email))
		return domainerrors.NewError("no pending registration for this email", domainerrors.ErrNotFound)
	}
	if err := u.putPending(ctx, reg, ttl); err != nil {
		return err
	}

	u.notifier.SendRegistrationCode(ctx, reg.Email, reg.FirstName, code)
	return nil
}

// Login authenticates a user and returns a JWT pair
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUserNotActive
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUserNotActive
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// ChangePassword updates the password of a logged-in user
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	u.notifier.SendPasswordChangedEmail(ctx, user)
	return nil
}

// ForgotPassword issues a password-reset code. Unknown emails succeed
// silently so the endpoint cannot be used to enumerate accounts.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	_, err = u.otp.Create(ctx, user.ID, entities.OTPPurposePasswordReset)
	return err
}

// ResetPassword completes a forgot-password flow with the emailed code
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NewError(OTPMsgInvalidOrExpired, domainerrors.ErrOTPInvalid)
		}
		return err
	}

	if err := u.otp.RequireVerified(ctx, user.ID, entities.OTPPurposePasswordReset, input.Code); err != nil {
		return err
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	u.notifier.SendPasswordChangedEmail(ctx, user)
	return nil
}

// GetProfile returns the authenticated user
func (u *AuthUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}
