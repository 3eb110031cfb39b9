package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"bankflow.backend/internal/config"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/domain/repositories"
	"bankflow.backend/pkg/logger"
	"bankflow.backend/pkg/mailer"
	"bankflow.backend/pkg/utils"
)

// NotificationUsecase sends templated emails and keeps an append-only record
// of every dispatch. Sends are best-effort: a mail relay failure is logged
// and recorded with a null sent_at, and never propagates to the caller's
// financial state.
type NotificationUsecase struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	mailer           mailer.Mailer
	bank             config.BankConfig
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	m mailer.Mailer,
	bank config.BankConfig,
) *NotificationUsecase {
	return &NotificationUsecase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		mailer:           m,
		bank:             bank,
	}
}

func (u *NotificationUsecase) dispatch(ctx context.Context, user *entities.User, notifType entities.NotificationType, subject, body string) {
	sent := true
	if err := u.mailer.Send(user.Email, subject, body); err != nil {
		sent = false
		logger.Error(ctx, "email send failed",
			zap.String("type", string(notifType)),
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	notification := &entities.Notification{
		UserID:  user.ID,
		Type:    notifType,
		Title:   subject,
		Content: body,
	}
	if sent {
		notification.SentAt = null.TimeFrom(time.Now())
	}

	if err := u.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error(ctx, "failed to record notification",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}

func otpSubject(purpose entities.OTPPurpose) string {
	switch purpose {
	case entities.OTPPurposeTransaction:
		return "Confirm your transfer"
	case entities.OTPPurposePasswordReset:
		return "Reset your password"
	case entities.OTPPurposeEmailVerification:
		return "Verify your email address"
	case entities.OTPPurposePhoneVerification:
		return "Verify your phone number"
	case entities.OTPPurposeAccountActivation:
		return "Activate your account"
	default:
		return "Your verification code"
	}
}

// SendOTPEmail emails a one-time code to an existing user
func (u *NotificationUsecase) SendOTPEmail(ctx context.Context, userID uuid.UUID, purpose entities.OTPPurpose, code string) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "cannot send OTP email, user lookup failed",
			zap.String("user_id", userID.String()), zap.Error(err))
		return
	}

	body := fmt.Sprintf("Hello %s,\n\nYour verification code is: %s\n\nThis code expires shortly and can be used once. If you did not request it, please contact support.\n\n%s",
		user.FirstName, code, u.bank.Name)
	u.dispatch(ctx, user, entities.NotificationTypeOTP, otpSubject(purpose), body)
}

// SendRegistrationCode emails a verification code during registration,
// before any user row exists. Nothing is recorded.
func (u *NotificationUsecase) SendRegistrationCode(ctx context.Context, email, firstName, code string) {
	body := fmt.Sprintf("Hello %s,\n\nWelcome to %s. Your email verification code is: %s\n\nEnter it to complete your registration.",
		firstName, u.bank.Name, code)
	if err := u.mailer.Send(email, "Verify your email address", body); err != nil {
		logger.Error(ctx, "registration code email failed", zap.Error(err))
	}
}

// SendWelcomeEmail greets a freshly verified user
func (u *NotificationUsecase) SendWelcomeEmail(ctx context.Context, user *entities.User) {
	body := fmt.Sprintf("Hello %s,\n\nYour %s account is ready. You can now open accounts, save beneficiaries and make transfers.\n\nWelcome aboard!",
		user.FirstName, u.bank.Name)
	u.dispatch(ctx, user, entities.NotificationTypeWelcome, fmt.Sprintf("Welcome to %s", u.bank.Name), body)
}

// SendTransferAlert notifies the sender that a transfer completed
func (u *NotificationUsecase) SendTransferAlert(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, currency, beneficiaryName, reference string) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "cannot send transfer alert, user lookup failed",
			zap.String("user_id", userID.String()), zap.Error(err))
		return
	}

	body := fmt.Sprintf("Hello %s,\n\nYour transfer of %s %s to %s was completed.\nReference: %s\n\n%s",
		user.FirstName, amount.String(), currency, beneficiaryName, reference, u.bank.Name)
	u.dispatch(ctx, user, entities.NotificationTypeTransaction, "Transfer completed", body)
}

// SendPasswordChangedEmail warns a user that their password changed
func (u *NotificationUsecase) SendPasswordChangedEmail(ctx context.Context, user *entities.User) {
	body := fmt.Sprintf("Hello %s,\n\nYour %s password was just changed. If this was not you, contact support immediately.",
		user.FirstName, u.bank.Name)
	u.dispatch(ctx, user, entities.NotificationTypePasswordChange, "Your password was changed", body)
}

// BroadcastNews sends a bank news bulletin to every user and returns the
// number of recipients.
func (u *NotificationUsecase) BroadcastNews(ctx context.Context, input *entities.BroadcastNewsInput) (int, error) {
	users, err := u.userRepo.List(ctx, "")
	if err != nil {
		return 0, err
	}

	for _, user := range users {
		body := fmt.Sprintf("Hello %s,\n\n%s\n\n%s", user.FirstName, input.Content, u.bank.Name)
		u.dispatch(ctx, user, entities.NotificationTypeNews, input.Title, body)
	}

	return len(users), nil
}

// ListByUser returns a user's notification history, newest first
func (u *NotificationUsecase) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*entities.Notification, *utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, pageSize)

	notifications, total, err := u.notificationRepo.ListByUser(ctx, userID, params.CalculateOffset(), params.PageSize)
	if err != nil {
		return nil, nil, err
	}

	meta := utils.CalculateMeta(total, params.Page, params.PageSize)
	return notifications, &meta, nil
}

// Delete removes one of the caller's own notifications
func (u *NotificationUsecase) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := u.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return domainerrors.ErrAccessDenied
	}
	return u.notificationRepo.Delete(ctx, notificationID)
}
