package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
)

func createVerifiedUser(t *testing.T, env *testEnv, email string) *entities.User {
	t.Helper()
	user := &entities.User{
		FirstName:     "Amine",
		LastName:      "Ben Salah",
		Email:         email,
		PasswordHash:  "hashed",
		Role:          entities.UserRoleUser,
		IsActive:      true,
		EmailVerified: true,
	}
	require.NoError(t, env.userRepo.Create(context.Background(), user))
	return user
}

func TestNotificationUsecase_DispatchRecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createVerifiedUser(t, env, "amine@example.com")

	env.notifier.SendWelcomeEmail(ctx, user)

	mail := env.mailer.last(t)
	require.Equal(t, "amine@example.com", mail.To)
	require.Contains(t, mail.Subject, "Welcome")

	list, meta, err := env.notifier.ListByUser(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, meta.TotalCount)
	require.Equal(t, entities.NotificationTypeWelcome, list[0].Type)
	require.True(t, list[0].SentAt.Valid)
}

func TestNotificationUsecase_FailedSendStillRecorded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createVerifiedUser(t, env, "amine@example.com")

	env.mailer.failing = true
	env.notifier.SendPasswordChangedEmail(ctx, user)

	// The record survives the SMTP failure but carries no sent timestamp.
	list, _, err := env.notifier.ListByUser(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, entities.NotificationTypePasswordChange, list[0].Type)
	require.False(t, list[0].SentAt.Valid)
}

func TestNotificationUsecase_TransferAlert(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createVerifiedUser(t, env, "amine@example.com")

	env.notifier.SendTransferAlert(ctx, user.ID, decimal.NewFromInt(150), "TND", "Salah", "TRF_1_ABC")

	mail := env.mailer.last(t)
	require.Contains(t, mail.Body, "150")
	require.Contains(t, mail.Body, "Salah")
	require.Contains(t, mail.Body, "TRF_1_ABC")

	// Unknown recipients are dropped quietly.
	before := env.mailer.count()
	env.notifier.SendTransferAlert(ctx, uuid.New(), decimal.NewFromInt(10), "TND", "X", "TRF_X")
	require.Equal(t, before, env.mailer.count())
}

func TestNotificationUsecase_BroadcastNews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	createVerifiedUser(t, env, "amine@example.com")
	createVerifiedUser(t, env, "fatma@example.com")

	count, err := env.notifier.BroadcastNews(ctx, &entities.BroadcastNewsInput{
		Title:   "New mobile app",
		Content: "Download the new app today.",
	})
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Equal(t, 2, env.mailer.count())
}

func TestNotificationUsecase_DeleteOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := createVerifiedUser(t, env, "amine@example.com")

	env.notifier.SendWelcomeEmail(ctx, user)
	list, _, err := env.notifier.ListByUser(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.ErrorIs(t, env.notifier.Delete(ctx, uuid.New(), list[0].ID), domainerrors.ErrAccessDenied)
	require.NoError(t, env.notifier.Delete(ctx, user.ID, list[0].ID))
	require.ErrorIs(t, env.notifier.Delete(ctx, user.ID, list[0].ID), domainerrors.ErrNotFound)
}
