package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
)

func seedTransfer(t *testing.T, repo *TransferRepository, accountID, beneficiaryID uuid.UUID, amount int64, status entities.TransactionStatus, ref string) *entities.Transfer {
	t.Helper()
	transfer := &entities.Transfer{
		SenderAccountID: accountID,
		BeneficiaryID:   beneficiaryID,
		Amount:          decimal.NewFromInt(amount),
		Status:          status,
		Reference:       ref,
	}
	require.NoError(t, repo.Create(context.Background(), transfer))
	return transfer
}

func TestTransferRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createTransferTable(t, db)
	repo := NewTransferRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	beneficiaryID := uuid.New()
	transfer := seedTransfer(t, repo, accountID, beneficiaryID, 75, entities.TransactionStatusCompleted, "TRF_1")

	got, err := repo.GetByID(ctx, transfer.ID)
	require.NoError(t, err)
	require.Equal(t, accountID, got.SenderAccountID)
	require.Equal(t, beneficiaryID, got.BeneficiaryID)
	require.True(t, got.Amount.Equal(decimal.NewFromInt(75)))

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTransferRepository_ListByAccounts(t *testing.T) {
	db := newTestDB(t)
	createTransferTable(t, db)
	repo := NewTransferRepository(db)
	ctx := context.Background()

	account1 := uuid.New()
	account2 := uuid.New()
	beneficiaryID := uuid.New()
	first := seedTransfer(t, repo, account1, beneficiaryID, 10, entities.TransactionStatusCompleted, "TRF_1")
	mustExec(t, db, "UPDATE transfers SET created_at = ? WHERE id = ?", time.Now().Add(-time.Hour), first.ID)
	second := seedTransfer(t, repo, account1, beneficiaryID, 20, entities.TransactionStatusPending, "TRF_2")
	seedTransfer(t, repo, account2, beneficiaryID, 30, entities.TransactionStatusCompleted, "TRF_3")
	seedTransfer(t, repo, uuid.New(), beneficiaryID, 40, entities.TransactionStatusCompleted, "TRF_4")

	list, total, err := repo.ListByAccounts(ctx, []uuid.UUID{account1, account2}, nil, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, list, 3)

	// Newest first.
	list, _, err = repo.ListByAccounts(ctx, []uuid.UUID{account1}, nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)

	completed := entities.TransactionStatusCompleted
	list, total, err = repo.ListByAccounts(ctx, []uuid.UUID{account1}, &completed, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "TRF_1", list[0].Reference)

	list, total, err = repo.ListByAccounts(ctx, nil, nil, 0, 10)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, list)
}

func TestTransferRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	createTransferTable(t, db)
	repo := NewTransferRepository(db)
	ctx := context.Background()

	transfer := seedTransfer(t, repo, uuid.New(), uuid.New(), 10, entities.TransactionStatusPending, "TRF_P")

	require.NoError(t, repo.UpdateStatus(ctx, transfer.ID, entities.TransactionStatusCompleted))
	got, err := repo.GetByID(ctx, transfer.ID)
	require.NoError(t, err)
	require.Equal(t, entities.TransactionStatusCompleted, got.Status)

	require.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), entities.TransactionStatusFailed), domainerrors.ErrNotFound)
}

func TestTransferRepository_ListCompleted(t *testing.T) {
	db := newTestDB(t)
	createTransferTable(t, db)
	repo := NewTransferRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	beneficiaryID := uuid.New()
	old := seedTransfer(t, repo, accountID, beneficiaryID, 10, entities.TransactionStatusCompleted, "TRF_OLD")
	mustExec(t, db, "UPDATE transfers SET created_at = ? WHERE id = ?", time.Now().Add(-48*time.Hour), old.ID)
	seedTransfer(t, repo, accountID, beneficiaryID, 20, entities.TransactionStatusCompleted, "TRF_NEW")
	seedTransfer(t, repo, accountID, beneficiaryID, 30, entities.TransactionStatusPending, "TRF_PENDING")

	all, err := repo.ListCompleted(ctx, accountID, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	since := time.Now().Add(-24 * time.Hour)
	recent, err := repo.ListCompleted(ctx, accountID, &since, nil)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "TRF_NEW", recent[0].Reference)

	until := time.Now().Add(-24 * time.Hour)
	older, err := repo.ListCompleted(ctx, accountID, nil, &until)
	require.NoError(t, err)
	require.Len(t, older, 1)
	require.Equal(t, "TRF_OLD", older[0].Reference)
}
