package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
)

func seedBeneficiary(t *testing.T, repo *BeneficiaryRepository, userID uuid.UUID, name string) *entities.Beneficiary {
	t.Helper()
	beneficiary := &entities.Beneficiary{
		UserID:   userID,
		Name:     name,
		BankName: "Banque de Tunisie",
		IBAN:     "TN5901026067111999999999",
		Email:    null.StringFrom("payee@example.com"),
	}
	require.NoError(t, repo.Create(context.Background(), beneficiary))
	return beneficiary
}

func TestBeneficiaryRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createBeneficiaryTable(t, db)
	repo := NewBeneficiaryRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	beneficiary := seedBeneficiary(t, repo, userID, "Salah")

	got, err := repo.GetByID(ctx, beneficiary.ID)
	require.NoError(t, err)
	require.Equal(t, userID, got.UserID)
	require.Equal(t, "Salah", got.Name)
	require.Equal(t, "payee@example.com", got.Email.String)
	require.False(t, got.IsVerified)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBeneficiaryRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	createBeneficiaryTable(t, db)
	repo := NewBeneficiaryRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedBeneficiary(t, repo, userID, "Salah")
	seedBeneficiary(t, repo, userID, "Nour")
	seedBeneficiary(t, repo, uuid.New(), "Karim")

	list, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestBeneficiaryRepository_UpdateAndSetVerified(t *testing.T) {
	db := newTestDB(t)
	createBeneficiaryTable(t, db)
	repo := NewBeneficiaryRepository(db)
	ctx := context.Background()

	beneficiary := seedBeneficiary(t, repo, uuid.New(), "Salah")

	beneficiary.Name = "Salah Updated"
	beneficiary.IBAN = "TN5901026067111000000000"
	require.NoError(t, repo.Update(ctx, beneficiary))

	require.NoError(t, repo.SetVerified(ctx, beneficiary.ID, true))

	got, err := repo.GetByID(ctx, beneficiary.ID)
	require.NoError(t, err)
	require.Equal(t, "Salah Updated", got.Name)
	require.Equal(t, "TN5901026067111000000000", got.IBAN)
	require.True(t, got.IsVerified)

	missing := &entities.Beneficiary{ID: uuid.New(), Name: "x", BankName: "y", IBAN: "z"}
	require.ErrorIs(t, repo.Update(ctx, missing), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.SetVerified(ctx, uuid.New(), true), domainerrors.ErrNotFound)
}

func TestBeneficiaryRepository_DeleteAndDeleteByUser(t *testing.T) {
	db := newTestDB(t)
	createBeneficiaryTable(t, db)
	repo := NewBeneficiaryRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	first := seedBeneficiary(t, repo, userID, "Salah")
	seedBeneficiary(t, repo, userID, "Nour")
	other := seedBeneficiary(t, repo, uuid.New(), "Karim")

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err := repo.GetByID(ctx, first.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, first.ID), domainerrors.ErrNotFound)

	require.NoError(t, repo.DeleteByUser(ctx, userID))
	list, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
}
