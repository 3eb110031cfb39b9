package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/infrastructure/pending"
	"bankflow.backend/internal/usecases"
)

type transferFixture struct {
	env         *testEnv
	uc          *usecases.TransferUsecase
	accountUC   *usecases.AccountUsecase
	userID      uuid.UUID
	account     *entities.Account
	beneficiary *entities.Beneficiary
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	env := newTestEnv(t)
	accountUC := newAccountUsecase(env)
	uc := usecases.NewTransferUsecase(
		env.transferRepo,
		env.accountRepo,
		env.beneficiaryRepo,
		env.otp,
		pending.NewMemoryStore(),
		env.notifier,
		env.uow,
		testOTPConfig(),
	)

	ctx := context.Background()
	userID := uuid.New()
	account := openAccount(t, env, accountUC, userID, 500)

	beneficiary := &entities.Beneficiary{
		UserID:     userID,
		Name:       "Salah",
		BankName:   "Banque de Tunisie",
		IBAN:       "TN5901026067111999999999",
		IsVerified: true,
	}
	require.NoError(t, env.beneficiaryRepo.Create(ctx, beneficiary))

	return &transferFixture{
		env:         env,
		uc:          uc,
		accountUC:   accountUC,
		userID:      userID,
		account:     account,
		beneficiary: beneficiary,
	}
}

// currentCode reads the freshly issued confirmation code back from storage,
// standing in for the user's inbox.
func (f *transferFixture) currentCode(t *testing.T) string {
	t.Helper()
	otp, err := f.env.otpRepo.GetLatestUnused(context.Background(), f.userID, entities.OTPPurposeTransaction)
	require.NoError(t, err)
	return otp.Code
}

func TestTransferUsecase_InitiateAndConfirm(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
		SenderAccountID: f.account.ID,
		BeneficiaryID:   f.beneficiary.ID,
		Amount:          decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.False(t, resp.ExpiresAt.IsZero())

	transfer, err := f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{
		Token: resp.Token,
		Code:  f.currentCode(t),
	})
	require.NoError(t, err)
	require.Equal(t, entities.TransactionStatusCompleted, transfer.Status)
	require.Equal(t, "Salah", transfer.BeneficiaryName)
	require.True(t, transfer.Amount.Equal(decimal.NewFromInt(120)))

	account, err := f.accountUC.Get(ctx, f.userID, f.account.ID)
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(decimal.NewFromInt(380)), "balance %s", account.Balance)

	// The token is consumed with the transfer.
	_, err = f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{
		Token: resp.Token,
		Code:  "123456",
	})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTransferUsecase_InitiateValidationOrder(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	_, err := f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
		SenderAccountID: f.account.ID,
		BeneficiaryID:   f.beneficiary.ID,
		Amount:          decimal.Zero,
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	_, err = f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
		SenderAccountID: uuid.New(),
		BeneficiaryID:   f.beneficiary.ID,
		Amount:          decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = f.uc.Initiate(ctx, uuid.New(), &entities.InitiateTransferInput{
		SenderAccountID: f.account.ID,
		BeneficiaryID:   f.beneficiary.ID,
		Amount:          decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domainerrors.ErrAccessDenied)

	_, err = f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
		SenderAccountID: f.account.ID,
		BeneficiaryID:   f.beneficiary.ID,
		Amount:          decimal.NewFromInt(10000),
	})
	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	unverified := &entities.Beneficiary{
		UserID:   f.userID,
		Name:     "Nour",
		BankName: "Amen Bank",
		IBAN:     "TN5901026067111000000000",
	}
	require.NoError(t, f.env.beneficiaryRepo.Create(ctx, unverified))
	_, err = f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
		SenderAccountID: f.account.ID,
		BeneficiaryID:   unverified.ID,
		Amount:          decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domainerrors.ErrBeneficiaryNotVerified)
}

func TestTransferUsecase_ConfirmRejectsWrongCode(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
		SenderAccountID: f.account.ID,
		BeneficiaryID:   f.beneficiary.ID,
		Amount:          decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	code := f.currentCode(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err = f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{Token: resp.Token, Code: wrong})
	require.ErrorIs(t, err, domainerrors.ErrOTPInvalid)

	// A retry with the right code still goes through.
	transfer, err := f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{Token: resp.Token, Code: code})
	require.NoError(t, err)
	require.Equal(t, entities.TransactionStatusCompleted, transfer.Status)
}

func TestTransferUsecase_ConfirmAttemptExhaustion(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
		SenderAccountID: f.account.ID,
		BeneficiaryID:   f.beneficiary.ID,
		Amount:          decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	code := f.currentCode(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < testOTPConfig().MaxAttempts; i++ {
		_, err = f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{Token: resp.Token, Code: wrong})
		require.ErrorIs(t, err, domainerrors.ErrOTPInvalid)
	}

	// The pending entry burns after too many confirm calls.
	_, err = f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{Token: resp.Token, Code: code})
	require.ErrorIs(t, err, domainerrors.ErrOTPInvalid)

	_, err = f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{Token: resp.Token, Code: code})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// No money moved.
	account, err := f.accountUC.Get(ctx, f.userID, f.account.ID)
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(decimal.NewFromInt(500)))
}

func TestTransferUsecase_ConfirmEnforcesOwnership(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
		SenderAccountID: f.account.ID,
		BeneficiaryID:   f.beneficiary.ID,
		Amount:          decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	_, err = f.uc.Confirm(ctx, uuid.New(), &entities.ConfirmTransferInput{Token: resp.Token, Code: "123456"})
	require.ErrorIs(t, err, domainerrors.ErrAccessDenied)

	_, err = f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{Token: uuid.NewString(), Code: "123456"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTransferUsecase_ConfirmRevalidatesState(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
		SenderAccountID: f.account.ID,
		BeneficiaryID:   f.beneficiary.ID,
		Amount:          decimal.NewFromInt(400),
	})
	require.NoError(t, err)

	// Funds drain between initiate and confirm.
	_, err = f.accountUC.Withdraw(ctx, f.userID, f.account.ID, decimal.NewFromInt(300))
	require.NoError(t, err)

	_, err = f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{
		Token: resp.Token,
		Code:  f.currentCode(t),
	})
	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	// The failed re-validation also burns the pending entry.
	_, err = f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{Token: resp.Token, Code: "123456"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTransferUsecase_ListGetAndSummary(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	for _, amount := range []int64{100, 50} {
		resp, err := f.uc.Initiate(ctx, f.userID, &entities.InitiateTransferInput{
			SenderAccountID: f.account.ID,
			BeneficiaryID:   f.beneficiary.ID,
			Amount:          decimal.NewFromInt(amount),
		})
		require.NoError(t, err)
		_, err = f.uc.Confirm(ctx, f.userID, &entities.ConfirmTransferInput{
			Token: resp.Token,
			Code:  f.currentCode(t),
		})
		require.NoError(t, err)
	}

	list, meta, err := f.uc.List(ctx, f.userID, nil, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.EqualValues(t, 2, meta.TotalCount)

	got, err := f.uc.Get(ctx, f.userID, list[0].ID)
	require.NoError(t, err)
	require.Equal(t, list[0].ID, got.ID)

	_, err = f.uc.Get(ctx, uuid.New(), list[0].ID)
	require.ErrorIs(t, err, domainerrors.ErrAccessDenied)

	summary, err := f.uc.Summary(ctx, f.userID, f.account.ID, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 2, summary.TransferCount)
	require.True(t, summary.TotalSent.Equal(decimal.NewFromInt(150)))
	require.True(t, summary.AverageTransfer.Equal(decimal.NewFromInt(75)))

	// A user with no accounts gets an empty page.
	empty, meta, err := f.uc.List(ctx, uuid.New(), nil, 1, 10)
	require.NoError(t, err)
	require.Empty(t, empty)
	require.Zero(t, meta.TotalCount)
}
