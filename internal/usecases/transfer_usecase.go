package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"bankflow.backend/internal/config"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/domain/repositories"
	"bankflow.backend/pkg/utils"
)

const pendingTransferKeyPrefix = "transfer:"

// pendingTransfer is the payload parked between initiate and confirm
type pendingTransfer struct {
	UserID          uuid.UUID       `json:"userId"`
	SenderAccountID uuid.UUID       `json:"senderAccountId"`
	BeneficiaryID   uuid.UUID       `json:"beneficiaryId"`
	Amount          decimal.Decimal `json:"amount"`
	Reference       string          `json:"reference"`
	Attempts        int             `json:"attempts"`
	ExpiresAt       time.Time       `json:"expiresAt"`
}

// TransferUsecase handles beneficiary transfers. A transfer is initiated,
// parked in the pending store under an opaque token, and only executed once
// the emailed one-time code is confirmed. All validations run again at
// confirm time because balances and statuses may have changed in between.
type TransferUsecase struct {
	transferRepo    repositories.TransferRepository
	accountRepo     repositories.AccountRepository
	beneficiaryRepo repositories.BeneficiaryRepository
	otp             *OTPUsecase
	pending         repositories.PendingStore
	notifier        *NotificationUsecase
	uow             repositories.UnitOfWork
	cfg             config.OTPConfig
}

// NewTransferUsecase creates a new transfer usecase
func NewTransferUsecase(
	transferRepo repositories.TransferRepository,
	accountRepo repositories.AccountRepository,
	beneficiaryRepo repositories.BeneficiaryRepository,
	otp *OTPUsecase,
	pending repositories.PendingStore,
	notifier *NotificationUsecase,
	uow repositories.UnitOfWork,
	cfg config.OTPConfig,
) *TransferUsecase {
	return &TransferUsecase{
		transferRepo:    transferRepo,
		accountRepo:     accountRepo,
		beneficiaryRepo: beneficiaryRepo,
		otp:             otp,
		pending:         pending,
		notifier:        notifier,
		uow:             uow,
		cfg:             cfg,
	}
}

// validate runs the full transfer precondition chain in a fixed order:
// amount, account existence, account ownership, account status, funds,
// beneficiary existence, beneficiary ownership, beneficiary verification.
func (u *TransferUsecase) validate(ctx context.Context, userID uuid.UUID, senderAccountID, beneficiaryID uuid.UUID, amount decimal.Decimal) (*entities.Account, *entities.Beneficiary, error) {
	if !amount.IsPositive() {
		return nil, nil, domainerrors.ErrInvalidAmount
	}

	account, err := u.accountRepo.GetByID(ctx, senderAccountID)
	if err != nil {
		return nil, nil, err
	}
	if account.UserID != userID {
		return nil, nil, domainerrors.ErrAccessDenied
	}
	if account.Status != entities.AccountStatusActive {
		return nil, nil, domainerrors.ErrAccountNotActive
	}
	if account.Balance.LessThan(amount) {
		return nil, nil, domainerrors.ErrInsufficientFunds
	}

	beneficiary, err := u.beneficiaryRepo.GetByID(ctx, beneficiaryID)
	if err != nil {
		return nil, nil, err
	}
	if beneficiary.UserID != userID {
		return nil, nil, domainerrors.ErrAccessDenied
	}
	if !beneficiary.IsVerified {
		return nil, nil, domainerrors.ErrBeneficiaryNotVerified
	}

	return account, beneficiary, nil
}

// execute debits the sender and writes the Transfer audit row in a single
// database transaction, then sends a best-effort alert email.
func (u *TransferUsecase) execute(ctx context.Context, account *entities.Account, beneficiary *entities.Beneficiary, amount decimal.Decimal, reference string) (*entities.Transfer, error) {
	if reference == "" {
		reference = newReference(referencePrefixTransfer)
	}

	transfer := &entities.Transfer{
		SenderAccountID: account.ID,
		BeneficiaryID:   beneficiary.ID,
		Amount:          amount,
		Status:          entities.TransactionStatusPending,
		Reference:       reference,
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.transferRepo.Create(ctx, transfer); err != nil {
			return err
		}
		if err := u.accountRepo.Debit(ctx, account.ID, amount); err != nil {
			return err
		}
		return u.transferRepo.UpdateStatus(ctx, transfer.ID, entities.TransactionStatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	transfer.Status = entities.TransactionStatusCompleted
	transfer.BeneficiaryName = beneficiary.Name
	transfer.BeneficiaryIBAN = beneficiary.IBAN
	transfer.BeneficiaryBank = beneficiary.BankName

	if u.notifier != nil {
		u.notifier.SendTransferAlert(ctx, account.UserID, amount, account.Currency, beneficiary.Name, transfer.Reference)
	}

	return transfer, nil
}

// Initiate validates a transfer, parks it under an opaque token and emails
// the caller a confirmation code.
func (u *TransferUsecase) Initiate(ctx context.Context, userID uuid.UUID, input *entities.InitiateTransferInput) (*entities.InitiateTransferResponse, error) {
	if _, _, err := u.validate(ctx, userID, input.SenderAccountID, input.BeneficiaryID, input.Amount); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(u.cfg.Validity)

	payload := pendingTransfer{
		UserID:          userID,
		SenderAccountID: input.SenderAccountID,
		BeneficiaryID:   input.BeneficiaryID,
		Amount:          input.Amount,
		Reference:       input.Reference,
		ExpiresAt:       expiresAt,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	if err := u.pending.Put(ctx, pendingTransferKeyPrefix+token, raw, u.cfg.Validity); err != nil {
		return nil, err
	}

	if _, err := u.otp.Create(ctx, userID, entities.OTPPurposeTransaction); err != nil {
		return nil, err
	}

	return &entities.InitiateTransferResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Message:   "confirmation code sent by email",
	}, nil
}

// Confirm completes an initiated transfer. The pending entry carries its own
// attempt counter on top of the OTP's: too many confirm calls burn the entry
// even before a code is evaluated.
func (u *TransferUsecase) Confirm(ctx context.Context, userID uuid.UUID, input *entities.ConfirmTransferInput) (*entities.Transfer, error) {
	key := pendingTransferKeyPrefix + input.Token

	raw, err := u.pending.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrPendingNotFound) {
			return nil, domainerrors.NewError("transfer confirmation not found or expired", domainerrors.ErrNotFound)
		}
		return nil, err
	}

	var payload pendingTransfer
	if err := json.Unmarshal(raw, &payload); err != nil {
		_ = u.pending.Remove(ctx, key)
		return nil, domainerrors.ErrInvalidInput
	}

	if payload.UserID != userID {
		return nil, domainerrors.ErrAccessDenied
	}

	payload.Attempts++
	if payload.Attempts > u.cfg.MaxAttempts {
		_ = u.pending.Remove(ctx, key)
		return nil, domainerrors.NewError(OTPMsgMaxAttemptsExceeded, domainerrors.ErrOTPInvalid)
	}
	if updated, err := json.Marshal(payload); err == nil {
		ttl := time.Until(payload.ExpiresAt)
		if ttl > 0 {
			_ = u.pending.Put(ctx, key, updated, ttl)
		}
	}

	if err := u.otp.RequireVerified(ctx, userID, entities.OTPPurposeTransaction, input.Code); err != nil {
		return nil, err
	}

	account, beneficiary, err := u.validate(ctx, userID, payload.SenderAccountID, payload.BeneficiaryID, payload.Amount)
	if err != nil {
		_ = u.pending.Remove(ctx, key)
		return nil, err
	}

	transfer, err := u.execute(ctx, account, beneficiary, payload.Amount, payload.Reference)
	if err != nil {
		return nil, err
	}

	_ = u.pending.Remove(ctx, key)
	return transfer, nil
}

func (u *TransferUsecase) userAccountIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	accounts, err := u.accountRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
	}
	return ids, nil
}

// List returns the caller's transfers, newest first
func (u *TransferUsecase) List(ctx context.Context, userID uuid.UUID, status *entities.TransactionStatus, page, pageSize int) ([]*entities.Transfer, *utils.PaginationMeta, error) {
	ids, err := u.userAccountIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	params := utils.GetPaginationParams(page, pageSize)
	if len(ids) == 0 {
		meta := utils.CalculateMeta(0, params.Page, params.PageSize)
		return []*entities.Transfer{}, &meta, nil
	}

	transfers, total, err := u.transferRepo.ListByAccounts(ctx, ids, status, params.CalculateOffset(), params.PageSize)
	if err != nil {
		return nil, nil, err
	}

	meta := utils.CalculateMeta(total, params.Page, params.PageSize)
	return transfers, &meta, nil
}

// Get returns a single transfer if the caller owns the sending account
func (u *TransferUsecase) Get(ctx context.Context, userID, transferID uuid.UUID) (*entities.Transfer, error) {
	transfer, err := u.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	account, err := u.accountRepo.GetByID(ctx, transfer.SenderAccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domainerrors.ErrAccessDenied
	}

	return transfer, nil
}

// Summary aggregates completed transfers for one of the caller's accounts
// over an optional date range.
func (u *TransferUsecase) Summary(ctx context.Context, userID, accountID uuid.UUID, start, end *time.Time) (*entities.TransferSummary, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domainerrors.ErrAccessDenied
	}

	transfers, err := u.transferRepo.ListCompleted(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}

	summary := &entities.TransferSummary{
		AccountID:     accountID,
		TotalSent:     decimal.Zero,
		TransferCount: len(transfers),
		PeriodStart:   start,
		PeriodEnd:     end,
	}
	for _, transfer := range transfers {
		summary.TotalSent = summary.TotalSent.Add(transfer.Amount)
	}
	if summary.TransferCount > 0 {
		summary.AverageTransfer = summary.TotalSent.Div(decimal.NewFromInt(int64(summary.TransferCount))).Round(3)
	} else {
		summary.AverageTransfer = decimal.Zero
	}

	return summary, nil
}
