package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"bankflow.backend/internal/config"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/domain/repositories"
)

// AccountUsecase handles account lifecycle and balance-mutating operations.
// Every balance change is paired with an audit Transaction row inside a
// single database transaction.
type AccountUsecase struct {
	accountRepo     repositories.AccountRepository
	transactionRepo repositories.TransactionRepository
	uow             repositories.UnitOfWork
	bank            config.BankConfig
}

// NewAccountUsecase creates a new account usecase
func NewAccountUsecase(
	accountRepo repositories.AccountRepository,
	transactionRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
	bank config.BankConfig,
) *AccountUsecase {
	return &AccountUsecase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		uow:             uow,
		bank:            bank,
	}
}

// getOwned loads an account and enforces ownership. Existence is checked
// first so a probe for someone else's account ID returns NotFound, not
// AccessDenied, only when the row truly does not exist.
func (u *AccountUsecase) getOwned(ctx context.Context, userID, accountID uuid.UUID) (*entities.Account, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domainerrors.ErrAccessDenied
	}
	return account, nil
}

// Create opens a new account for the user in the bank's configured currency
func (u *AccountUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateAccountInput) (*entities.Account, error) {
	if input.InitialBalance.IsNegative() {
		return nil, domainerrors.ErrInvalidAmount
	}

	account := &entities.Account{
		UserID:   userID,
		Balance:  input.InitialBalance,
		Currency: u.bank.Currency,
		Status:   entities.AccountStatusActive,
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.accountRepo.Create(ctx, account); err != nil {
			return err
		}
		if input.InitialBalance.IsPositive() {
			tx := &entities.Transaction{
				SenderAccountID: account.ID,
				Type:            entities.TransactionTypeCredit,
				Amount:          input.InitialBalance,
				Status:          entities.TransactionStatusCompleted,
				Reference:       newReference(referencePrefixTransaction),
			}
			return u.transactionRepo.Create(ctx, tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Get returns one of the caller's accounts
func (u *AccountUsecase) Get(ctx context.Context, userID, accountID uuid.UUID) (*entities.Account, error) {
	return u.getOwned(ctx, userID, accountID)
}

// List returns all accounts owned by the user
func (u *AccountUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Account, error) {
	return u.accountRepo.ListByUser(ctx, userID)
}

// GetBalance returns the current balance of one of the caller's accounts
func (u *AccountUsecase) GetBalance(ctx context.Context, userID, accountID uuid.UUID) (*entities.BalanceResponse, error) {
	account, err := u.getOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return &entities.BalanceResponse{
		AccountID: account.ID,
		Balance:   account.Balance,
		Currency:  account.Currency,
	}, nil
}

// Deposit credits an active account and records a CREDIT transaction
func (u *AccountUsecase) Deposit(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal) (*entities.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	account, err := u.getOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status != entities.AccountStatusActive {
		return nil, domainerrors.ErrAccountNotActive
	}

	tx := &entities.Transaction{
		SenderAccountID: account.ID,
		Type:            entities.TransactionTypeCredit,
		Amount:          amount,
		Status:          entities.TransactionStatusPending,
		Reference:       newReference(referencePrefixTransaction),
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.transactionRepo.Create(ctx, tx); err != nil {
			return err
		}
		if err := u.accountRepo.Credit(ctx, account.ID, amount); err != nil {
			return err
		}
		return u.transactionRepo.UpdateStatus(ctx, tx.ID, entities.TransactionStatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	tx.Status = entities.TransactionStatusCompleted
	return tx, nil
}

// Withdraw debits an active account and records a DEBIT transaction.
// The debit fails with ErrInsufficientFunds when the balance guard trips.
func (u *AccountUsecase) Withdraw(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal) (*entities.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	account, err := u.getOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status != entities.AccountStatusActive {
		return nil, domainerrors.ErrAccountNotActive
	}

	tx := &entities.Transaction{
		SenderAccountID: account.ID,
		Type:            entities.TransactionTypeDebit,
		Amount:          amount,
		Status:          entities.TransactionStatusPending,
		Reference:       newReference(referencePrefixTransaction),
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.transactionRepo.Create(ctx, tx); err != nil {
			return err
		}
		if err := u.accountRepo.Debit(ctx, account.ID, amount); err != nil {
			return err
		}
		return u.transactionRepo.UpdateStatus(ctx, tx.ID, entities.TransactionStatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	tx.Status = entities.TransactionStatusCompleted
	return tx, nil
}

// TransferInternal moves money between two accounts of the same user.
// Debit, credit and the TRANSFER audit row commit or roll back together.
func (u *AccountUsecase) TransferInternal(ctx context.Context, userID, sourceID uuid.UUID, input *entities.InternalTransferInput) (*entities.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}
	if sourceID == input.TargetAccountID {
		return nil, domainerrors.NewError("source and target accounts are the same", domainerrors.ErrInvalidInput)
	}

	source, err := u.getOwned(ctx, userID, sourceID)
	if err != nil {
		return nil, err
	}
	target, err := u.getOwned(ctx, userID, input.TargetAccountID)
	if err != nil {
		return nil, err
	}
	if source.Status != entities.AccountStatusActive || target.Status != entities.AccountStatusActive {
		return nil, domainerrors.ErrAccountNotActive
	}

	tx := &entities.Transaction{
		SenderAccountID: source.ID,
		Type:            entities.TransactionTypeTransfer,
		Amount:          input.Amount,
		Status:          entities.TransactionStatusPending,
		Reference:       newReference(referencePrefixTransaction),
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.transactionRepo.Create(ctx, tx); err != nil {
			return err
		}
		if err := u.accountRepo.Debit(ctx, source.ID, input.Amount); err != nil {
			return err
		}
		if err := u.accountRepo.Credit(ctx, target.ID, input.Amount); err != nil {
			return err
		}
		return u.transactionRepo.UpdateStatus(ctx, tx.ID, entities.TransactionStatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	tx.Status = entities.TransactionStatusCompleted
	return tx, nil
}

// Delete soft-deletes one of the caller's accounts. Accounts holding funds
// cannot be deleted.
func (u *AccountUsecase) Delete(ctx context.Context, userID, accountID uuid.UUID) error {
	account, err := u.getOwned(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if !account.Balance.IsZero() {
		return domainerrors.NewError("account balance must be zero", domainerrors.ErrInvalidInput)
	}
	return u.accountRepo.Delete(ctx, accountID)
}

// UpdateStatus applies an admin lifecycle transition. CLOSED is terminal.
func (u *AccountUsecase) UpdateStatus(ctx context.Context, accountID uuid.UUID, status entities.AccountStatus) (*entities.Account, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.Status == entities.AccountStatusClosed {
		return nil, domainerrors.ErrAccountClosed
	}
	if status == entities.AccountStatusActive && account.Status == entities.AccountStatusActive {
		return nil, domainerrors.ErrAccountAlreadyActive
	}

	if err := u.accountRepo.UpdateStatus(ctx, accountID, status); err != nil {
		return nil, err
	}

	account.Status = status
	return account, nil
}

// ListAll returns every account in the bank (admin)
func (u *AccountUsecase) ListAll(ctx context.Context) ([]*entities.Account, error) {
	return u.accountRepo.ListAll(ctx)
}
