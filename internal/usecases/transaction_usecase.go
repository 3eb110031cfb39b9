package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/domain/repositories"
	"bankflow.backend/pkg/utils"
)

// TransactionUsecase handles direct credit/debit movements and the
// transaction history surface.
type TransactionUsecase struct {
	transactionRepo repositories.TransactionRepository
	accountRepo     repositories.AccountRepository
	uow             repositories.UnitOfWork
}

// NewTransactionUsecase creates a new transaction usecase
func NewTransactionUsecase(
	transactionRepo repositories.TransactionRepository,
	accountRepo repositories.AccountRepository,
	uow repositories.UnitOfWork,
) *TransactionUsecase {
	return &TransactionUsecase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		uow:             uow,
	}
}

// move validates the target account and applies a single balance delta with
// its audit row in one database transaction. The row is created PENDING and
// flipped to COMPLETED only after the balance update sticks; any failure
// rolls back both.
func (u *TransactionUsecase) move(ctx context.Context, userID uuid.UUID, input *entities.MovementInput, txType entities.TransactionType) (*entities.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	account, err := u.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domainerrors.ErrAccessDenied
	}
	if account.Status != entities.AccountStatusActive {
		return nil, domainerrors.ErrAccountNotActive
	}

	reference := input.Reference
	if reference == "" {
		reference = newReference(referencePrefixTransaction)
	}

	tx := &entities.Transaction{
		SenderAccountID: account.ID,
		Type:            txType,
		Amount:          input.Amount,
		Status:          entities.TransactionStatusPending,
		Reference:       reference,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.transactionRepo.Create(ctx, tx); err != nil {
			return err
		}
		if txType == entities.TransactionTypeCredit {
			if err := u.accountRepo.Credit(ctx, account.ID, input.Amount); err != nil {
				return err
			}
		} else {
			if err := u.accountRepo.Debit(ctx, account.ID, input.Amount); err != nil {
				return err
			}
		}
		return u.transactionRepo.UpdateStatus(ctx, tx.ID, entities.TransactionStatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	tx.Status = entities.TransactionStatusCompleted
	return tx, nil
}

// Credit applies a direct credit to one of the caller's accounts
func (u *TransactionUsecase) Credit(ctx context.Context, userID uuid.UUID, input *entities.MovementInput) (*entities.Transaction, error) {
	return u.move(ctx, userID, input, entities.TransactionTypeCredit)
}

// Debit applies a direct debit to one of the caller's accounts
func (u *TransactionUsecase) Debit(ctx context.Context, userID uuid.UUID, input *entities.MovementInput) (*entities.Transaction, error) {
	return u.move(ctx, userID, input, entities.TransactionTypeDebit)
}

// ownedAccountIDs resolves which account IDs a listing may cover. With an
// explicit filter account the caller must own it; otherwise all of the
// caller's accounts are included.
func (u *TransactionUsecase) ownedAccountIDs(ctx context.Context, userID uuid.UUID, filterAccount *uuid.UUID) ([]uuid.UUID, error) {
	if filterAccount != nil {
		account, err := u.accountRepo.GetByID(ctx, *filterAccount)
		if err != nil {
			return nil, err
		}
		if account.UserID != userID {
			return nil, domainerrors.ErrAccessDenied
		}
		return []uuid.UUID{account.ID}, nil
	}

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

// List returns the caller's transaction history, filtered and paginated
func (u *TransactionUsecase) List(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter, page, pageSize int) ([]*entities.Transaction, *utils.PaginationMeta, error) {
	ids, err := u.ownedAccountIDs(ctx, userID, filter.AccountID)
	if err != nil {
		return nil, nil, err
	}

	params := utils.GetPaginationParams(page, pageSize)
	if len(ids) == 0 {
		meta := utils.CalculateMeta(0, params.Page, params.PageSize)
		return []*entities.Transaction{}, &meta, nil
	}

	transactions, total, err := u.transactionRepo.List(ctx, ids, filter, params.CalculateOffset(), params.PageSize)
	if err != nil {
		return nil, nil, err
	}

	meta := utils.CalculateMeta(total, params.Page, params.PageSize)
	return transactions, &meta, nil
}

// Get returns a single transaction if the caller owns its account
func (u *TransactionUsecase) Get(ctx context.Context, userID, transactionID uuid.UUID) (*entities.Transaction, error) {
	tx, err := u.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	account, err := u.accountRepo.GetByID(ctx, tx.SenderAccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domainerrors.ErrAccessDenied
	}

	return tx, nil
}

// Summary aggregates completed movements for one of the caller's accounts
// over an optional date range.
func (u *TransactionUsecase) Summary(ctx context.Context, userID, accountID uuid.UUID, start, end *time.Time) (*entities.TransactionSummary, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domainerrors.ErrAccessDenied
	}

	return u.transactionRepo.Summarize(ctx, accountID, start, end)
}
