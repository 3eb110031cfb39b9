package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"bankflow.backend/internal/domain/entities"
)

// TransactionRepository defines audit-record operations for credits/debits
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	List(ctx context.Context, accountIDs []uuid.UUID, filter entities.TransactionFilter, offset, limit int) ([]*entities.Transaction, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error
	Summarize(ctx context.Context, accountID uuid.UUID, start, end *time.Time) (*entities.TransactionSummary, error)
}

// TransferRepository defines audit-record operations for beneficiary transfers
type TransferRepository interface {
	Create(ctx context.Context, transfer *entities.Transfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transfer, error)
	ListByAccounts(ctx context.Context, accountIDs []uuid.UUID, status *entities.TransactionStatus, offset, limit int) ([]*entities.Transfer, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error
	ListCompleted(ctx context.Context, accountID uuid.UUID, start, end *time.Time) ([]*entities.Transfer, error)
}
