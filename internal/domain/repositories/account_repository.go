package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"bankflow.backend/internal/domain/entities"
)

// AccountRepository defines account data operations.
//
// Credit and Debit apply a relative balance delta with a single conditional
// UPDATE so that concurrent mutations of the same account serialize inside
// the database and can never lose an update. Debit additionally guards on
// balance sufficiency and returns ErrInsufficientFunds when the guard fails.
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Account, error)
	ListAll(ctx context.Context) ([]*entities.Account, error)
	Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
