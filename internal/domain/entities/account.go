package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStatus represents the lifecycle state of an account.
// CLOSED is terminal: no transition leads out of it.
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "ACTIVE"
	AccountStatusBlocked AccountStatus = "BLOCKED"
	AccountStatusClosed  AccountStatus = "CLOSED"
)

// Account represents a bank account owned by exactly one user.
// Balance never goes negative; mutations happen only through the
// account usecase's atomic operations.
type Account struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Status    AccountStatus   `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CreateAccountInput represents input for opening an account
type CreateAccountInput struct {
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// AmountInput carries a single money amount for deposit/withdraw operations
type AmountInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// InternalTransferInput moves money between two accounts of the same user
type InternalTransferInput struct {
	TargetAccountID uuid.UUID       `json:"targetAccountId" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
}

// BalanceResponse reports an account balance
type BalanceResponse struct {
	AccountID uuid.UUID       `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}
