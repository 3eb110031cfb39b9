package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a money movement
type TransactionType string

const (
	TransactionTypeDebit    TransactionType = "DEBIT"
	TransactionTypeCredit   TransactionType = "CREDIT"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// TransactionStatus represents transaction status. A row becomes COMPLETED
// only after the balance update is durably applied in the same database
// transaction; a failed operation rolls the row back entirely.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an immutable audit record of a single money movement
type Transaction struct {
	ID              uuid.UUID         `json:"id"`
	SenderAccountID uuid.UUID         `json:"senderAccountId"`
	Type            TransactionType   `json:"type"`
	Amount          decimal.Decimal   `json:"amount"`
	Status          TransactionStatus `json:"status"`
	Reference       string            `json:"reference"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Transfer specializes a transaction with a beneficiary target
type Transfer struct {
	ID              uuid.UUID         `json:"id"`
	SenderAccountID uuid.UUID         `json:"senderAccountId"`
	BeneficiaryID   uuid.UUID         `json:"beneficiaryId"`
	Amount          decimal.Decimal   `json:"amount"`
	Status          TransactionStatus `json:"status"`
	Reference       string            `json:"reference"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`

	// Joined beneficiary details for responses
	BeneficiaryName string `json:"beneficiaryName,omitempty"`
	BeneficiaryIBAN string `json:"beneficiaryIban,omitempty"`
	BeneficiaryBank string `json:"beneficiaryBank,omitempty"`
}

// MovementInput represents input for a direct credit or debit
type MovementInput struct {
	AccountID uuid.UUID       `json:"accountId" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
}

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	AccountID *uuid.UUID
	Type      *TransactionType
	Status    *TransactionStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionSummary aggregates completed movements for an account
type TransactionSummary struct {
	AccountID    uuid.UUID       `json:"accountId"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	Count        int             `json:"count"`
}

// InitiateTransferInput starts an OTP-gated beneficiary transfer
type InitiateTransferInput struct {
	SenderAccountID uuid.UUID       `json:"senderAccountId" binding:"required"`
	BeneficiaryID   uuid.UUID       `json:"beneficiaryId" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Reference       string          `json:"reference"`
}

// ConfirmTransferInput completes an initiated transfer with the emailed code
type ConfirmTransferInput struct {
	Token string `json:"token" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// InitiateTransferResponse carries the confirm token back to the client
type InitiateTransferResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Message   string    `json:"message"`
}

// TransferSummary aggregates completed transfers for an account
type TransferSummary struct {
	AccountID       uuid.UUID       `json:"accountId"`
	TotalSent       decimal.Decimal `json:"totalSent"`
	TransferCount   int             `json:"transferCount"`
	AverageTransfer decimal.Decimal `json:"averageTransfer"`
	PeriodStart     *time.Time      `json:"periodStart,omitempty"`
	PeriodEnd       *time.Time      `json:"periodEnd,omitempty"`
}
