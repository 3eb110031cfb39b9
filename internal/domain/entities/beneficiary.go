package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Beneficiary represents a saved external payee. Transfers may target only
// verified beneficiaries owned by the initiating user.
type Beneficiary struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"userId"`
	Name       string      `json:"name"`
	BankName   string      `json:"bankName"`
	IBAN       string      `json:"iban"`
	Email      null.String `json:"email,omitempty"`
	IsVerified bool        `json:"isVerified"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// CreateBeneficiaryInput represents input for saving a new payee
type CreateBeneficiaryInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	BankName string `json:"bankName" binding:"required,min=2,max=100"`
	IBAN     string `json:"iban" binding:"required,min=15,max=34"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// UpdateBeneficiaryInput represents a partial beneficiary update
type UpdateBeneficiaryInput struct {
	Name     *string `json:"name,omitempty"`
	BankName *string `json:"bankName,omitempty"`
	IBAN     *string `json:"iban,omitempty"`
	Email    *string `json:"email,omitempty"`
}
