package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OTPPurpose scopes a one-time code to a single sensitive operation
type OTPPurpose string

const (
	OTPPurposeLogin             OTPPurpose = "LOGIN"
	OTPPurposeTransaction       OTPPurpose = "TRANSACTION"
	OTPPurposePasswordReset     OTPPurpose = "PASSWORD_RESET"
	OTPPurposeEmailVerification OTPPurpose = "EMAIL_VERIFICATION"
	OTPPurposePhoneVerification OTPPurpose = "PHONE_VERIFICATION"
	OTPPurposeAccountActivation OTPPurpose = "ACCOUNT_ACTIVATION"
)

// ValidOTPPurpose reports whether the given string names a known purpose
func ValidOTPPurpose(p string) bool {
	switch OTPPurpose(p) {
	case OTPPurposeLogin, OTPPurposeTransaction, OTPPurposePasswordReset,
		OTPPurposeEmailVerification, OTPPurposePhoneVerification, OTPPurposeAccountActivation:
		return true
	}
	return false
}

// OTP is a one-time code bound to a user and a purpose. It is valid iff
// not used, attempts < max attempts, and now < expiry. All three checks
// are re-evaluated on every verification call.
type OTP struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Code        string     `json:"-"`
	Purpose     OTPPurpose `json:"purpose"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	IsUsed      bool       `json:"isUsed"`
	UsedAt      null.Time  `json:"usedAt,omitempty"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"maxAttempts"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// GenerateOTPInput requests a new code for a purpose
type GenerateOTPInput struct {
	Purpose string `json:"purpose" binding:"required"`
}

// VerifyOTPInput submits a code for verification
type VerifyOTPInput struct {
	Purpose string `json:"purpose" binding:"required"`
	Code    string `json:"code" binding:"required"`
}

// OTPVerifyResult reports the outcome of a verification attempt
type OTPVerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
