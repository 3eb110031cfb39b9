package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound               = errors.New("resource not found")
	ErrAlreadyExists          = errors.New("resource already exists")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrAccessDenied           = errors.New("access denied")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrTokenExpired           = errors.New("token expired")
	ErrEmailNotVerified       = errors.New("email not verified")
	ErrUserNotActive          = errors.New("user account is deactivated")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrAccountNotActive       = errors.New("account is not active")
	ErrAccountAlreadyActive   = errors.New("account is already active")
	ErrAccountClosed          = errors.New("account is closed")
	ErrBeneficiaryNotVerified = errors.New("beneficiary is not verified")
	ErrTransactionFailed      = errors.New("transaction failed")
	ErrOTPInvalid             = errors.New("invalid or expired OTP code")
	ErrExternalService        = errors.New("external service unavailable")
)

// Error codes surfaced in API responses
const (
	CodeNotFound            = "NOT_FOUND"
	CodeBadRequest          = "BAD_REQUEST"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeForbidden           = "FORBIDDEN"
	CodeConflict            = "CONFLICT"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeAccountNotActive    = "ACCOUNT_NOT_ACTIVE"
	CodeAccountClosed       = "ACCOUNT_CLOSED"
	CodeBeneficiaryUnverif  = "BENEFICIARY_NOT_VERIFIED"
	CodeTransactionFailed   = "TRANSACTION_FAILED"
	CodeOTPInvalid          = "INVALID_OTP"
	CodeInternal            = "INTERNAL_ERROR"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrAccessDenied)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

func ServiceUnavailable(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, CodeUpstreamUnavailable, message, ErrExternalService)
}

// FromError translates domain sentinels into AppErrors. Unknown errors map to
// an internal error so nothing leaks to the caller.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound("resource not found")
	case errors.Is(err, ErrAccessDenied):
		return Forbidden("access denied")
	case errors.Is(err, ErrAlreadyExists):
		return Conflict("resource already exists")
	case errors.Is(err, ErrInvalidAmount):
		return NewAppError(http.StatusBadRequest, CodeInvalidAmount, "amount must be positive", err)
	case errors.Is(err, ErrInvalidInput):
		return BadRequest("invalid input")
	case errors.Is(err, ErrInsufficientFunds):
		return NewAppError(http.StatusBadRequest, CodeInsufficientFunds, "insufficient funds", err)
	case errors.Is(err, ErrAccountNotActive):
		return NewAppError(http.StatusBadRequest, CodeAccountNotActive, "account is not active", err)
	case errors.Is(err, ErrAccountAlreadyActive):
		return NewAppError(http.StatusBadRequest, CodeConflict, "account is already active", err)
	case errors.Is(err, ErrAccountClosed):
		return NewAppError(http.StatusBadRequest, CodeAccountClosed, "account is closed", err)
	case errors.Is(err, ErrBeneficiaryNotVerified):
		return NewAppError(http.StatusBadRequest, CodeBeneficiaryUnverif, "beneficiary is not verified", err)
	case errors.Is(err, ErrTransactionFailed):
		return NewAppError(http.StatusInternalServerError, CodeTransactionFailed, "transaction failed", err)
	case errors.Is(err, ErrInvalidCredentials):
		return NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password", err)
	case errors.Is(err, ErrTokenExpired):
		return Unauthorized("token has expired")
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrEmailNotVerified), errors.Is(err, ErrUserNotActive):
		return Unauthorized(err.Error())
	case errors.Is(err, ErrOTPInvalid):
		return NewAppError(http.StatusUnauthorized, CodeOTPInvalid, "invalid or expired OTP code", err)
	case errors.Is(err, ErrExternalService):
		return ServiceUnavailable("upstream service unavailable")
	default:
		return InternalError(err)
	}
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	appErr := FromError(err)
	return NewAppError(appErr.Status, appErr.Code, message, err)
}
