package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/interfaces/http/middleware"
	"bankflow.backend/internal/interfaces/http/response"
	"bankflow.backend/internal/usecases"
)

type accountService interface {
	Create(ctx context.Context, userID uuid.UUID, input *entities.CreateAccountInput) (*entities.Account, error)
	Get(ctx context.Context, userID, accountID uuid.UUID) (*entities.Account, error)
	List(ctx context.Context, userID uuid.UUID) ([]*entities.Account, error)
	GetBalance(ctx context.Context, userID, accountID uuid.UUID) (*entities.BalanceResponse, error)
	Deposit(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal) (*entities.Transaction, error)
	Withdraw(ctx context.Context, userID, accountID uuid.UUID, amount decimal.Decimal) (*entities.Transaction, error)
	TransferInternal(ctx context.Context, userID, sourceID uuid.UUID, input *entities.InternalTransferInput) (*entities.Transaction, error)
	Delete(ctx context.Context, userID, accountID uuid.UUID) error
}

// AccountHandler handles account endpoints
type AccountHandler struct {
	accountUsecase accountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountUsecase *usecases.AccountUsecase) *AccountHandler {
	return &AccountHandler{accountUsecase: accountUsecase}
}

// Create opens a new account
// POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var input entities.CreateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	account, err := h.accountUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, account)
}

// List returns the caller's accounts
// GET /api/v1/accounts
func (h *AccountHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	accounts, err := h.accountUsecase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if accounts == nil {
		accounts = []*entities.Account{}
	}
	response.Success(c, http.StatusOK, gin.H{"accounts": accounts})
}

// Get returns a single account
// GET /api/v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	accountID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	account, err := h.accountUsecase.Get(c.Request.Context(), userID, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, account)
}

// Balance returns the account balance
// GET /api/v1/accounts/:id/balance
func (h *AccountHandler) Balance(c *gin.Context) {
	accountID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	balance, err := h.accountUsecase.GetBalance(c.Request.Context(), userID, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, balance)
}

// Deposit credits the account
// POST /api/v1/accounts/:id/deposit
func (h *AccountHandler) Deposit(c *gin.Context) {
	accountID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.AmountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tx, err := h.accountUsecase.Deposit(c.Request.Context(), userID, accountID, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":     "Deposit completed",
		"transaction": tx,
	})
}

// Withdraw debits the account
// POST /api/v1/accounts/:id/withdraw
func (h *AccountHandler) Withdraw(c *gin.Context) {
	accountID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.AmountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tx, err := h.accountUsecase.Withdraw(c.Request.Context(), userID, accountID, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":     "Withdrawal completed",
		"transaction": tx,
	})
}

// TransferInternal moves money to another of the caller's accounts
// POST /api/v1/accounts/:id/transfer
func (h *AccountHandler) TransferInternal(c *gin.Context) {
	accountID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.InternalTransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tx, err := h.accountUsecase.TransferInternal(c.Request.Context(), userID, accountID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":     "Transfer completed",
		"transaction": tx,
	})
}

// Delete removes an empty account
// DELETE /api/v1/accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	accountID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.accountUsecase.Delete(c.Request.Context(), userID, accountID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
