package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/interfaces/http/middleware"
	"bankflow.backend/internal/interfaces/http/response"
	"bankflow.backend/internal/usecases"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	transactionUsecase *usecases.TransactionUsecase
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionUsecase *usecases.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{transactionUsecase: transactionUsecase}
}

// Credit applies a direct credit
// POST /api/v1/transactions/credit
func (h *TransactionHandler) Credit(c *gin.Context) {
	h.move(c, entities.TransactionTypeCredit)
}

// Debit applies a direct debit
// POST /api/v1/transactions/debit
func (h *TransactionHandler) Debit(c *gin.Context) {
	h.move(c, entities.TransactionTypeDebit)
}

func (h *TransactionHandler) move(c *gin.Context, txType entities.TransactionType) {
	var input entities.MovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var tx *entities.Transaction
	var err error
	if txType == entities.TransactionTypeCredit {
		tx, err = h.transactionUsecase.Credit(c.Request.Context(), userID, &input)
	} else {
		tx, err = h.transactionUsecase.Debit(c.Request.Context(), userID, &input)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tx)
}

// List returns the caller's transaction history
// GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var filter entities.TransactionFilter
	if raw := c.Query("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid account_id"))
			return
		}
		filter.AccountID = &id
	}
	if raw := c.Query("type"); raw != "" {
		t := entities.TransactionType(raw)
		filter.Type = &t
	}
	if raw := c.Query("status"); raw != "" {
		s := entities.TransactionStatus(raw)
		filter.Status = &s
	}
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter.StartDate = start
	filter.EndDate = end

	page, pageSize := parsePagination(c)
	transactions, meta, err := h.transactionUsecase.List(c.Request.Context(), userID, filter, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": transactions,
		"pagination":   meta,
	})
}

// Summary aggregates completed movements for an account
// GET /api/v1/transactions/summary?account_id=...
func (h *TransactionHandler) Summary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	accountID, err := uuid.Parse(c.Query("account_id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid account_id"))
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.transactionUsecase.Summary(c.Request.Context(), userID, accountID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Get returns a single transaction
// GET /api/v1/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	transactionID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tx, err := h.transactionUsecase.Get(c.Request.Context(), userID, transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tx)
}
