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

// TransferHandler handles beneficiary transfer endpoints
type TransferHandler struct {
	transferUsecase *usecases.TransferUsecase
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferUsecase *usecases.TransferUsecase) *TransferHandler {
	return &TransferHandler{transferUsecase: transferUsecase}
}

// Initiate starts an OTP-gated transfer
// POST /api/v1/transfers/initiate
func (h *TransferHandler) Initiate(c *gin.Context) {
	var input entities.InitiateTransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	result, err := h.transferUsecase.Initiate(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Confirm completes an initiated transfer
// POST /api/v1/transfers/confirm
func (h *TransferHandler) Confirm(c *gin.Context) {
	var input entities.ConfirmTransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	transfer, err := h.transferUsecase.Confirm(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":  "Transfer completed",
		"transfer": transfer,
	})
}

// List returns the caller's transfers
// GET /api/v1/transfers
func (h *TransferHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var status *entities.TransactionStatus
	if raw := c.Query("status"); raw != "" {
		s := entities.TransactionStatus(raw)
		status = &s
	}

	page, pageSize := parsePagination(c)
	transfers, meta, err := h.transferUsecase.List(c.Request.Context(), userID, status, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"transfers":  transfers,
		"pagination": meta,
	})
}

// Summary aggregates completed transfers for an account
// GET /api/v1/transfers/summary?account_id=...
func (h *TransferHandler) Summary(c *gin.Context) {
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

	summary, err := h.transferUsecase.Summary(c.Request.Context(), userID, accountID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Get returns a single transfer
// GET /api/v1/transfers/:id
func (h *TransferHandler) Get(c *gin.Context) {
	transferID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	transfer, err := h.transferUsecase.Get(c.Request.Context(), userID, transferID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, transfer)
}
