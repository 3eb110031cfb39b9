package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/interfaces/http/response"
	"bankflow.backend/internal/usecases"
)

// CurrencyHandler handles exchange-rate endpoints
type CurrencyHandler struct {
	currencyUsecase *usecases.CurrencyUsecase
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(currencyUsecase *usecases.CurrencyUsecase) *CurrencyHandler {
	return &CurrencyHandler{currencyUsecase: currencyUsecase}
}

// Rates returns current quotes against the bank currency
// GET /api/v1/currency/rates
func (h *CurrencyHandler) Rates(c *gin.Context) {
	rates, err := h.currencyUsecase.GetRates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rates)
}

// Convert converts an amount from the bank currency
// POST /api/v1/currency/convert
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var input usecases.ConvertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.currencyUsecase.Convert(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// BankInfo returns static institution details
// GET /api/v1/currency/bank-info
func (h *CurrencyHandler) BankInfo(c *gin.Context) {
	response.Success(c, http.StatusOK, h.currencyUsecase.GetBankInfo())
}
