package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/interfaces/http/middleware"
	"bankflow.backend/internal/interfaces/http/response"
	"bankflow.backend/internal/usecases"
)

// BeneficiaryHandler handles saved-payee endpoints
type BeneficiaryHandler struct {
	beneficiaryUsecase *usecases.BeneficiaryUsecase
}

// NewBeneficiaryHandler creates a new beneficiary handler
func NewBeneficiaryHandler(beneficiaryUsecase *usecases.BeneficiaryUsecase) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiaryUsecase: beneficiaryUsecase}
}

// Create saves a new payee
// POST /api/v1/beneficiaries
func (h *BeneficiaryHandler) Create(c *gin.Context) {
	var input entities.CreateBeneficiaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	beneficiary, err := h.beneficiaryUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, beneficiary)
}

// List returns the caller's beneficiaries
// GET /api/v1/beneficiaries
func (h *BeneficiaryHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	beneficiaries, err := h.beneficiaryUsecase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if beneficiaries == nil {
		beneficiaries = []*entities.Beneficiary{}
	}
	response.Success(c, http.StatusOK, gin.H{"beneficiaries": beneficiaries})
}

// Get returns a single beneficiary
// GET /api/v1/beneficiaries/:id
func (h *BeneficiaryHandler) Get(c *gin.Context) {
	beneficiaryID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	beneficiary, err := h.beneficiaryUsecase.Get(c.Request.Context(), userID, beneficiaryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, beneficiary)
}

// Update applies a partial update
// PATCH /api/v1/beneficiaries/:id
func (h *BeneficiaryHandler) Update(c *gin.Context) {
	beneficiaryID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateBeneficiaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	beneficiary, err := h.beneficiaryUsecase.Update(c.Request.Context(), userID, beneficiaryID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, beneficiary)
}

// Delete removes a beneficiary
// DELETE /api/v1/beneficiaries/:id
func (h *BeneficiaryHandler) Delete(c *gin.Context) {
	beneficiaryID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.beneficiaryUsecase.Delete(c.Request.Context(), userID, beneficiaryID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
