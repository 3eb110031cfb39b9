package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/interfaces/http/response"
	"bankflow.backend/internal/usecases"
)

// AdminHandler handles administration endpoints
type AdminHandler struct {
	adminUsecase        *usecases.AdminUsecase
	accountUsecase      *usecases.AccountUsecase
	beneficiaryUsecase  *usecases.BeneficiaryUsecase
	notificationUsecase *usecases.NotificationUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminUsecase *usecases.AdminUsecase,
	accountUsecase *usecases.AccountUsecase,
	beneficiaryUsecase *usecases.BeneficiaryUsecase,
	notificationUsecase *usecases.NotificationUsecase,
) *AdminHandler {
	return &AdminHandler{
		adminUsecase:        adminUsecase,
		accountUsecase:      accountUsecase,
		beneficiaryUsecase:  beneficiaryUsecase,
		notificationUsecase: notificationUsecase,
	}
}

type accountStatusInput struct {
	Status entities.AccountStatus `json:"status" binding:"required,oneof=ACTIVE BLOCKED CLOSED"`
}

type verifyBeneficiaryInput struct {
	Verified *bool `json:"verified" binding:"required"`
}

// ListUsers returns all users, optionally filtered by search
// GET /api/v1/admin/users?search=...
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if users == nil {
		users = []*entities.User{}
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetUser returns a single user
// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.adminUsecase.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateUser applies a partial user update
// PATCH /api/v1/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.adminUsecase.UpdateUser(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DeleteUser removes a user and their dependent data
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.adminUsecase.DeleteUser(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAccounts returns every account in the bank
// GET /api/v1/admin/accounts
func (h *AdminHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountUsecase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if accounts == nil {
		accounts = []*entities.Account{}
	}
	response.Success(c, http.StatusOK, gin.H{"accounts": accounts})
}

// UpdateAccountStatus applies a lifecycle transition to any account
// PATCH /api/v1/admin/accounts/:id/status
func (h *AdminHandler) UpdateAccountStatus(c *gin.Context) {
	accountID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input accountStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	account, err := h.accountUsecase.UpdateStatus(c.Request.Context(), accountID, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, account)
}

// VerifyBeneficiary flips a beneficiary's verification flag
// PATCH /api/v1/admin/beneficiaries/:id/verify
func (h *AdminHandler) VerifyBeneficiary(c *gin.Context) {
	beneficiaryID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input verifyBeneficiaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	beneficiary, err := h.beneficiaryUsecase.SetVerified(c.Request.Context(), beneficiaryID, *input.Verified)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, beneficiary)
}

// BroadcastNews sends a bank news bulletin to every user
// POST /api/v1/admin/news
func (h *AdminHandler) BroadcastNews(c *gin.Context) {
	var input entities.BroadcastNewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	recipients, err := h.notificationUsecase.BroadcastNews(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":    "News broadcast sent",
		"recipients": recipients,
	})
}
