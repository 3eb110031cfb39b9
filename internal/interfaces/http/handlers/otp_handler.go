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

// OTPHandler handles one-time-code endpoints
type OTPHandler struct {
	otpUsecase *usecases.OTPUsecase
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otpUsecase *usecases.OTPUsecase) *OTPHandler {
	return &OTPHandler{otpUsecase: otpUsecase}
}

// Generate issues a fresh code for a purpose. The code travels by email
// only, never in the response body.
// POST /api/v1/otp/generate
func (h *OTPHandler) Generate(c *gin.Context) {
	var input entities.GenerateOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if !entities.ValidOTPPurpose(input.Purpose) {
		response.Error(c, domainerrors.BadRequest("unknown OTP purpose"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	otp, err := h.otpUsecase.Create(c.Request.Context(), userID, entities.OTPPurpose(input.Purpose))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":   "Verification code sent",
		"expiresAt": otp.ExpiresAt,
	})
}

// Verify checks a submitted code
// POST /api/v1/otp/verify
func (h *OTPHandler) Verify(c *gin.Context) {
	var input entities.VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if !entities.ValidOTPPurpose(input.Purpose) {
		response.Error(c, domainerrors.BadRequest("unknown OTP purpose"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	result, err := h.otpUsecase.Verify(c.Request.Context(), userID, entities.OTPPurpose(input.Purpose), input.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	response.Success(c, status, result)
}
