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

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationUsecase *usecases.NotificationUsecase
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationUsecase *usecases.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

// List returns the caller's notification history
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	page, pageSize := parsePagination(c)
	notifications, meta, err := h.notificationUsecase.ListByUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	if notifications == nil {
		notifications = []*entities.Notification{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination":    meta,
	})
}

// Delete removes one of the caller's notifications
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	notificationID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.notificationUsecase.Delete(c.Request.Context(), userID, notificationID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
