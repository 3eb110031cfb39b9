package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "bankflow.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error to its HTTP status and sends the error body
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithStatus sends an error response with an explicit status and code
func ErrorWithStatus(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
