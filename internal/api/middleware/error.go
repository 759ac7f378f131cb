package middleware

import (
	"fmt"
	"net/http"

	"maternal-vitals/internal/api/models"
	"maternal-vitals/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers panics into a 500 with the usual error body.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		var message string
		switch v := recovered.(type) {
		case string:
			message = v
		case error:
			message = v.Error()
		default:
			message = fmt.Sprint(v)
		}
		logger.WithField("path", c.Request.URL.Path).WithField("panic", message).Error("Panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: message})
	})
}
