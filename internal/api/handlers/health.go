package handlers

import (
	"net/http"

	"maternal-vitals/internal/api/models"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health
func (h *DataHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Records: len(h.store.All()),
	})
}
