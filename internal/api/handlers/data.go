package handlers

import (
	"encoding/json"
	"net/http"

	"maternal-vitals/internal/api/models"
	"maternal-vitals/internal/model"

	"github.com/gin-gonic/gin"
)

// Dataset is the read side of data.Store.
type Dataset interface {
	All() []model.Record
}

// DataHandler serves the current dataset snapshot
type DataHandler struct {
	store Dataset
}

// NewDataHandler creates a new data handler
func NewDataHandler(store Dataset) *DataHandler {
	return &DataHandler{store: store}
}

// GetData handles GET /api/data
func (h *DataHandler) GetData(c *gin.Context) {
	records := h.store.All()
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "No data available"})
		return
	}

	// Encode before writing anything so a failure can still become a 500.
	body, err := json.Marshal(records)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
