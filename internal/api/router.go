package api

import (
	"net/http"

	"maternal-vitals/internal/api/handlers"
	"maternal-vitals/internal/api/middleware"
	"maternal-vitals/internal/api/models"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes around the dataset.
func NewRouter(store handlers.Dataset) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	dataHandler := handlers.NewDataHandler(store)

	router.GET("/health", dataHandler.Health)

	api := router.Group("/api")
	{
		api.GET("/data", dataHandler.GetData)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
	})

	return router
}
