package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/skinoai/internal/usecase"
)

type predictRequest struct {
	Image string `json:"image"`
	// Text carries free-form symptom notes from older mobile clients.
	// Accepted so those clients keep working, not used for classification.
	Text string `json:"text"`
}

// RegisterRoutes wires the HTTP handlers to the Gin router.
func RegisterRoutes(router *gin.Engine, uc *usecase.PredictionUseCase, authMiddleware gin.HandlerFunc) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "skin condition API is running"})
	})

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.POST("/predict", func(c *gin.Context) {
		var req predictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "request body must be JSON"})
			return
		}
		if strings.TrimSpace(req.Image) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "image data is required"})
			return
		}

		prediction, err := uc.Predict(c.Request.Context(), req.Image)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrMalformedInput):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			case errors.Is(err, usecase.ErrUpstream):
				c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "classification service unavailable"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			}
			return
		}

		resp := gin.H{
			"success":    true,
			"class":      prediction.Class,
			"confidence": prediction.Confidence,
			"message":    prediction.Message,
			"request_id": prediction.RequestID,
		}
		if prediction.Description != "" {
			resp["description"] = prediction.Description
		}
		c.JSON(http.StatusOK, resp)
	})

	router.GET("/result/:id", authMiddleware, func(c *gin.Context) {
		requestID := c.Param("id")
		if requestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "id is required"})
			return
		}

		log, err := uc.GetResult(c.Request.Context(), requestID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "result not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"request_id": log.RequestID,
			"class":      log.Class,
			"confidence": log.Confidence,
			"success":    log.Success,
			"details":    log.Details,
			"created_at": log.CreatedAt,
		})
	})

	router.GET("/metrics", authMiddleware, func(c *gin.Context) {
		summary, err := uc.GetMetricsSummary(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to aggregate metrics"})
			return
		}
		c.JSON(http.StatusOK, summary)
	})
}
