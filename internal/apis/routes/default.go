package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/middleware"
)

var startTime = time.Now()

func SetupDefaultRoutes(router *gin.Engine) {
	// Add recovery middleware
	router.Use(middleware.CustomRecoveryMiddleware())

	// Liveness probes, unauthenticated
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Chatbot Backend API is running!"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": startTime.Format(time.RFC3339),
		})
	})

	// Setup all route groups
	SetupAuthRoutes(router)
	SetupChatRoutes(router)
	SetupImageRoutes(router)
}
