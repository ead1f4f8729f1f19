package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/middlewares"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/di"
)

func SetupAuthRoutes(router *gin.Engine) {
	authHandler, err := di.GetAuthHandler()
	if err != nil {
		log.Fatalf("Failed to get auth handler: %v", err)
	}

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/verify-token", authHandler.VerifyToken)
	}

	protected := router.Group("/auth")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/me", authHandler.Me)
	}
}
