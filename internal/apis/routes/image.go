package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/middlewares"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/di"
)

func SetupImageRoutes(router *gin.Engine) {
	imageHandler, err := di.GetImageHandler()
	if err != nil {
		log.Fatalf("Failed to get image handler: %v", err)
	}

	protected := router.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.POST("/process-image", imageHandler.ProcessImage)
	}
}
