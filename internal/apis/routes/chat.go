package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/middlewares"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/di"
)

func SetupChatRoutes(router *gin.Engine) {
	chatHandler, err := di.GetChatHandler()
	if err != nil {
		log.Fatalf("Failed to get chat handler: %v", err)
	}

	protected := router.Group("/chat")
	protected.Use(middlewares.AuthMiddleware())
	{
		// Conversation CRUD
		protected.GET("/conversations", chatHandler.ListConversations)
		protected.POST("/conversations", chatHandler.CreateConversation)
		protected.PUT("/conversations/:id/title", chatHandler.UpdateConversationTitle)
		protected.DELETE("/conversations/:id", chatHandler.DeleteConversation)

		// Messages within a conversation
		protected.GET("/conversations/:id/messages", chatHandler.ListMessages)
		protected.POST("/conversations/:id/messages", chatHandler.CreateMessage)
	}
}
