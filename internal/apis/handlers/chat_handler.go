package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/dtos"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	user := currentUser(c)

	conversations, status, err := h.chatService.ListConversations(c.Request.Context(), user.UID)
	if err != nil {
		c.JSON(int(status), dtos.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

func (h *ChatHandler) CreateConversation(c *gin.Context) {
	user := currentUser(c)

	conversation, status, err := h.chatService.CreateConversation(c.Request.Context(), user)
	if err != nil {
		c.JSON(int(status), dtos.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, conversation)
}

func (h *ChatHandler) UpdateConversationTitle(c *gin.Context) {
	var req dtos.UpdateConversationTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dtos.ErrorResponse{Error: err.Error()})
		return
	}

	user := currentUser(c)
	conversationID := c.Param("id")

	conversation, status, err := h.chatService.UpdateConversationTitle(c.Request.Context(), user.UID, conversationID, req.Title)
	if err != nil {
		c.JSON(int(status), dtos.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, conversation)
}

func (h *ChatHandler) DeleteConversation(c *gin.Context) {
	user := currentUser(c)
	conversationID := c.Param("id")

	status, err := h.chatService.DeleteConversation(c.Request.Context(), user.UID, conversationID)
	if err != nil {
		c.JSON(int(status), dtos.ErrorResponse{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	user := currentUser(c)
	conversationID := c.Param("id")

	messages, status, err := h.chatService.ListMessages(c.Request.Context(), user.UID, conversationID)
	if err != nil {
		c.JSON(int(status), dtos.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) CreateMessage(c *gin.Context) {
	var req dtos.NewMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dtos.ErrorResponse{Error: err.Error()})
		return
	}

	user := currentUser(c)
	conversationID := c.Param("id")

	message, status, err := h.chatService.AppendMessage(c.Request.Context(), user.UID, conversationID, &req)
	if err != nil {
		c.JSON(int(status), dtos.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, message)
}
