package services

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/dtos"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/models"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/repositories"
)

type ChatService interface {
	ListConversations(ctx context.Context, uid string) ([]*models.Conversation, uint, error)
	CreateConversation(ctx context.Context, user *models.UserProfile) (*models.Conversation, uint, error)
	UpdateConversationTitle(ctx context.Context, uid, conversationID, title string) (*models.Conversation, uint, error)
	DeleteConversation(ctx context.Context, uid, conversationID string) (uint, error)
	ListMessages(ctx context.Context, uid, conversationID string) ([]*models.Message, uint, error)
	AppendMessage(ctx context.Context, uid, conversationID string, req *dtos.NewMessageRequest) (*models.Message, uint, error)
}

type chatService struct {
	conversationRepo repositories.ConversationRepository
}

func NewChatService(conversationRepo repositories.ConversationRepository) ChatService {
	return &chatService{conversationRepo: conversationRepo}
}

func (s *chatService) ListConversations(ctx context.Context, uid string) ([]*models.Conversation, uint, error) {
	conversations, err := s.conversationRepo.ListConversations(ctx, uid)
	if err != nil {
		log.Printf("Error retrieving conversations for user %s: %v", uid, err)
		return nil, storeStatus(err), errors.New("Failed to retrieve conversations.")
	}
	return conversations, http.StatusOK, nil
}

func (s *chatService) CreateConversation(ctx context.Context, user *models.UserProfile) (*models.Conversation, uint, error) {
	conversation, err := s.conversationRepo.CreateConversation(ctx, user.UID, user.UserType())
	if err != nil {
		log.Printf("Failed to create conversation for UID %s: %v", user.UID, err)
		if errors.Is(err, repositories.ErrPermissionDenied) {
			return nil, http.StatusForbidden, errors.New("Permission denied by document store rules.")
		}
		return nil, http.StatusInternalServerError, errors.New("Failed to create new conversation.")
	}
	log.Printf("Created new conversation %s for user %s", conversation.ID, user.UID)
	return conversation, http.StatusOK, nil
}

func (s *chatService) UpdateConversationTitle(ctx context.Context, uid, conversationID, title string) (*models.Conversation, uint, error) {
	conversation, err := s.conversationRepo.UpdateTitle(ctx, uid, conversationID, title)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, http.StatusNotFound, errors.New("Conversation not found.")
		}
		log.Printf("Error updating conversation %s title for user %s: %v", conversationID, uid, err)
		return nil, storeStatus(err), errors.New("Failed to update conversation title.")
	}
	log.Printf("Updated conversation %s title for user %s", conversationID, uid)
	return conversation, http.StatusOK, nil
}

func (s *chatService) DeleteConversation(ctx context.Context, uid, conversationID string) (uint, error) {
	if err := s.conversationRepo.DeleteConversation(ctx, uid, conversationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return http.StatusNotFound, errors.New("Conversation not found.")
		}
		log.Printf("Error deleting conversation %s for user %s: %v", conversationID, uid, err)
		return storeStatus(err), errors.New("Failed to delete conversation.")
	}
	log.Printf("Deleted conversation %s and its messages for user %s", conversationID, uid)
	return http.StatusNoContent, nil
}

func (s *chatService) ListMessages(ctx context.Context, uid, conversationID string) ([]*models.Message, uint, error) {
	messages, err := s.conversationRepo.ListMessages(ctx, uid, conversationID)
	if err != nil {
		log.Printf("Error retrieving messages for conversation %s and user %s: %v", conversationID, uid, err)
		return nil, storeStatus(err), errors.New("Failed to retrieve messages.")
	}
	return messages, http.StatusOK, nil
}

func (s *chatService) AppendMessage(ctx context.Context, uid, conversationID string, req *dtos.NewMessageRequest) (*models.Message, uint, error) {
	draft := &models.MessageDraft{
		Type:      req.Type,
		Content:   req.Content,
		Latex:     req.Latex,
		ImageData: req.ImageData,
		Preview:   req.Preview,
		FileName:  req.FileName,
	}

	message, err := s.conversationRepo.AppendMessage(ctx, uid, conversationID, draft)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, http.StatusNotFound, errors.New("Conversation not found.")
		}
		log.Printf("Error adding message to conversation %s for user %s: %v", conversationID, uid, err)
		return nil, storeStatus(err), errors.New("Failed to add message.")
	}
	log.Printf("Added message to conversation %s for user %s", conversationID, uid)
	return message, http.StatusOK, nil
}

func storeStatus(err error) uint {
	if errors.Is(err, repositories.ErrPermissionDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
