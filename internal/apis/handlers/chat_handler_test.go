package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/dtos"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/handlers"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/models"
)

// MockChatService is a hand-rolled mock of services.ChatService; only the
// methods a test sets are expected to be called.
type MockChatService struct {
	ListConversationsFunc       func(ctx context.Context, uid string) ([]*models.Conversation, uint, error)
	CreateConversationFunc      func(ctx context.Context, user *models.UserProfile) (*models.Conversation, uint, error)
	UpdateConversationTitleFunc func(ctx context.Context, uid, conversationID, title string) (*models.Conversation, uint, error)
	DeleteConversationFunc      func(ctx context.Context, uid, conversationID string) (uint, error)
	ListMessagesFunc            func(ctx context.Context, uid, conversationID string) ([]*models.Message, uint, error)
	AppendMessageFunc           func(ctx context.Context, uid, conversationID string, req *dtos.NewMessageRequest) (*models.Message, uint, error)
}

func (m *MockChatService) ListConversations(ctx context.Context, uid string) ([]*models.Conversation, uint, error) {
	return m.ListConversationsFunc(ctx, uid)
}

func (m *MockChatService) CreateConversation(ctx context.Context, user *models.UserProfile) (*models.Conversation, uint, error) {
	return m.CreateConversationFunc(ctx, user)
}

func (m *MockChatService) UpdateConversationTitle(ctx context.Context, uid, conversationID, title string) (*models.Conversation, uint, error) {
	return m.UpdateConversationTitleFunc(ctx, uid, conversationID, title)
}

func (m *MockChatService) DeleteConversation(ctx context.Context, uid, conversationID string) (uint, error) {
	return m.DeleteConversationFunc(ctx, uid, conversationID)
}

func (m *MockChatService) ListMessages(ctx context.Context, uid, conversationID string) ([]*models.Message, uint, error) {
	return m.ListMessagesFunc(ctx, uid, conversationID)
}

func (m *MockChatService) AppendMessage(ctx context.Context, uid, conversationID string, req *dtos.NewMessageRequest) (*models.Message, uint, error) {
	return m.AppendMessageFunc(ctx, uid, conversationID, req)
}

// asUser injects a verified profile the way the auth middleware does.
func asUser(profile *models.UserProfile) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", profile)
		c.Next()
	}
}

func chatRouter(service *MockChatService, profile *models.UserProfile) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewChatHandler(service)

	group := router.Group("/chat")
	group.Use(asUser(profile))
	group.GET("/conversations", handler.ListConversations)
	group.POST("/conversations", handler.CreateConversation)
	group.PUT("/conversations/:id/title", handler.UpdateConversationTitle)
	group.DELETE("/conversations/:id", handler.DeleteConversation)
	group.GET("/conversations/:id/messages", handler.ListMessages)
	group.POST("/conversations/:id/messages", handler.CreateMessage)
	return router
}

func testProfile() *models.UserProfile {
	return &models.UserProfile{UID: "u1", Name: "Alice"}
}

func TestListConversationsHandler(t *testing.T) {
	service := &MockChatService{
		ListConversationsFunc: func(ctx context.Context, uid string) ([]*models.Conversation, uint, error) {
			assert.Equal(t, "u1", uid)
			return []*models.Conversation{
				{ID: "conv_2_aaaaaaaa", Title: "newer", LastMessageAt: 2, UserType: "authenticated"},
				{ID: "conv_1_bbbbbbbb", Title: "older", LastMessageAt: 1, UserType: "authenticated"},
			}, http.StatusOK, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/conversations", nil)
	chatRouter(service, testProfile()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "conv_2_aaaaaaaa", body[0]["id"])
	// Owner uid must not leak into the response
	assert.NotContains(t, body[0], "uid")
}

func TestCreateConversationHandler(t *testing.T) {
	service := &MockChatService{
		CreateConversationFunc: func(ctx context.Context, user *models.UserProfile) (*models.Conversation, uint, error) {
			assert.Equal(t, "u1", user.UID)
			return &models.Conversation{ID: "conv_1_cafecafe", Title: "Cuộc trò chuyện mới", UserType: "authenticated"}, http.StatusOK, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/conversations", nil)
	chatRouter(service, testProfile()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "conv_1_cafecafe", body["id"])
	assert.Equal(t, float64(0), body["messageCount"])
}

func TestUpdateConversationTitleHandler(t *testing.T) {
	service := &MockChatService{
		UpdateConversationTitleFunc: func(ctx context.Context, uid, conversationID, title string) (*models.Conversation, uint, error) {
			assert.Equal(t, "conv_1_cafecafe", conversationID)
			assert.Equal(t, "Integrals", title)
			return &models.Conversation{ID: conversationID, Title: title}, http.StatusOK, nil
		},
	}

	payload, _ := json.Marshal(dtos.UpdateConversationTitleRequest{Title: "Integrals"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/chat/conversations/conv_1_cafecafe/title", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	chatRouter(service, testProfile()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateConversationTitleMissingBody(t *testing.T) {
	service := &MockChatService{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/chat/conversations/conv_1_cafecafe/title", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	chatRouter(service, testProfile()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateConversationTitleNotFound(t *testing.T) {
	service := &MockChatService{
		UpdateConversationTitleFunc: func(ctx context.Context, uid, conversationID, title string) (*models.Conversation, uint, error) {
			return nil, http.StatusNotFound, errors.New("Conversation not found.")
		},
	}

	payload, _ := json.Marshal(dtos.UpdateConversationTitleRequest{Title: "x"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/chat/conversations/conv_0_deadbeef/title", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	chatRouter(service, testProfile()).ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body dtos.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Conversation not found.", body.Error)
}

func TestDeleteConversationHandler(t *testing.T) {
	service := &MockChatService{
		DeleteConversationFunc: func(ctx context.Context, uid, conversationID string) (uint, error) {
			return http.StatusNoContent, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/chat/conversations/conv_1_cafecafe", nil)
	chatRouter(service, testProfile()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestCreateMessageHandler(t *testing.T) {
	service := &MockChatService{
		AppendMessageFunc: func(ctx context.Context, uid, conversationID string, req *dtos.NewMessageRequest) (*models.Message, uint, error) {
			assert.Equal(t, "user", req.Type)
			require.NotNil(t, req.Content)
			assert.Equal(t, "2+2", *req.Content)
			content := *req.Content
			return &models.Message{ID: "msg_1_beefbeef", ConversationID: conversationID, Type: req.Type, Content: &content, Timestamp: 42}, http.StatusOK, nil
		},
	}

	payload := []byte(`{"type": "user", "content": "2+2"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/conversations/conv_1_cafecafe/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	chatRouter(service, testProfile()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "msg_1_beefbeef", body["id"])
	assert.Equal(t, "conv_1_cafecafe", body["conversationId"])
	assert.NotContains(t, body, "uid")
}

func TestCreateMessageMissingType(t *testing.T) {
	service := &MockChatService{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/conversations/conv_1_cafecafe/messages", bytes.NewReader([]byte(`{"content": "hi"}`)))
	req.Header.Set("Content-Type", "application/json")
	chatRouter(service, testProfile()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMessagesHandler(t *testing.T) {
	latex := `\pi r^2`
	service := &MockChatService{
		ListMessagesFunc: func(ctx context.Context, uid, conversationID string) ([]*models.Message, uint, error) {
			return []*models.Message{
				{ID: "msg_1_aaaaaaaa", ConversationID: conversationID, Type: "user", Timestamp: 1},
				{ID: "msg_2_bbbbbbbb", ConversationID: conversationID, Type: "bot", Latex: &latex, Timestamp: 2},
			}, http.StatusOK, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/conversations/conv_1_cafecafe/messages", nil)
	chatRouter(service, testProfile()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, `\pi r^2`, body[1]["latex"])
}
