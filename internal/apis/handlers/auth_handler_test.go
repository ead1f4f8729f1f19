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

type MockAuthService struct {
	VerifyTokenFunc func(ctx context.Context, idToken string) (*models.UserProfile, uint, error)
}

func (m *MockAuthService) VerifyToken(ctx context.Context, idToken string) (*models.UserProfile, uint, error) {
	return m.VerifyTokenFunc(ctx, idToken)
}

func authRouter(service *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewAuthHandler(service)

	router.POST("/auth/verify-token", handler.VerifyToken)

	protected := router.Group("/auth")
	protected.Use(asUser(testProfile()))
	protected.GET("/me", handler.Me)
	return router
}

func TestVerifyTokenEndpoint(t *testing.T) {
	email := "alice@example.com"
	service := &MockAuthService{
		VerifyTokenFunc: func(ctx context.Context, idToken string) (*models.UserProfile, uint, error) {
			assert.Equal(t, "firebase-id-token", idToken)
			return &models.UserProfile{UID: "u1", Email: &email, Name: "Alice"}, http.StatusOK, nil
		},
	}

	payload, _ := json.Marshal(dtos.VerifyTokenRequest{IDToken: "firebase-id-token"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-token", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	authRouter(service).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var profile models.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "u1", profile.UID)
	assert.Equal(t, "Alice", profile.Name)
	assert.False(t, profile.IsAnonymous)
}

func TestVerifyTokenEndpointMissingToken(t *testing.T) {
	service := &MockAuthService{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-token", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	authRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyTokenEndpointInvalidToken(t *testing.T) {
	service := &MockAuthService{
		VerifyTokenFunc: func(ctx context.Context, idToken string) (*models.UserProfile, uint, error) {
			return nil, http.StatusUnauthorized, errors.New("Invalid or expired token.")
		},
	}

	payload, _ := json.Marshal(dtos.VerifyTokenRequest{IDToken: "garbage"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-token", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	authRouter(service).ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body dtos.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid or expired token.", body.Error)
}

func TestVerifyTokenEndpointVerifierDown(t *testing.T) {
	service := &MockAuthService{
		VerifyTokenFunc: func(ctx context.Context, idToken string) (*models.UserProfile, uint, error) {
			return nil, http.StatusServiceUnavailable, errors.New("Firebase Admin SDK is not initialized. Authentication is disabled.")
		},
	}

	payload, _ := json.Marshal(dtos.VerifyTokenRequest{IDToken: "any"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-token", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	authRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	service := &MockAuthService{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	authRouter(service).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var profile models.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "u1", profile.UID)
}
