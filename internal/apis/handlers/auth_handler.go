package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/dtos"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// VerifyToken lets the frontend "sign in" with the backend after client-side
// Firebase auth: it verifies the posted ID token and returns the profile.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req dtos.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dtos.ErrorResponse{Error: err.Error()})
		return
	}

	profile, status, err := h.authService.VerifyToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(int(status), dtos.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Me returns the profile of the current authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
