package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/models"
)

// currentUser returns the profile the auth middleware stored on the request.
// Only valid on routes behind middlewares.AuthMiddleware.
func currentUser(c *gin.Context) *models.UserProfile {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	profile, _ := value.(*models.UserProfile)
	return profile
}
