package middlewares

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/dtos"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/di"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/services"
)

const userContextKey = "user"

var authService services.AuthService

// AuthMiddleware verifies the bearer token and stores the resulting profile
// in the request context. Identity only ever comes from the verified token;
// no body or path parameter can establish it.
func AuthMiddleware() gin.HandlerFunc {
	if authService == nil {
		if err := di.DiContainer.Invoke(func(service services.AuthService) {
			authService = service
		}); err != nil {
			log.Fatalf("Failed to provide auth service: %v", err)
		}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, dtos.ErrorResponse{Error: "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, dtos.ErrorResponse{Error: "Invalid authorization header format"})
			c.Abort()
			return
		}

		profile, status, err := authService.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(int(status), dtos.ErrorResponse{Error: err.Error()})
			c.Abort()
			return
		}

		c.Set(userContextKey, profile)
		c.Next()
	}
}
