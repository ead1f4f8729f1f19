package services

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/models"
	"github.com/PTD504/math-ocr-chatbot-backend/pkg/firebaseauth"
)

type AuthService interface {
	VerifyToken(ctx context.Context, idToken string) (*models.UserProfile, uint, error)
}

type authService struct {
	verifier firebaseauth.Verifier
}

func NewAuthService(verifier firebaseauth.Verifier) AuthService {
	return &authService{verifier: verifier}
}

func (s *authService) VerifyToken(ctx context.Context, idToken string) (*models.UserProfile, uint, error) {
	profile, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, firebaseauth.ErrNotInitialized) {
			return nil, http.StatusServiceUnavailable, errors.New("Firebase Admin SDK is not initialized. Authentication is disabled.")
		}
		log.Printf("Firebase ID token verification failed: %v", err)
		return nil, http.StatusUnauthorized, errors.New("Invalid or expired token.")
	}
	return profile, http.StatusOK, nil
}
