package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/dtos"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/models"
	"github.com/PTD504/math-ocr-chatbot-backend/pkg/mathocr"
)

type ImageService interface {
	ProcessImage(ctx context.Context, user *models.UserProfile, image []byte) (*dtos.ImageProcessResponse, uint, error)
}

type imageService struct {
	modelClient mathocr.Client
}

func NewImageService(modelClient mathocr.Client) ImageService {
	return &imageService{modelClient: modelClient}
}

func (s *imageService) ProcessImage(ctx context.Context, user *models.UserProfile, image []byte) (*dtos.ImageProcessResponse, uint, error) {
	prediction, err := s.modelClient.Predict(ctx, image)
	if err != nil {
		return nil, predictionStatus(err), predictionError(err)
	}

	return &dtos.ImageProcessResponse{
		Formula:        prediction.Formula,
		ProcessingTime: prediction.ProcessingTime,
		UserUID:        user.UID,
	}, http.StatusOK, nil
}

func predictionStatus(err error) uint {
	var upstreamErr *mathocr.UpstreamError
	switch {
	case errors.Is(err, mathocr.ErrNotConfigured):
		return http.StatusInternalServerError
	case errors.Is(err, mathocr.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstreamErr):
		// The upstream's status is passed through as-is.
		return uint(upstreamErr.StatusCode)
	default:
		return http.StatusInternalServerError
	}
}

func predictionError(err error) error {
	var upstreamErr *mathocr.UpstreamError
	switch {
	case errors.Is(err, mathocr.ErrNotConfigured):
		log.Println("MODEL_API_BASE_URL is not configured in settings.")
		return errors.New("Model API URL is not configured.")
	case errors.Is(err, mathocr.ErrUnavailable):
		log.Printf("Network error calling Model API: %v", err)
		return errors.New("Cannot connect to Model API.")
	case errors.As(err, &upstreamErr):
		log.Printf("Model API returned HTTP error %d: %s", upstreamErr.StatusCode, upstreamErr.Body)
		return fmt.Errorf("Model API error: %s", upstreamErr.Body)
	default:
		log.Printf("Unexpected error when calling Model API: %v", err)
		return errors.New("Error communicating with Model API.")
	}
}
