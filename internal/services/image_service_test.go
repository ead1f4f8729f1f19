package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/models"
	"github.com/PTD504/math-ocr-chatbot-backend/pkg/mathocr"
)

type mockModelClient struct {
	PredictFunc func(ctx context.Context, image []byte) (*mathocr.Prediction, error)
}

func (m *mockModelClient) Predict(ctx context.Context, image []byte) (*mathocr.Prediction, error) {
	return m.PredictFunc(ctx, image)
}

func TestProcessImageSuccess(t *testing.T) {
	service := NewImageService(&mockModelClient{
		PredictFunc: func(ctx context.Context, image []byte) (*mathocr.Prediction, error) {
			assert.Equal(t, []byte("png-bytes"), image)
			return &mathocr.Prediction{Formula: `\sqrt{2}`, ProcessingTime: 0.42}, nil
		},
	})

	response, status, err := service.ProcessImage(context.Background(), &models.UserProfile{UID: "u1", Name: "Alice"}, []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, uint(http.StatusOK), status)
	assert.Equal(t, `\sqrt{2}`, response.Formula)
	assert.Equal(t, 0.42, response.ProcessingTime)
	assert.Equal(t, "u1", response.UserUID)
}

func TestProcessImageNotConfigured(t *testing.T) {
	service := NewImageService(&mockModelClient{
		PredictFunc: func(ctx context.Context, image []byte) (*mathocr.Prediction, error) {
			return nil, mathocr.ErrNotConfigured
		},
	})

	_, status, err := service.ProcessImage(context.Background(), &models.UserProfile{UID: "u1"}, []byte("x"))
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusInternalServerError), status)
	assert.Contains(t, err.Error(), "not configured")
}

func TestProcessImageUpstreamUnavailable(t *testing.T) {
	service := NewImageService(&mockModelClient{
		PredictFunc: func(ctx context.Context, image []byte) (*mathocr.Prediction, error) {
			return nil, mathocr.ErrUnavailable
		},
	})

	_, status, err := service.ProcessImage(context.Background(), &models.UserProfile{UID: "u1"}, []byte("x"))
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusServiceUnavailable), status)
}

func TestProcessImageUpstreamStatusPassthrough(t *testing.T) {
	service := NewImageService(&mockModelClient{
		PredictFunc: func(ctx context.Context, image []byte) (*mathocr.Prediction, error) {
			return nil, &mathocr.UpstreamError{StatusCode: http.StatusUnprocessableEntity, Body: "unsupported image"}
		},
	})

	_, status, err := service.ProcessImage(context.Background(), &models.UserProfile{UID: "u1"}, []byte("x"))
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusUnprocessableEntity), status)
	assert.Contains(t, err.Error(), "unsupported image")
}

func TestProcessImageBadUpstreamResponse(t *testing.T) {
	service := NewImageService(&mockModelClient{
		PredictFunc: func(ctx context.Context, image []byte) (*mathocr.Prediction, error) {
			return nil, mathocr.ErrBadResponse
		},
	})

	_, status, err := service.ProcessImage(context.Background(), &models.UserProfile{UID: "u1"}, []byte("x"))
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusInternalServerError), status)
}
