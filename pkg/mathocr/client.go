package mathocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

var (
	// ErrNotConfigured means MODEL_API_BASE_URL was never set. This is a
	// deployment fault, surfaced as 500 on first use.
	ErrNotConfigured = errors.New("model API URL is not configured")

	// ErrUnavailable means the model API could not be reached at all.
	ErrUnavailable = errors.New("cannot connect to model API")

	// ErrBadResponse means the model API answered 2xx but without a formula.
	ErrBadResponse = errors.New("model API did not return a formula")
)

// UpstreamError carries a non-2xx answer from the model API so the caller
// can pass the status through.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model API error (status %d): %s", e.StatusCode, e.Body)
}

// Prediction is the model API's answer for one image.
type Prediction struct {
	Formula        string  `json:"formula"`
	ProcessingTime float64 `json:"processing_time"`
}

// Client sends formula images to the model API's /predict endpoint.
// A single attempt per call, no retries.
type Client interface {
	Predict(ctx context.Context, image []byte) (*Prediction, error)
}

type Config struct {
	BaseURL string
	APIKey  string // optional; sent as X-API-Key when present
	Timeout time.Duration
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BaseURL != "" && cfg.APIKey == "" {
		log.Println("Warning: MODEL_API_KEY is not configured. Calling model API without authentication.")
	}
	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *client) Predict(ctx context.Context, image []byte) (*Prediction, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	body, contentType, err := encodeImageForm(image)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var prediction Prediction
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if prediction.Formula == "" {
		return nil, ErrBadResponse
	}

	log.Printf("Model API prediction successful. Formula: %s, Time: %.2fs", truncate(prediction.Formula, 50), prediction.ProcessingTime)
	return &prediction, nil
}

// encodeImageForm builds the multipart body the model API expects:
// a single file field named "file" carrying the image as PNG.
func encodeImageForm(image []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="image.png"`)
	header.Set("Content-Type", "image/png")

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
