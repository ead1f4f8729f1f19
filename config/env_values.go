package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Environment struct {
	// Server configs
	IsDocker          bool
	Host              string
	Port              string
	Environment       string
	CorsAllowedOrigin string

	// Firebase Admin configs
	// Prefer the inline JSON blob for deployments; fall back to a key file for local runs.
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	// Database configs
	MongoURI          string
	MongoDatabaseName string

	// Model API configs
	ModelAPIBaseURL        string
	ModelAPIKey            string
	ModelAPITimeoutSeconds int
}

var Env Environment

// LoadEnv loads environment variables from .env file if present
// and validates required variables
func LoadEnv() error {
	// Check if running in Docker
	Env.IsDocker = os.Getenv("IS_DOCKER") == "true"

	// Load .env file only if not running in Docker
	if !Env.IsDocker {
		if err := godotenv.Load(); err != nil {
			fmt.Printf("Warning: .env file not found: %v\n", err)
		}
	}

	// Server configs
	Env.Host = getEnvWithDefault("HOST", "0.0.0.0")
	Env.Port = getEnvWithDefault("PORT", "8000")
	Env.Environment = getEnvWithDefault("ENVIRONMENT", "DEVELOPMENT")
	Env.CorsAllowedOrigin = getEnvWithDefault("CORS_ALLOWED_ORIGIN", "http://localhost:5173")

	// Firebase configs. Both may legitimately be absent: auth endpoints then
	// answer 503 instead of the process refusing to start.
	Env.FirebaseServiceAccountJSON = os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY_JSON")
	Env.FirebaseServiceAccountPath = getEnvWithDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "firebase_admin_key.json")

	// Database configs
	Env.MongoURI = getEnvWithDefault("MONGODB_URI", "mongodb://localhost:27017/mathocr")
	Env.MongoDatabaseName = getEnvWithDefault("MONGODB_NAME", "mathocr")

	// Model API configs
	Env.ModelAPIBaseURL = os.Getenv("MODEL_API_BASE_URL")
	Env.ModelAPIKey = os.Getenv("MODEL_API_KEY")
	Env.ModelAPITimeoutSeconds = getIntEnvWithDefault("MODEL_API_TIMEOUT_SECONDS", 30)

	return validateConfig()
}

// Helper functions to get environment variables with defaults and validation
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	strValue := os.Getenv(key)
	if strValue == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strValue)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %d\n", key, defaultValue)
		return defaultValue
	}
	return value
}

func validateConfig() error {
	// Validate MongoDB URI format
	if !isValidURI(Env.MongoURI) {
		return fmt.Errorf("invalid MONGODB_URI format: %s", Env.MongoURI)
	}

	if Env.ModelAPITimeoutSeconds <= 0 {
		return fmt.Errorf("MODEL_API_TIMEOUT_SECONDS must be positive, got: %d", Env.ModelAPITimeoutSeconds)
	}

	if Env.ModelAPIBaseURL == "" {
		fmt.Println("Warning: MODEL_API_BASE_URL is not set. Image processing will be unavailable.")
	}

	return nil
}

func isValidURI(uri string) bool {
	return len(uri) > 0 && (len(uri) > 10)
}
