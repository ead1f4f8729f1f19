package di

import (
	"log"
	"time"

	"go.uber.org/dig"

	"github.com/PTD504/math-ocr-chatbot-backend/config"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/handlers"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/repositories"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/services"
	"github.com/PTD504/math-ocr-chatbot-backend/pkg/firebaseauth"
	"github.com/PTD504/math-ocr-chatbot-backend/pkg/mathocr"
	"github.com/PTD504/math-ocr-chatbot-backend/pkg/mongodb"
)

var DiContainer *dig.Container

func Initialize() {
	DiContainer = dig.New()

	// Initialize MongoDB
	dbConfig := mongodb.MongoDbConfigModel{
		ConnectionUrl: config.Env.MongoURI,
		DatabaseName:  config.Env.MongoDatabaseName,
	}
	mongodbClient, err := mongodb.InitializeDatabaseConnection(dbConfig)
	if err != nil {
		log.Fatalf("Failed to initialize MongoDB client: %v", err)
	}

	// Initialize the Firebase token verifier. Missing credentials are not
	// fatal: auth endpoints answer 503 until the key is provisioned.
	verifier, err := firebaseauth.New(firebaseauth.Config{
		ServiceAccountJSON: config.Env.FirebaseServiceAccountJSON,
		ServiceAccountPath: config.Env.FirebaseServiceAccountPath,
	})
	if err != nil {
		log.Printf("Warning: Firebase Admin SDK not initialized (%v). User authentication will be disabled.", err)
		verifier = firebaseauth.Disabled()
	} else {
		log.Println("Firebase Admin SDK initialized successfully.")
	}

	// Initialize the model API client
	modelClient := mathocr.NewClient(mathocr.Config{
		BaseURL: config.Env.ModelAPIBaseURL,
		APIKey:  config.Env.ModelAPIKey,
		Timeout: time.Duration(config.Env.ModelAPITimeoutSeconds) * time.Second,
	})

	conversationRepo := repositories.NewConversationRepository(mongodbClient)

	// Provide all dependencies to the container
	if err := DiContainer.Provide(func() *mongodb.MongoDBClient { return mongodbClient }); err != nil {
		log.Fatalf("Failed to provide MongoDB client: %v", err)
	}

	if err := DiContainer.Provide(func() firebaseauth.Verifier { return verifier }); err != nil {
		log.Fatalf("Failed to provide Firebase verifier: %v", err)
	}

	if err := DiContainer.Provide(func() mathocr.Client { return modelClient }); err != nil {
		log.Fatalf("Failed to provide model API client: %v", err)
	}

	if err := DiContainer.Provide(func() repositories.ConversationRepository { return conversationRepo }); err != nil {
		log.Fatalf("Failed to provide conversation repository: %v", err)
	}

	// Provide services
	if err := DiContainer.Provide(func(verifier firebaseauth.Verifier) services.AuthService {
		return services.NewAuthService(verifier)
	}); err != nil {
		log.Fatalf("Failed to provide auth service: %v", err)
	}

	if err := DiContainer.Provide(func(conversationRepo repositories.ConversationRepository) services.ChatService {
		return services.NewChatService(conversationRepo)
	}); err != nil {
		log.Fatalf("Failed to provide chat service: %v", err)
	}

	if err := DiContainer.Provide(func(modelClient mathocr.Client) services.ImageService {
		return services.NewImageService(modelClient)
	}); err != nil {
		log.Fatalf("Failed to provide image service: %v", err)
	}

	// Provide handlers
	if err := DiContainer.Provide(func(authService services.AuthService) *handlers.AuthHandler {
		return handlers.NewAuthHandler(authService)
	}); err != nil {
		log.Fatalf("Failed to provide auth handler: %v", err)
	}

	if err := DiContainer.Provide(func(chatService services.ChatService) *handlers.ChatHandler {
		return handlers.NewChatHandler(chatService)
	}); err != nil {
		log.Fatalf("Failed to provide chat handler: %v", err)
	}

	if err := DiContainer.Provide(func(imageService services.ImageService) *handlers.ImageHandler {
		return handlers.NewImageHandler(imageService)
	}); err != nil {
		log.Fatalf("Failed to provide image handler: %v", err)
	}
}

// GetAuthHandler retrieves the AuthHandler from the DI container
func GetAuthHandler() (*handlers.AuthHandler, error) {
	var handler *handlers.AuthHandler
	err := DiContainer.Invoke(func(h *handlers.AuthHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// GetChatHandler retrieves the ChatHandler from the DI container
func GetChatHandler() (*handlers.ChatHandler, error) {
	var handler *handlers.ChatHandler
	err := DiContainer.Invoke(func(h *handlers.ChatHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// GetImageHandler retrieves the ImageHandler from the DI container
func GetImageHandler() (*handlers.ImageHandler, error) {
	var handler *handlers.ImageHandler
	err := DiContainer.Invoke(func(h *handlers.ImageHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}
