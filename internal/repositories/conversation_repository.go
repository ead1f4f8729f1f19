package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/constants"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/models"
	"github.com/PTD504/math-ocr-chatbot-backend/pkg/mongodb"
)

var (
	// ErrNotFound means the conversation does not exist under the caller's uid.
	ErrNotFound = errors.New("conversation not found")

	// ErrPermissionDenied means the store rejected the operation on
	// authorization grounds.
	ErrPermissionDenied = errors.New("permission denied by document store")

	// ErrUnavailable covers transport and driver failures.
	ErrUnavailable = errors.New("document store unavailable")
)

// ConversationRepository is the store adapter for conversations and their
// messages. Every method is scoped to the owning uid; callers pass the
// verified caller's uid, never one from the request.
type ConversationRepository interface {
	ListConversations(ctx context.Context, uid string) ([]*models.Conversation, error)
	CreateConversation(ctx context.Context, uid, userType string) (*models.Conversation, error)
	UpdateTitle(ctx context.Context, uid, conversationID, title string) (*models.Conversation, error)
	DeleteConversation(ctx context.Context, uid, conversationID string) error
	ListMessages(ctx context.Context, uid, conversationID string) ([]*models.Message, error)
	AppendMessage(ctx context.Context, uid, conversationID string, draft *models.MessageDraft) (*models.Message, error)
}

type conversationRepository struct {
	conversationCollection *mongo.Collection
	messageCollection      *mongo.Collection
}

func NewConversationRepository(mongoClient *mongodb.MongoDBClient) ConversationRepository {
	return &conversationRepository{
		conversationCollection: mongoClient.GetCollectionByName(constants.ConversationCollection),
		messageCollection:      mongoClient.GetCollectionByName(constants.MessageCollection),
	}
}

func (r *conversationRepository) ListConversations(ctx context.Context, uid string) ([]*models.Conversation, error) {
	filter := bson.M{"uid": uid}
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})

	cursor, err := r.conversationCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	conversations := []*models.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, translateError(err)
	}
	return conversations, nil
}

func (r *conversationRepository) CreateConversation(ctx context.Context, uid, userType string) (*models.Conversation, error) {
	conversation := models.NewConversation(uid, userType)
	if _, err := r.conversationCollection.InsertOne(ctx, conversation); err != nil {
		return nil, translateError(err)
	}
	return conversation, nil
}

func (r *conversationRepository) UpdateTitle(ctx context.Context, uid, conversationID, title string) (*models.Conversation, error) {
	filter := bson.M{"uid": uid, "id": conversationID}
	update := bson.M{"$set": bson.M{"title": title}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conversation models.Conversation
	err := r.conversationCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conversation)
	if err != nil {
		return nil, translateError(err)
	}
	return &conversation, nil
}

// DeleteConversation removes the messages first, then the conversation
// document. The cascade is best effort: a crash between the two deletes
// leaves orphaned messages behind.
func (r *conversationRepository) DeleteConversation(ctx context.Context, uid, conversationID string) error {
	filter := bson.M{"uid": uid, "id": conversationID}
	if err := r.conversationCollection.FindOne(ctx, filter).Err(); err != nil {
		return translateError(err)
	}

	if _, err := r.messageCollection.DeleteMany(ctx, bson.M{"uid": uid, "conversationId": conversationID}); err != nil {
		return translateError(err)
	}

	if _, err := r.conversationCollection.DeleteOne(ctx, filter); err != nil {
		log.Printf("DeleteConversation -> messages removed but conversation %s remains for uid %s: %v", conversationID, uid, err)
		return translateError(err)
	}
	return nil
}

func (r *conversationRepository) ListMessages(ctx context.Context, uid, conversationID string) ([]*models.Message, error) {
	filter := bson.M{"uid": uid, "conversationId": conversationID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.messageCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	messages := []*models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, translateError(err)
	}
	return messages, nil
}

func (r *conversationRepository) AppendMessage(ctx context.Context, uid, conversationID string, draft *models.MessageDraft) (*models.Message, error) {
	conversationFilter := bson.M{"uid": uid, "id": conversationID}
	if err := r.conversationCollection.FindOne(ctx, conversationFilter).Err(); err != nil {
		return nil, translateError(err)
	}

	message := models.NewMessage(uid, conversationID, draft)
	if _, err := r.messageCollection.InsertOne(ctx, message); err != nil {
		return nil, translateError(err)
	}

	// Server-side $inc keeps messageCount exact under concurrent appends;
	// a read-modify-write here would lose updates.
	update := bson.M{
		"$set": bson.M{"lastMessageAt": message.Timestamp},
		"$inc": bson.M{"messageCount": 1},
	}
	if _, err := r.conversationCollection.UpdateOne(ctx, conversationFilter, update); err != nil {
		return nil, translateError(err)
	}
	return message, nil
}

func translateError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 13 { // Unauthorized
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
