package models

import (
	"time"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/constants"
)

type Conversation struct {
	ID            string `bson:"id" json:"id"`
	UID           string `bson:"uid" json:"-"` // owner, never exposed in responses
	Title         string `bson:"title" json:"title"`
	CreatedAt     int64  `bson:"createdAt" json:"createdAt"`         // epoch ms
	LastMessageAt int64  `bson:"lastMessageAt" json:"lastMessageAt"` // epoch ms
	MessageCount  int64  `bson:"messageCount" json:"messageCount"`
	UserType      string `bson:"userType" json:"userType"` // 'anonymous' or 'authenticated'
}

func NewConversation(uid, userType string) *Conversation {
	now := time.Now().UnixMilli()
	return &Conversation{
		ID:            newDocumentID(constants.ConversationIDPrefix, now),
		UID:           uid,
		Title:         constants.DefaultConversationTitle,
		CreatedAt:     now,
		LastMessageAt: now,
		MessageCount:  0,
		UserType:      userType,
	}
}
