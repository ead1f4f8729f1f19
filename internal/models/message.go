package models

import (
	"time"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/constants"
)

type Message struct {
	ID             string  `bson:"id" json:"id"`
	UID            string  `bson:"uid" json:"-"` // owner, never exposed in responses
	ConversationID string  `bson:"conversationId" json:"conversationId"`
	Type           string  `bson:"type" json:"type"` // 'user' or 'bot'
	Content        *string `bson:"content,omitempty" json:"content,omitempty"`
	Latex          *string `bson:"latex,omitempty" json:"latex,omitempty"`
	ImageData      *string `bson:"imageData,omitempty" json:"imageData,omitempty"`
	Preview        *string `bson:"preview,omitempty" json:"preview,omitempty"`
	FileName       *string `bson:"fileName,omitempty" json:"fileName,omitempty"`
	Timestamp      int64   `bson:"timestamp" json:"timestamp"` // epoch ms
}

// MessageDraft is the caller-supplied part of a message; id, owner and
// timestamp are assigned on append.
type MessageDraft struct {
	Type      string
	Content   *string
	Latex     *string
	ImageData *string
	Preview   *string
	FileName  *string
}

func NewMessage(uid, conversationID string, draft *MessageDraft) *Message {
	now := time.Now().UnixMilli()
	return &Message{
		ID:             newDocumentID(constants.MessageIDPrefix, now),
		UID:            uid,
		ConversationID: conversationID,
		Type:           draft.Type,
		Content:        draft.Content,
		Latex:          draft.Latex,
		ImageData:      draft.ImageData,
		Preview:        draft.Preview,
		FileName:       draft.FileName,
		Timestamp:      now,
	}
}
