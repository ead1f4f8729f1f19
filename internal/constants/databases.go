package constants

const (
	ConversationCollection = "conversations"
	MessageCollection      = "messages"
)
