package constants

const (
	MessageTypeUser = "user"
	MessageTypeBot  = "bot"
)

const (
	ConversationIDPrefix = "conv"
	MessageIDPrefix      = "msg"
)

// DefaultConversationTitle is what a conversation is called until the user renames it.
const DefaultConversationTitle = "Cuộc trò chuyện mới"
