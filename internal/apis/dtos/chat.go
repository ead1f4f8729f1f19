package dtos

type UpdateConversationTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

// NewMessageRequest is the caller-supplied message body. Ids, owner and
// timestamp are assigned server side.
type NewMessageRequest struct {
	Type      string  `json:"type" binding:"required"`
	Content   *string `json:"content"`
	Latex     *string `json:"latex"`
	ImageData *string `json:"imageData"`
	Preview   *string `json:"preview"`
	FileName  *string `json:"fileName"`
}
