package ws

import (
	"encoding/json"
	"time"

	"jobni/internal/domain/conversation"
)

const EventMessagePosted = "message_posted"

type MessagePayload struct {
	ID             string  `json:"id"`
	ConversationID string  `json:"conversation_id"`
	SenderID       *string `json:"sender_id"`
	MessageText    string  `json:"message_text"`
	IsSystem       bool    `json:"is_system"`
	CreatedAt      string  `json:"created_at"`
}

type MessagePostedEvent struct {
	Type           string         `json:"type"`
	ConversationID string         `json:"conversation_id"`
	Message        MessagePayload `json:"message"`
}

func EncodeMessagePosted(m conversation.Message) ([]byte, error) {
	var sender *string
	if m.SenderID != nil {
		s := m.SenderID.String()
		sender = &s
	}
	return json.Marshal(MessagePostedEvent{
		Type:           EventMessagePosted,
		ConversationID: m.ConversationID.String(),
		Message: MessagePayload{
			ID:             m.ID.String(),
			ConversationID: m.ConversationID.String(),
			SenderID:       sender,
			MessageText:    m.Text,
			IsSystem:       m.IsSystem(),
			CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	})
}
