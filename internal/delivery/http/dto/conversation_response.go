package dto

import (
	"time"

	"jobni/internal/domain/conversation"

	"github.com/google/uuid"
)

type ConversationResponse struct {
	ID            uuid.UUID  `json:"id"`
	JobID         uuid.UUID  `json:"job_id"`
	EmployerID    uuid.UUID  `json:"employer_id"`
	CandidateID   uuid.UUID  `json:"candidate_id"`
	ApplicationID *uuid.UUID `json:"application_id"`
	JobTitle      string     `json:"job_title"`
	EmployerName  string     `json:"employer_name"`
	CandidateName string     `json:"candidate_name"`
	LastMessage   *string    `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// MessageResponse marks system notices with a null sender_id and is_system.
type MessageResponse struct {
	ID             uuid.UUID  `json:"id"`
	ConversationID uuid.UUID  `json:"conversation_id"`
	SenderID       *uuid.UUID `json:"sender_id"`
	IsSystem       bool       `json:"is_system"`
	MessageText    string     `json:"message_text"`
	CreatedAt      time.Time  `json:"created_at"`
}

type PostMessageRequest struct {
	MessageText string `json:"message_text"`
}

func NewConversationResponses(in []conversation.Summary) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(in))
	for _, s := range in {
		out = append(out, ConversationResponse{
			ID:            s.ID,
			JobID:         s.JobID,
			EmployerID:    s.EmployerID,
			CandidateID:   s.CandidateID,
			ApplicationID: s.ApplicationID,
			JobTitle:      s.JobTitle,
			EmployerName:  s.EmployerName,
			CandidateName: s.CandidateName,
			LastMessage:   s.LastMessage,
			LastMessageAt: s.LastMessageAt,
			CreatedAt:     s.CreatedAt,
		})
	}
	return out
}

func NewMessageResponse(m conversation.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		IsSystem:       m.IsSystem(),
		MessageText:    m.Text,
		CreatedAt:      m.CreatedAt,
	}
}

func NewMessageResponses(in []conversation.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(in))
	for _, m := range in {
		out = append(out, NewMessageResponse(m))
	}
	return out
}
