package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the thread between one employer and one candidate about one
// job. At most one exists per (JobID, CandidateID).
type Conversation struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	EmployerID    uuid.UUID
	CandidateID   uuid.UUID
	ApplicationID *uuid.UUID
	CreatedAt     time.Time
}

func (c Conversation) HasParticipant(id uuid.UUID) bool {
	return id != uuid.Nil && (id == c.EmployerID || id == c.CandidateID)
}

type Summary struct {
	Conversation

	JobTitle      string
	EmployerName  string
	CandidateName string
	LastMessage   *string
	LastMessageAt *time.Time
}

// Message is append-only. A nil SenderID marks a system notice.
type Message struct {
	ID             uuid.UUID
	Seq            int64
	ConversationID uuid.UUID
	SenderID       *uuid.UUID
	Text           string
	CreatedAt      time.Time
}

func (m Message) IsSystem() bool {
	return m.SenderID == nil
}

type ListFilter struct {
	EmployerID  *uuid.UUID
	CandidateID *uuid.UUID
}
