package conversation

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("conversation not found")
	ErrMessageNotFound = errors.New("message not found")
)

type Repository interface {
	// Ensure inserts c unless a conversation for (c.JobID, c.CandidateID)
	// exists, and returns the stored row. created is false when an existing
	// row was returned.
	Ensure(ctx context.Context, c Conversation) (stored Conversation, created bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (Conversation, error)
	List(ctx context.Context, f ListFilter) ([]Summary, error)

	// AppendMessage stores m with a created_at that is not earlier than any
	// message already in the conversation, and returns the stored row.
	AppendMessage(ctx context.Context, m Message) (Message, error)
	GetMessage(ctx context.Context, conversationID, messageID uuid.UUID) (Message, error)
	// ListMessages returns the log in order. A non-nil after restricts the
	// result to messages appended after that one.
	ListMessages(ctx context.Context, conversationID uuid.UUID, after *Message) ([]Message, error)
}
