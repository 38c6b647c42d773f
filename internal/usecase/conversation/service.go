package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/authz"
	"jobni/internal/domain/conversation"
	"jobni/internal/domain/job"
	"jobni/internal/domain/notification"
	"jobni/internal/domain/store"
	"jobni/internal/domain/user"
	"jobni/internal/observability"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MaxMessageLength bounds a message body, counted in runes after trimming.
const MaxMessageLength = 4000

type MessagePublisher interface {
	PublishMessage(ctx context.Context, m conversation.Message) error
}

type Service struct {
	store     store.Store
	publisher MessagePublisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(st store.Store, publisher MessagePublisher) *Service {
	return &Service{
		store:     st,
		publisher: publisher,
		logger:    log.With().Str("component", "messaging").Logger(),
		now:       time.Now,
	}
}

// Ensure returns the conversation for (jobID, candidateID), creating it when
// absent. Concurrent calls for the same pair all observe one row.
func (s *Service) Ensure(ctx context.Context, jobID, employerID, candidateID uuid.UUID) (conversation.Conversation, error) {
	c, _, err := s.store.Conversations().Ensure(ctx, conversation.Conversation{
		ID:          uuid.New(),
		JobID:       jobID,
		EmployerID:  employerID,
		CandidateID: candidateID,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return conversation.Conversation{}, apperr.Internal(err)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, actor user.Actor) ([]conversation.Summary, error) {
	var f conversation.ListFilter
	switch actor.Role {
	case user.RoleEmployer:
		f.EmployerID = &actor.ID
	case user.RoleJobSeeker:
		f.CandidateID = &actor.ID
	case user.RoleAdmin:
	default:
		return nil, apperr.New(apperr.ErrForbidden, "Not authorized")
	}

	out, err := s.store.Conversations().List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Post appends text from a participant. Admins may read any conversation but
// only participants write to one.
func (s *Service) Post(ctx context.Context, actor user.Actor, conversationID uuid.UUID, text string) (_ conversation.Message, err error) {
	ctx, span := observability.StartSpan(ctx, "conversation.post",
		trace.WithAttributes(attribute.String("conversation.id", conversationID.String())))
	defer func() { observability.EndSpan(span, err) }()

	text = strings.TrimSpace(text)
	if text == "" {
		return conversation.Message{}, apperr.New(apperr.ErrInvalid, "Message text is required")
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return conversation.Message{}, apperr.New(apperr.ErrInvalid, fmt.Sprintf("Message exceeds %d characters", MaxMessageLength))
	}

	var stored conversation.Message
	err = s.store.InTx(ctx, func(ctx context.Context, tx store.Repositories) error {
		c, err := getConversation(ctx, tx, conversationID)
		if err != nil {
			return err
		}
		if !c.HasParticipant(actor.ID) {
			return apperr.New(apperr.ErrForbidden, "Not a participant in this conversation")
		}

		sender := actor.ID
		stored, err = tx.Conversations().AppendMessage(ctx, conversation.Message{
			ID:             uuid.New(),
			ConversationID: c.ID,
			SenderID:       &sender,
			Text:           text,
		})
		if err != nil {
			return apperr.Internal(err)
		}

		recipient := c.CandidateID
		if actor.ID == c.CandidateID {
			recipient = c.EmployerID
		}
		return s.notifyRecipient(ctx, tx, c, actor.ID, recipient)
	})
	if err != nil {
		return conversation.Message{}, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishMessage(ctx, stored); err != nil {
			s.logger.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("publish message failed")
		}
	}
	return stored, nil
}

// ListMessages returns the log oldest first. With a non-nil after, only
// messages appended after that message are returned.
func (s *Service) ListMessages(ctx context.Context, actor user.Actor, conversationID uuid.UUID, after *uuid.UUID) ([]conversation.Message, error) {
	if err := s.CanWatch(ctx, actor, conversationID); err != nil {
		return nil, err
	}

	var cursor *conversation.Message
	if after != nil {
		m, err := s.store.Conversations().GetMessage(ctx, conversationID, *after)
		if err != nil {
			if errors.Is(err, conversation.ErrMessageNotFound) {
				return nil, apperr.New(apperr.ErrInvalid, "Unknown message cursor")
			}
			return nil, apperr.Internal(err)
		}
		cursor = &m
	}

	msgs, err := s.store.Conversations().ListMessages(ctx, conversationID, cursor)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return msgs, nil
}

// CanWatch reports whether actor may read the conversation: its participants
// and admins.
func (s *Service) CanWatch(ctx context.Context, actor user.Actor, conversationID uuid.UUID) error {
	c, err := getConversation(ctx, s.store, conversationID)
	if err != nil {
		return err
	}
	if !authz.IsParty(actor, c.EmployerID, c.CandidateID) {
		return apperr.New(apperr.ErrForbidden, "Not a participant in this conversation")
	}
	return nil
}

func (s *Service) notifyRecipient(ctx context.Context, tx store.Repositories, c conversation.Conversation, senderID, recipientID uuid.UUID) error {
	sender, err := tx.Users().GetByID(ctx, senderID)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return apperr.Internal(err)
	}
	title := "a job"
	j, err := tx.Jobs().GetByID(ctx, c.JobID)
	switch {
	case err == nil:
		title = j.Title
	case !errors.Is(err, job.ErrNotFound):
		return apperr.Internal(err)
	}

	name := sender.Name
	if name == "" {
		name = "Someone"
	}
	err = tx.Notifications().Create(ctx, notification.Notification{
		ID:        uuid.New(),
		UserID:    recipientID,
		Type:      notification.TypeNewMessage,
		Message:   fmt.Sprintf("New message from %s about %s", name, title),
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func getConversation(ctx context.Context, repos store.Repositories, id uuid.UUID) (conversation.Conversation, error) {
	c, err := repos.Conversations().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			return conversation.Conversation{}, apperr.New(apperr.ErrNotFound, "Conversation not found")
		}
		return conversation.Conversation{}, apperr.Internal(err)
	}
	return c, nil
}
