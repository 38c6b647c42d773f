package repository

import (
	"context"

	"jobni/internal/database"
	"jobni/internal/database/postgres"
	"jobni/internal/domain/conversation"

	"github.com/google/uuid"
)

const (
	conversationColumns = `id, job_id, employer_id, candidate_id, application_id, created_at`
	messageColumns      = `seq, id, conversation_id, sender_id, message_text, created_at`
)

type PostgresConversationRepository struct {
	db database.Querier
}

func NewPostgresConversationRepository(db database.Querier) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

func (r *PostgresConversationRepository) Ensure(ctx context.Context, c conversation.Conversation) (conversation.Conversation, bool, error) {
	inserted, err := scanConversation(r.db.QueryRow(ctx,
		`INSERT INTO conversations (id, job_id, employer_id, candidate_id, application_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (job_id, candidate_id) DO NOTHING
		 RETURNING `+conversationColumns,
		c.ID, c.JobID, c.EmployerID, c.CandidateID, c.ApplicationID, c.CreatedAt,
	))
	if err == nil {
		return inserted, true, nil
	}
	if err != conversation.ErrNotFound {
		return conversation.Conversation{}, false, err
	}

	// Lost the race or already present: the committed row is visible to this
	// new statement.
	existing, err := scanConversation(r.db.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE job_id = $1 AND candidate_id = $2`,
		c.JobID, c.CandidateID,
	))
	if err != nil {
		return conversation.Conversation{}, false, err
	}
	return existing, false, nil
}

func (r *PostgresConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (conversation.Conversation, error) {
	return scanConversation(r.db.QueryRow(ctx, `SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, id))
}

func (r *PostgresConversationRepository) List(ctx context.Context, f conversation.ListFilter) ([]conversation.Summary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.job_id, c.employer_id, c.candidate_id, c.application_id, c.created_at,
		        j.title, e.name, k.name, lm.message_text, lm.created_at
		 FROM conversations c
		 JOIN jobs j ON j.id = c.job_id
		 JOIN users e ON e.id = c.employer_id
		 JOIN users k ON k.id = c.candidate_id
		 LEFT JOIN LATERAL (
		     SELECT m.message_text, m.created_at
		     FROM messages m
		     WHERE m.conversation_id = c.id
		     ORDER BY m.created_at DESC, m.seq DESC
		     LIMIT 1
		 ) lm ON true
		 WHERE ($1::uuid IS NULL OR c.employer_id = $1)
		   AND ($2::uuid IS NULL OR c.candidate_id = $2)
		 ORDER BY COALESCE(lm.created_at, c.created_at) DESC, c.id`,
		f.EmployerID, f.CandidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]conversation.Summary, 0)
	for rows.Next() {
		var s conversation.Summary
		if err := rows.Scan(
			&s.ID, &s.JobID, &s.EmployerID, &s.CandidateID, &s.ApplicationID, &s.CreatedAt,
			&s.JobTitle, &s.EmployerName, &s.CandidateName, &s.LastMessage, &s.LastMessageAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendMessage locks the conversation row first, so it must run inside a
// transaction for the lock to order concurrent appends.
func (r *PostgresConversationRepository) AppendMessage(ctx context.Context, m conversation.Message) (conversation.Message, error) {
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, `SELECT id FROM conversations WHERE id = $1 FOR UPDATE`, m.ConversationID).Scan(&id); err != nil {
		if postgres.IsNoRows(err) {
			return conversation.Message{}, conversation.ErrNotFound
		}
		return conversation.Message{}, err
	}

	return scanMessage(r.db.QueryRow(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, message_text, created_at)
		 SELECT $1, $2, $3, $4, GREATEST(clock_timestamp(), COALESCE(
		     (SELECT max(created_at) FROM messages WHERE conversation_id = $2), '-infinity'::timestamptz))
		 RETURNING `+messageColumns,
		m.ID, m.ConversationID, m.SenderID, m.Text,
	))
}

func (r *PostgresConversationRepository) GetMessage(ctx context.Context, conversationID, messageID uuid.UUID) (conversation.Message, error) {
	msg, err := scanMessage(r.db.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE conversation_id = $1 AND id = $2`,
		conversationID, messageID,
	))
	if err == conversation.ErrNotFound {
		return conversation.Message{}, conversation.ErrMessageNotFound
	}
	return msg, err
}

func (r *PostgresConversationRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, after *conversation.Message) ([]conversation.Message, error) {
	var (
		rows database.Rows
		err  error
	)
	if after == nil {
		rows, err = r.db.Query(ctx,
			`SELECT `+messageColumns+` FROM messages
			 WHERE conversation_id = $1
			 ORDER BY created_at, seq`,
			conversationID,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+messageColumns+` FROM messages
			 WHERE conversation_id = $1 AND (created_at, seq) > ($2, $3)
			 ORDER BY created_at, seq`,
			conversationID, after.CreatedAt, after.Seq,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]conversation.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanConversation(row database.Row) (conversation.Conversation, error) {
	var c conversation.Conversation
	if err := row.Scan(&c.ID, &c.JobID, &c.EmployerID, &c.CandidateID, &c.ApplicationID, &c.CreatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return conversation.Conversation{}, conversation.ErrNotFound
		}
		return conversation.Conversation{}, err
	}
	return c, nil
}

func scanMessage(row database.Row) (conversation.Message, error) {
	var m conversation.Message
	if err := row.Scan(&m.Seq, &m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.CreatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return conversation.Message{}, conversation.ErrNotFound
		}
		return conversation.Message{}, err
	}
	return m, nil
}
