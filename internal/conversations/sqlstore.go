package conversations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Store persists conversations and their messages in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates the conversation tables if needed and returns the store.
func NewStore(db *sql.DB) (*Store, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id INTEGER NOT NULL REFERENCES conversations(id),
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init conversation tables: %w", err)
	}
	return &Store{db: db}, nil
}

// GetOrCreate returns the owner's existing conversation, or creates a fresh
// one when id is nil, unknown, or owned by someone else.
func (s *Store) GetOrCreate(ctx context.Context, userID string, id *int64) (*Conversation, error) {
	if id != nil {
		row := s.db.QueryRowContext(ctx,
			`SELECT id, user_id, created_at, updated_at FROM conversations
			 WHERE id = ? AND user_id = ?`, *id, userID)

		var c Conversation
		err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
		if err == nil {
			return &c, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get conversation: %w", err)
		}
		slog.Debug("conversation not found for owner, creating new", "conversation", *id, "user", userID)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (user_id, created_at, updated_at) VALUES (?, ?, ?)`,
		userID, now, now)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("conversation id: %w", err)
	}
	return &Conversation{ID: newID, UserID: userID, CreatedAt: now, UpdatedAt: now}, nil
}

// AppendMessage records one turn and bumps the conversation timestamp.
func (s *Store) AppendMessage(ctx context.Context, conversationID int64, userID, role, content string) (*Message, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, user_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		conversationID, userID, role, content, now)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("message id: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ?`, now, conversationID); err != nil {
		slog.Warn("conversation timestamp not updated", "conversation", conversationID, "error", err)
	}

	return &Message{
		ID:             id,
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		CreatedAt:      now,
	}, nil
}

// History returns up to limit messages in creation order. A conversation not
// owned by userID yields an empty history, not an error.
func (s *Store) History(ctx context.Context, conversationID int64, userID string, limit int) ([]*Message, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM conversations WHERE id = ? AND user_id = ?`, conversationID, userID)
	var owned int
	if err := row.Scan(&owned); err != nil {
		return nil, fmt.Errorf("check conversation owner: %w", err)
	}
	if owned == 0 {
		return nil, nil
	}

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, user_id, role, content, created_at
		 FROM messages WHERE conversation_id = ? ORDER BY created_at, id LIMIT ?`,
		conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
