// Package archive — repository.go runs all queries against
// channel_messages.
package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerbot/internal/common"
)

// Repository works with the channel_messages table.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the archive repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Record stores one message. Edits arrive as the same (chat_id,
// message_id) pair, so conflicts overwrite the content.
func (r *Repository) Record(ctx context.Context, m Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO channel_messages (chat_id, message_id, author_id, author_name, content, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chat_id, message_id)
		DO UPDATE SET content = EXCLUDED.content, author_name = EXCLUDED.author_name
	`, m.ChatID, m.MessageID, m.AuthorID, m.AuthorName, m.Content, m.SentAt)
	if err != nil {
		return fmt.Errorf("failed to record message: %w", err)
	}
	return nil
}

// Get returns one archived message, or common.ErrMessageNotArchived when
// the bot never saw it.
func (r *Repository) Get(ctx context.Context, chatID, messageID int64) (*Message, error) {
	var m Message
	err := r.db.QueryRow(ctx, `
		SELECT chat_id, message_id, author_id, author_name, content, sent_at
		FROM channel_messages
		WHERE chat_id = $1 AND message_id = $2
	`, chatID, messageID).Scan(
		&m.ChatID, &m.MessageID, &m.AuthorID, &m.AuthorName, &m.Content, &m.SentAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrMessageNotArchived
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	return &m, nil
}

// PageBefore returns up to limit messages older than beforeID, newest
// first. beforeID = 0 starts from the most recent message. Keyset
// pagination on message_id keeps pages stable while new messages arrive.
func (r *Repository) PageBefore(ctx context.Context, chatID, beforeID int64, limit int) ([]*Message, error) {
	query := `
		SELECT chat_id, message_id, author_id, author_name, content, sent_at
		FROM channel_messages
		WHERE chat_id = $1 AND ($2 = 0 OR message_id < $2)
		ORDER BY message_id DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, chatID, beforeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to page messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ChatID, &m.MessageID, &m.AuthorID, &m.AuthorName, &m.Content, &m.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
