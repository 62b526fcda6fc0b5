// Package tasks — repository.go runs all queries against tasks and
// task_messages.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerbot/internal/common"
)

// Repository works with the tasks and task_messages tables.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the tasks repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new incomplete task and returns its generated id.
func (r *Repository) Create(ctx context.Context, title string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO tasks (title, completed) VALUES ($1, FALSE) RETURNING id
	`, title).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create task: %w", err)
	}
	return id, nil
}

// ListIncomplete returns all incomplete tasks ordered by ascending id.
// An empty ledger yields an empty slice, not an error.
func (r *Repository) ListIncomplete(ctx context.Context) ([]*Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, completed, created_at
		FROM tasks
		WHERE completed = FALSE
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// Toggle flips the task's completed flag and returns the new value.
// One UPDATE expression does the read-modify-write, so two concurrent
// toggles serialize on the row instead of tearing each other's state.
func (r *Repository) Toggle(ctx context.Context, taskID int64) (bool, error) {
	var completed bool
	err := r.db.QueryRow(ctx, `
		UPDATE tasks SET completed = NOT completed WHERE id = $1 RETURNING completed
	`, taskID).Scan(&completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, common.ErrTaskNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle task: %w", err)
	}
	return completed, nil
}

// LinkMessage records which task a bot-sent listing message shows.
// Re-rendering replaces the message, so conflicts overwrite.
func (r *Repository) LinkMessage(ctx context.Context, chatID, messageID, taskID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO task_messages (chat_id, message_id, task_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id, message_id) DO UPDATE SET task_id = EXCLUDED.task_id
	`, chatID, messageID, taskID)
	if err != nil {
		return fmt.Errorf("failed to link task message: %w", err)
	}
	return nil
}

// TaskForMessage resolves a listing message back to its task id.
// common.ErrTaskNotFound means the message is not a known listing.
func (r *Repository) TaskForMessage(ctx context.Context, chatID, messageID int64) (int64, error) {
	var taskID int64
	err := r.db.QueryRow(ctx, `
		SELECT task_id FROM task_messages WHERE chat_id = $1 AND message_id = $2
	`, chatID, messageID).Scan(&taskID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, common.ErrTaskNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve task message: %w", err)
	}
	return taskID, nil
}
