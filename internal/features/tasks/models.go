// Package tasks implements the reaction-driven task ledger.
// models.go describes the persisted rows.
package tasks

import "time"

// Task is one to-do row. The id is assigned by the store and never
// changes; tasks are toggled, never deleted.
type Task struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Completed bool      `db:"completed"`
	CreatedAt time.Time `db:"created_at"`
}

// MessageRef links a bot-sent listing message back to the task it shows.
// The completion reaction resolves through this mapping instead of
// re-parsing the rendered heading, so a formatting change cannot break
// toggling. Rows survive restarts: listings from previous runs stay
// completable until their messages are deleted.
type MessageRef struct {
	ChatID    int64 `db:"chat_id"`
	MessageID int64 `db:"message_id"`
	TaskID    int64 `db:"task_id"`
}
