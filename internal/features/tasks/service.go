// Package tasks — service.go holds the task ledger rules.
package tasks

import (
	"context"
	"strings"

	"ledgerbot/internal/common"
)

// ledger is the storage surface the service needs. Satisfied by
// *Repository; tests substitute a fake.
type ledger interface {
	Create(ctx context.Context, title string) (int64, error)
	ListIncomplete(ctx context.Context) ([]*Task, error)
	Toggle(ctx context.Context, taskID int64) (bool, error)
	LinkMessage(ctx context.Context, chatID, messageID, taskID int64) error
	TaskForMessage(ctx context.Context, chatID, messageID int64) (int64, error)
}

// Service manages the task ledger.
type Service struct {
	repo ledger
}

// NewService creates the tasks service.
func NewService(repo ledger) *Service {
	return &Service{repo: repo}
}

// Create files a new task from the given title. Titles that are empty
// after trimming are refused; the stored title keeps the original text.
func (s *Service) Create(ctx context.Context, title string) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, common.ErrEmptyTitle
	}
	return s.repo.Create(ctx, title)
}

// Incomplete returns all incomplete tasks, oldest id first.
func (s *Service) Incomplete(ctx context.Context) ([]*Task, error) {
	return s.repo.ListIncomplete(ctx)
}

// Toggle flips a task's completion state and returns the new value.
func (s *Service) Toggle(ctx context.Context, taskID int64) (bool, error) {
	return s.repo.Toggle(ctx, taskID)
}

// LinkMessage records the listing-message → task mapping.
func (s *Service) LinkMessage(ctx context.Context, chatID, messageID, taskID int64) error {
	return s.repo.LinkMessage(ctx, chatID, messageID, taskID)
}

// TaskForMessage resolves a listing message to its task id.
func (s *Service) TaskForMessage(ctx context.Context, chatID, messageID int64) (int64, error) {
	return s.repo.TaskForMessage(ctx, chatID, messageID)
}
