// Package points — service.go holds the ledger rules.
package points

import (
	"context"

	"ledgerbot/internal/common"
)

// ledger is the storage surface the service needs. Satisfied by
// *Repository; tests substitute a fake.
type ledger interface {
	Grant(ctx context.Context, giverID, receiverID, messageID int64) (int64, error)
	Points(ctx context.Context, userID int64) (int64, error)
	TopBalances(ctx context.Context, limit int) ([]*Balance, error)
}

// Service manages the point ledger.
type Service struct {
	repo ledger
}

// NewService creates the points service.
func NewService(repo ledger) *Service {
	return &Service{repo: repo}
}

// Grant awards one point to receiverID for the given message. Self-grants
// are refused before the store is touched; duplicate grants surface as
// common.ErrDuplicateGrant from the store's uniqueness constraint.
func (s *Service) Grant(ctx context.Context, giverID, receiverID, messageID int64) (int64, error) {
	if giverID == receiverID {
		return 0, common.ErrSelfGrant
	}
	return s.repo.Grant(ctx, giverID, receiverID, messageID)
}

// Points returns the user's current total (zero for unseen users).
func (s *Service) Points(ctx context.Context, userID int64) (int64, error) {
	return s.repo.Points(ctx, userID)
}

// TopBalances returns the leaderboard for the daily summary.
func (s *Service) TopBalances(ctx context.Context, limit int) ([]*Balance, error) {
	return s.repo.TopBalances(ctx, limit)
}
