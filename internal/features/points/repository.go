// Package points — repository.go runs all queries against user_points and
// point_grants. The grant path is a single database transaction: the
// uniqueness constraint on point_grants, not any in-process check, is what
// keeps concurrent duplicate grants mutually exclusive.
package points

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerbot/internal/common"
)

// Repository works with the user_points and point_grants tables.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the points repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Grant records one grant and bumps the receiver's balance atomically.
// Returns the receiver's new total.
//
// The insert uses ON CONFLICT DO NOTHING against the unique index on
// (message_id, giver_user_id): when two identical grants race, the loser
// blocks on the winner's uncommitted row and then affects zero rows, which
// surfaces as common.ErrDuplicateGrant. The balance upsert only runs for
// the winner, so the total moves by exactly one.
func (r *Repository) Grant(ctx context.Context, giverID, receiverID, messageID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO point_grants (message_id, giver_user_id, receiver_user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (message_id, giver_user_id) DO NOTHING
	`, messageID, giverID, receiverID)
	if err != nil {
		return 0, fmt.Errorf("failed to record grant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, common.ErrDuplicateGrant
	}

	var total int64
	err = tx.QueryRow(ctx, `
		INSERT INTO user_points (user_id, points, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET points = user_points.points + 1, updated_at = NOW()
		RETURNING points
	`, receiverID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit grant: %w", err)
	}
	return total, nil
}

// Points returns the user's current total. A missing row means zero, not
// an error: most users simply have never been granted anything.
func (r *Repository) Points(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT points FROM user_points WHERE user_id = $1`, userID,
	).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return total, nil
}

// TopBalances returns the highest balances, ties broken by user id so the
// ordering is stable.
func (r *Repository) TopBalances(ctx context.Context, limit int) ([]*Balance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, points, updated_at
		FROM user_points
		ORDER BY points DESC, user_id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	defer rows.Close()

	var balances []*Balance
	for rows.Next() {
		var b Balance
		if err := rows.Scan(&b.UserID, &b.Points, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, &b)
	}
	return balances, rows.Err()
}
