// Package points implements the reaction-driven point ledger.
// models.go describes the persisted rows.
package points

import "time"

// Balance is a user's point total. Created implicitly on first grant,
// never deleted.
type Balance struct {
	UserID    int64     `db:"user_id"`
	Points    int64     `db:"points"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Grant is an append-only record of one point grant. The pair
// (MessageID, GiverUserID) is unique: a user grants at most one point per
// source message, and that uniqueness is what makes grants idempotent.
type Grant struct {
	MessageID      int64     `db:"message_id"`
	GiverUserID    int64     `db:"giver_user_id"`
	ReceiverUserID int64     `db:"receiver_user_id"`
	CreatedAt      time.Time `db:"created_at"`
}
