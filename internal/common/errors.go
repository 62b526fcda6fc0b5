// Package common — errors.go defines the sentinel errors shared by all
// features. Handlers match on these with errors.Is to decide what (if
// anything) to show in chat.
package common

import "errors"

// Point ledger errors
var (
	// ErrSelfGrant — a user tried to grant a point to their own message
	ErrSelfGrant = errors.New("cannot grant a point to yourself")
	// ErrDuplicateGrant — this user already granted a point for this message.
	// Expected steady-state behavior, suppressed in chat.
	ErrDuplicateGrant = errors.New("point already granted for this message")
)

// Task ledger errors
var (
	// ErrTaskNotFound — no task row with the requested id
	ErrTaskNotFound = errors.New("task not found")
	// ErrEmptyTitle — task title is empty after trimming
	ErrEmptyTitle = errors.New("task title is empty")
)

// Gateway / archive errors
var (
	// ErrMemberNotFound — the chat member lookup came back empty
	ErrMemberNotFound = errors.New("chat member not found")
	// ErrMessageNotArchived — the reacted-to message was never seen by the
	// bot (sent before it joined, or not a text message)
	ErrMessageNotArchived = errors.New("message not in archive")
)
