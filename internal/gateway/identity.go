// Package gateway — identity.go resolves user ids into display names.
package gateway

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Identity is the result of a member lookup. Known is false when the
// lookup failed; rendering code must handle both cases instead of
// duck-typing a placeholder member.
type Identity struct {
	UserID      int64
	Known       bool
	DisplayName string
}

// Label returns the human-facing name, falling back to the raw id for
// unresolvable users.
func (id Identity) Label() string {
	if id.Known {
		return id.DisplayName
	}
	return fmt.Sprintf("user %d", id.UserID)
}

// Resolver turns user ids into Identities through the gateway.
type Resolver struct {
	client Client
}

// NewResolver creates an identity resolver.
func NewResolver(client Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve looks the user up in the chat. Lookup failures degrade to an
// Unknown identity; the caller decides whether that is fatal.
func (r *Resolver) Resolve(ctx context.Context, chatID, userID int64) Identity {
	member, err := r.client.FetchMember(ctx, chatID, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("member lookup failed")
		return Identity{UserID: userID}
	}
	return Identity{UserID: userID, Known: true, DisplayName: member.DisplayName}
}
