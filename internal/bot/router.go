// Package bot — router.go dispatches reaction events to feature handlers
// by exact emoji match.
package bot

import (
	"context"

	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/gateway"
)

// ReactionHandler processes one routed reaction event. Handlers contain
// their own failures; nothing they do reaches the update loop.
type ReactionHandler func(ctx context.Context, ev gateway.ReactionEvent)

// Router maps reaction emojis to handlers, after filtering out the bot's
// own reactions and events outside the configured chat.
type Router struct {
	botID   int64
	guildID int64
	routes  map[string]ReactionHandler
}

// NewRouter creates a router scoped to one bot identity and one chat.
func NewRouter(botID, guildID int64) *Router {
	return &Router{
		botID:   botID,
		guildID: guildID,
		routes:  make(map[string]ReactionHandler),
	}
}

// Handle binds an emoji to a handler. Later bindings win, which lets a
// feature flag unbind by simply not registering.
func (r *Router) Handle(emoji string, h ReactionHandler) {
	r.routes[emoji] = h
}

// Dispatch routes one reaction event. Returns false when the event was
// filtered or no handler matched; an unmatched emoji is a no-op, not an
// error.
func (r *Router) Dispatch(ctx context.Context, ev gateway.ReactionEvent) bool {
	if ev.UserID == r.botID {
		// the bot reacting to its own listings must not feed back
		return false
	}
	if ev.GuildID != r.guildID {
		return false
	}

	handler, ok := r.routes[ev.Emoji]
	if !ok {
		return false
	}

	log.WithFields(log.Fields{
		"emoji":      ev.Emoji,
		"user_id":    ev.UserID,
		"message_id": ev.MessageID,
	}).Debug("reaction routed")
	handler(ctx, ev)
	return true
}
