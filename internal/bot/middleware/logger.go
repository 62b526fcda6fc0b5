package middleware

import (
	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/gateway"
)

// LogMessage logs an incoming chat message: author, chat, and the first
// 50 characters of text.
func LogMessage(ev gateway.MessageEvent) {
	text := ev.Text
	if len(text) > 50 {
		text = text[:50] + "..."
	}

	log.WithFields(log.Fields{
		"user_id":    ev.AuthorID,
		"chat_id":    ev.ChannelID,
		"message_id": ev.MessageID,
		"text":       text,
	}).Debug("incoming message")
}

// LogReaction logs an incoming reaction event.
func LogReaction(ev gateway.ReactionEvent) {
	log.WithFields(log.Fields{
		"user_id":    ev.UserID,
		"chat_id":    ev.ChannelID,
		"message_id": ev.MessageID,
		"emoji":      ev.Emoji,
	}).Debug("incoming reaction")
}
