// Package gateway defines the narrow chat-gateway surface the rest of the
// bot depends on, and its Telegram implementation. Handlers never import
// the Telegram SDK directly — everything goes through Client, which keeps
// the feature code testable against fakes.
//
// Terminology note: Telegram has no separate guild/channel split; in this
// deployment the configured group chat plays both roles, so GuildID and
// ChannelID carry the same chat id.
package gateway

import (
	"context"
	"io"
	"time"
)

// ReactionEvent is an incoming reaction-added event.
type ReactionEvent struct {
	GuildID   int64
	ChannelID int64
	MessageID int64
	UserID    int64
	Emoji     string
}

// MessageEvent is an incoming chat message.
type MessageEvent struct {
	ChannelID  int64
	MessageID  int64
	AuthorID   int64
	AuthorName string
	Text       string
	SentAt     time.Time
}

// Update carries one gateway event; exactly one field is non-nil.
type Update struct {
	Reaction *ReactionEvent
	Message  *MessageEvent
}

// Member is the resolvable part of a chat member.
type Member struct {
	DisplayName string
	Username    string
}

// Client is the outbound gateway surface.
type Client interface {
	// SendMessage posts text to a chat and returns the new message id.
	SendMessage(ctx context.Context, channelID int64, text string) (int64, error)
	// DeleteMessage removes a previously sent message.
	DeleteMessage(ctx context.Context, channelID, messageID int64) error
	// AddReaction sets the bot's reaction on a message.
	AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error
	// FetchMember looks up a chat member. Returns common.ErrMemberNotFound
	// when the user is not resolvable in that chat.
	FetchMember(ctx context.Context, chatID, userID int64) (Member, error)
	// SendDocument uploads a file to a chat.
	SendDocument(ctx context.Context, channelID int64, filename string, data io.Reader, caption string) error
}

// Listener is the inbound gateway surface: a stream of updates that closes
// when ctx is cancelled or the connection is gone.
type Listener interface {
	Listen(ctx context.Context) (<-chan Update, error)
}
