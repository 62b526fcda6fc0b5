// Package gateway — telegram.go adapts the telego SDK to the Client and
// Listener interfaces.
package gateway

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/common"
)

// Telegram is the production gateway over the Telegram Bot API.
type Telegram struct {
	bot         *telego.Bot
	self        telego.User
	pollTimeout int
}

// NewTelegram authorizes the bot and fetches its own identity. The bot id
// is needed up front so the router can drop the bot's own reactions.
func NewTelegram(ctx context.Context, token string, debug bool, pollTimeoutSeconds int) (*Telegram, error) {
	bot, err := telego.NewBot(token, telego.WithDefaultLogger(debug, true))
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram API client: %w", err)
	}

	me, err := bot.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("getMe failed: %w", err)
	}
	log.Infof("Authorized as @%s", me.Username)

	return &Telegram{bot: bot, self: *me, pollTimeout: pollTimeoutSeconds}, nil
}

// BotID returns the bot's own user id.
func (t *Telegram) BotID() int64 { return t.self.ID }

// SendMessage posts plain text and returns the new message id.
func (t *Telegram) SendMessage(ctx context.Context, channelID int64, text string) (int64, error) {
	msg, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(channelID), text))
	if err != nil {
		return 0, fmt.Errorf("sendMessage: %w", err)
	}
	return int64(msg.MessageID), nil
}

// DeleteMessage removes a message the bot can delete.
func (t *Telegram) DeleteMessage(ctx context.Context, channelID, messageID int64) error {
	return t.bot.DeleteMessage(ctx, &telego.DeleteMessageParams{
		ChatID:    tu.ID(channelID),
		MessageID: int(messageID),
	})
}

// AddReaction sets the bot's reaction on a message. Telegram replaces the
// bot's whole reaction set, which is fine: the bot only ever uses one.
func (t *Telegram) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	return t.bot.SetMessageReaction(ctx, &telego.SetMessageReactionParams{
		ChatID:    tu.ID(channelID),
		MessageID: int(messageID),
		Reaction: []telego.ReactionType{
			&telego.ReactionTypeEmoji{Type: telego.ReactionEmoji, Emoji: emoji},
		},
	})
}

// FetchMember resolves a chat member. Any lookup failure is reported as
// common.ErrMemberNotFound; the caller only cares whether the member is
// resolvable.
func (t *Telegram) FetchMember(ctx context.Context, chatID, userID int64) (Member, error) {
	member, err := t.bot.GetChatMember(ctx, &telego.GetChatMemberParams{
		ChatID: tu.ID(chatID),
		UserID: userID,
	})
	if err != nil {
		return Member{}, fmt.Errorf("%w: %v", common.ErrMemberNotFound, err)
	}
	user := member.MemberUser()
	return Member{DisplayName: displayName(user), Username: user.Username}, nil
}

// SendDocument uploads a file to a chat.
func (t *Telegram) SendDocument(ctx context.Context, channelID int64, filename string, data io.Reader, caption string) error {
	params := tu.Document(tu.ID(channelID), tu.File(tu.NameReader(data, filename)))
	params.Caption = caption
	if _, err := t.bot.SendDocument(ctx, params); err != nil {
		return fmt.Errorf("sendDocument: %w", err)
	}
	return nil
}

// Listen starts long polling and converts Telegram updates into gateway
// updates. The returned channel closes when ctx is cancelled.
func (t *Telegram) Listen(ctx context.Context) (<-chan Update, error) {
	updates, err := t.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: t.pollTimeout,
		// message_reaction is not delivered unless explicitly requested
		AllowedUpdates: []string{"message", "message_reaction"},
	})
	if err != nil {
		return nil, fmt.Errorf("long polling: %w", err)
	}

	out := make(chan Update)
	go func() {
		defer close(out)
		for upd := range updates {
			for _, ev := range t.convert(upd) {
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// convert maps one Telegram update to zero or more gateway updates.
// A reaction update may add several emojis at once; each becomes its own
// ReactionEvent.
func (t *Telegram) convert(upd telego.Update) []Update {
	switch {
	case upd.Message != nil:
		m := upd.Message
		if m.From == nil || m.Text == "" {
			return nil
		}
		return []Update{{Message: &MessageEvent{
			ChannelID:  m.Chat.ID,
			MessageID:  int64(m.MessageID),
			AuthorID:   m.From.ID,
			AuthorName: displayName(*m.From),
			Text:       m.Text,
			SentAt:     time.Unix(m.Date, 0),
		}}}

	case upd.MessageReaction != nil:
		r := upd.MessageReaction
		if r.User == nil {
			// anonymous reactions carry no actor, nothing to attribute
			return nil
		}
		var out []Update
		for _, emoji := range addedEmojis(r.OldReaction, r.NewReaction) {
			out = append(out, Update{Reaction: &ReactionEvent{
				GuildID:   r.Chat.ID,
				ChannelID: r.Chat.ID,
				MessageID: int64(r.MessageID),
				UserID:    r.User.ID,
				Emoji:     emoji,
			}})
		}
		return out
	}
	return nil
}

// addedEmojis returns the emojis present in the new reaction set but not
// the old one. Telegram sends the full before/after sets, not a delta.
func addedEmojis(oldSet, newSet []telego.ReactionType) []string {
	seen := make(map[string]bool, len(oldSet))
	for _, r := range oldSet {
		if e := emojiOf(r); e != "" {
			seen[e] = true
		}
	}
	var added []string
	for _, r := range newSet {
		if e := emojiOf(r); e != "" && !seen[e] {
			added = append(added, e)
		}
	}
	return added
}

// emojiOf extracts the emoji from a reaction; custom and paid reactions
// are ignored.
func emojiOf(r telego.ReactionType) string {
	if v, ok := r.(*telego.ReactionTypeEmoji); ok {
		return v.Emoji
	}
	return ""
}

func displayName(u telego.User) string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = u.Username
	}
	return name
}
