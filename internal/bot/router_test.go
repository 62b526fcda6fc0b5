package bot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerbot/internal/bot"
	"ledgerbot/internal/gateway"
)

const (
	testBotID   = int64(42)
	testGuildID = int64(-100123)
)

func TestRouterDispatch(t *testing.T) {
	testCases := []struct {
		name     string
		event    gateway.ReactionEvent
		expected bool
	}{
		{
			"known emoji is routed",
			gateway.ReactionEvent{GuildID: testGuildID, ChannelID: testGuildID, UserID: 7, Emoji: "👍"},
			true,
		},
		{
			"bot's own reaction is dropped",
			gateway.ReactionEvent{GuildID: testGuildID, ChannelID: testGuildID, UserID: testBotID, Emoji: "👍"},
			false,
		},
		{
			"foreign chat is dropped",
			gateway.ReactionEvent{GuildID: -200456, ChannelID: -200456, UserID: 7, Emoji: "👍"},
			false,
		},
		{
			"unknown emoji is a no-op",
			gateway.ReactionEvent{GuildID: testGuildID, ChannelID: testGuildID, UserID: 7, Emoji: "🔥"},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := bot.NewRouter(testBotID, testGuildID)
			called := false
			router.Handle("👍", func(ctx context.Context, ev gateway.ReactionEvent) {
				called = true
			})

			routed := router.Dispatch(context.Background(), tc.event)

			assert.Equal(t, tc.expected, routed)
			assert.Equal(t, tc.expected, called)
		})
	}
}

func TestRouterLastBindingWins(t *testing.T) {
	router := bot.NewRouter(testBotID, testGuildID)
	var got string
	router.Handle("❤", func(ctx context.Context, ev gateway.ReactionEvent) { got = "first" })
	router.Handle("❤", func(ctx context.Context, ev gateway.ReactionEvent) { got = "second" })

	router.Dispatch(context.Background(), gateway.ReactionEvent{
		GuildID: testGuildID, ChannelID: testGuildID, UserID: 7, Emoji: "❤",
	})

	assert.Equal(t, "second", got)
}
