// Package bot contains the update loop: it receives gateway updates,
// bounds handler concurrency, and feeds the reaction router and the
// command path.
package bot

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/bot/middleware"
	"ledgerbot/internal/config"
	"ledgerbot/internal/features/archive"
	"ledgerbot/internal/features/points"
	"ledgerbot/internal/features/tasks"
	"ledgerbot/internal/gateway"
)

// Bot ties the update stream to the router and handlers.
type Bot struct {
	cfg      *config.Config
	listener gateway.Listener

	router      *Router
	rateLimiter *middleware.RateLimiter
	parser      *CommandParser

	archiveHandler *archive.Handler
	pointsHandler  *points.Handler
	tasksHandler   *tasks.Handler

	// bounds concurrent update handling
	inflight chan struct{}
}

// New creates the bot and registers the emoji routes enabled by the
// feature flags.
func New(
	cfg *config.Config,
	listener gateway.Listener,
	router *Router,
	archiveHandler *archive.Handler,
	pointsHandler *points.Handler,
	tasksHandler *tasks.Handler,
) *Bot {
	maxInflight := cfg.BotMaxInflight
	if maxInflight <= 0 {
		maxInflight = 64
	}

	b := &Bot{
		cfg:            cfg,
		listener:       listener,
		router:         router,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		parser:         NewCommandParser(),
		archiveHandler: archiveHandler,
		pointsHandler:  pointsHandler,
		tasksHandler:   tasksHandler,
		inflight:       make(chan struct{}, maxInflight),
	}

	if cfg.FeaturePointsEnabled {
		router.Handle(cfg.EmojiGrantPoint, pointsHandler.HandleGrant)
		router.Handle(cfg.EmojiCheckPoints, pointsHandler.HandleCheck)
	}
	if cfg.FeatureTasksEnabled {
		router.Handle(cfg.EmojiCreateTask, tasksHandler.HandleCreate)
		router.Handle(cfg.EmojiListTasks, func(ctx context.Context, ev gateway.ReactionEvent) {
			tasksHandler.HandleList(ctx, ev.ChannelID)
		})
		router.Handle(cfg.EmojiToggleTask, tasksHandler.HandleToggle)
	}

	return b
}

// Start consumes gateway updates until ctx is cancelled. Events are
// handled on their own goroutines — ordering is only guaranteed where the
// store's constraints provide it — with the inflight semaphore keeping the
// goroutine count bounded under flood.
func (b *Bot) Start(ctx context.Context) error {
	updates, err := b.listener.Listen(ctx)
	if err != nil {
		return err
	}
	defer b.rateLimiter.Close()

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Bot is up, waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Bot stopping (ctx done)...")
			return nil

		case update, ok := <-updates:
			if !ok {
				log.Info("Updates channel closed, bot stopped")
				return nil
			}

			b.inflight <- struct{}{}
			go func(upd gateway.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate processes one gateway update.
func (b *Bot) handleUpdate(ctx context.Context, update gateway.Update) {
	defer middleware.RecoverFromPanic()

	switch {
	case update.Reaction != nil:
		ev := *update.Reaction
		middleware.LogReaction(ev)

		if ev.UserID != 0 && !b.rateLimiter.Allow(ev.UserID) {
			log.WithField("user_id", ev.UserID).Debug("rate limited")
			return
		}
		b.router.Dispatch(ctx, ev)

	case update.Message != nil:
		ev := *update.Message
		middleware.LogMessage(ev)

		if ev.ChannelID != b.cfg.GuildChatID {
			return
		}

		// every text message in the chat lands in the archive first,
		// commands included — the export reflects what people saw
		b.archiveHandler.HandleMessage(ctx, ev)

		cmd, _, isCommand := b.parser.ParseCommand(ev.Text)
		if !isCommand {
			return
		}
		if !b.rateLimiter.Allow(ev.AuthorID) {
			log.WithField("user_id", ev.AuthorID).Debug("rate limited")
			return
		}
		b.routeCommand(ctx, ev, cmd)
	}
}

// routeCommand maps text commands to the same operations the reactions
// trigger, for people who prefer typing.
func (b *Bot) routeCommand(ctx context.Context, ev gateway.MessageEvent, cmd string) {
	log.WithFields(log.Fields{"cmd": cmd, "user_id": ev.AuthorID}).Debug("routing command")

	switch cmd {
	case "points":
		if b.cfg.FeaturePointsEnabled {
			b.pointsHandler.HandleCheck(ctx, gateway.ReactionEvent{
				GuildID:   ev.ChannelID,
				ChannelID: ev.ChannelID,
				MessageID: ev.MessageID,
				UserID:    ev.AuthorID,
			})
		}

	case "tasks":
		if b.cfg.FeatureTasksEnabled {
			b.tasksHandler.HandleList(ctx, ev.ChannelID)
		}

	case "export":
		if b.cfg.FeatureExportEnabled {
			b.archiveHandler.HandleExport(ctx, ev.ChannelID)
		}
	}
}

// CommandParser parses commands prefixed with !, . or /.
type CommandParser struct {
	validPrefixes []string
}

// NewCommandParser creates the command parser.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"!", ".", "/"},
	}
}

// ParseCommand splits text into a command and its arguments.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}

	if !hasPrefix {
		return "", nil, false
	}

	text = strings.TrimSpace(text)
	parts := strings.Fields(text)

	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	return command, args, true
}
