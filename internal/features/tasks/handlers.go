// Package tasks — handlers.go translates routed reaction events into task
// ledger operations, listing messages, and acknowledgements.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/common"
	"ledgerbot/internal/features/archive"
	"ledgerbot/internal/gateway"
)

// messageSource looks up the reacted-to message. Satisfied by the archive
// repository.
type messageSource interface {
	Get(ctx context.Context, chatID, messageID int64) (*archive.Message, error)
}

// Handler reacts to the create-task, list-tasks and toggle-task emojis.
type Handler struct {
	service     *Service
	gw          gateway.Client
	messages    messageSource
	toggleEmoji string
	successTTL  time.Duration
	errorTTL    time.Duration
}

// NewHandler creates the tasks handler. toggleEmoji is the completion
// affordance the bot attaches to every listing message.
func NewHandler(service *Service, gw gateway.Client, messages messageSource, toggleEmoji string, successTTL, errorTTL time.Duration) *Handler {
	return &Handler{
		service:     service,
		gw:          gw,
		messages:    messages,
		toggleEmoji: toggleEmoji,
		successTTL:  successTTL,
		errorTTL:    errorTTL,
	}
}

// HandleCreate files the reacted-to message's text as a new task.
func (h *Handler) HandleCreate(ctx context.Context, ev gateway.ReactionEvent) {
	msg, err := h.messages.Get(ctx, ev.ChannelID, ev.MessageID)
	if err != nil {
		if errors.Is(err, common.ErrMessageNotArchived) {
			log.WithField("message_id", ev.MessageID).Debug("create-task on unarchived message ignored")
			return
		}
		log.WithError(err).Error("failed to fetch reacted-to message")
		gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, "❌ Could not create the task, try again later", h.errorTTL)
		return
	}

	taskID, err := h.service.Create(ctx, msg.Content)
	if errors.Is(err, common.ErrEmptyTitle) {
		gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, "📝 The message has no text to file as a task", h.errorTTL)
		return
	}
	if err != nil {
		log.WithError(err).Error("task creation failed")
		gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, "❌ Could not create the task, try again later", h.errorTTL)
		return
	}

	log.WithFields(log.Fields{"task_id": taskID, "author_id": msg.AuthorID}).Info("task created")

	text := fmt.Sprintf("%s created — %s\n(from a message by %s)",
		Heading(taskID), common.Truncate(msg.Content, 200), msg.AuthorName)
	gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, text, h.successTTL)
}

// HandleList re-renders the incomplete task list: one message per task,
// each with the completion reaction attached and a fresh message→task
// link recorded. Listings from earlier runs stay toggleable through their
// own links.
func (h *Handler) HandleList(ctx context.Context, channelID int64) {
	incomplete, err := h.service.Incomplete(ctx)
	if err != nil {
		log.WithError(err).Error("failed to list tasks")
		gateway.SendEphemeral(ctx, h.gw, channelID, "❌ Could not load the task list, try again later", h.errorTTL)
		return
	}

	if len(incomplete) == 0 {
		gateway.SendEphemeral(ctx, h.gw, channelID, "🎉 No incomplete tasks!", h.successTTL)
		return
	}

	header := fmt.Sprintf("📋 Incomplete tasks (%d)", len(incomplete))
	if _, err := h.gw.SendMessage(ctx, channelID, header); err != nil {
		log.WithError(err).Error("failed to send task list header")
		return
	}

	for _, task := range incomplete {
		text := fmt.Sprintf("%s\n%s\nReact %s to complete", Heading(task.ID), task.Title, h.toggleEmoji)
		messageID, err := h.gw.SendMessage(ctx, channelID, text)
		if err != nil {
			log.WithError(err).WithField("task_id", task.ID).Error("failed to render task")
			continue
		}
		if err := h.gw.AddReaction(ctx, channelID, messageID, h.toggleEmoji); err != nil {
			log.WithError(err).WithField("task_id", task.ID).Warn("failed to attach completion reaction")
		}
		if err := h.service.LinkMessage(ctx, channelID, messageID, task.ID); err != nil {
			log.WithError(err).WithField("task_id", task.ID).Error("failed to link task message")
		}
	}
}

// HandleToggle flips the task shown by the reacted-to listing message and
// re-renders the list. Reactions on messages that are not known listings
// are ignored; people react to all sorts of things.
func (h *Handler) HandleToggle(ctx context.Context, ev gateway.ReactionEvent) {
	taskID, err := h.service.TaskForMessage(ctx, ev.ChannelID, ev.MessageID)
	if errors.Is(err, common.ErrTaskNotFound) {
		log.WithField("message_id", ev.MessageID).Debug("toggle on non-listing message ignored")
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to resolve listing message")
		return
	}

	completed, err := h.service.Toggle(ctx, taskID)
	if errors.Is(err, common.ErrTaskNotFound) {
		gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, fmt.Sprintf("❌ Task #%d no longer exists", taskID), h.errorTTL)
		return
	}
	if err != nil {
		log.WithError(err).Error("task toggle failed")
		gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, fmt.Sprintf("❌ Could not update Task #%d", taskID), h.errorTTL)
		return
	}

	state := "reopened"
	if completed {
		state = "marked as done"
	}
	log.WithFields(log.Fields{"task_id": taskID, "completed": completed}).Info("task toggled")
	gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, fmt.Sprintf("✅ Task #%d %s", taskID, state), h.errorTTL)

	h.HandleList(ctx, ev.ChannelID)
}
