// Package archive — handlers.go wires message recording and the !export
// command.
package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/common"
	"ledgerbot/internal/gateway"
)

// Handler records incoming messages and serves history exports.
type Handler struct {
	repo     *Repository
	exporter *Exporter
	gw       gateway.Client
	errorTTL time.Duration
}

// NewHandler creates the archive handler.
func NewHandler(repo *Repository, exporter *Exporter, gw gateway.Client, errorTTL time.Duration) *Handler {
	return &Handler{repo: repo, exporter: exporter, gw: gw, errorTTL: errorTTL}
}

// HandleMessage archives one incoming chat message. Failures are logged
// but never shown: archiving is bookkeeping, not a user-facing operation.
func (h *Handler) HandleMessage(ctx context.Context, ev gateway.MessageEvent) {
	err := h.repo.Record(ctx, Message{
		ChatID:     ev.ChannelID,
		MessageID:  ev.MessageID,
		AuthorID:   ev.AuthorID,
		AuthorName: ev.AuthorName,
		Content:    ev.Text,
		SentAt:     ev.SentAt,
	})
	if err != nil {
		log.WithError(err).WithField("message_id", ev.MessageID).Warn("failed to archive message")
	}
}

// HandleExport walks the archive and uploads the artifact. The walk can
// take a while (page pauses), so a progress message goes out first.
func (h *Handler) HandleExport(ctx context.Context, channelID int64) {
	if _, err := h.gw.SendMessage(ctx, channelID, "📄 Starting history export..."); err != nil {
		log.WithError(err).Error("failed to announce export")
	}

	messages, err := h.exporter.Collect(ctx, channelID)
	if err != nil {
		log.WithError(err).Error("export failed")
		gateway.SendEphemeral(ctx, h.gw, channelID, "❌ Export failed, try again later", h.errorTTL)
		return
	}

	now := time.Now()
	artifact := h.exporter.Render(channelID, now, messages)
	caption := fmt.Sprintf("History export complete: %d %s",
		len(messages), common.Pluralize(int64(len(messages)), "message", "messages"))

	if err := h.gw.SendDocument(ctx, channelID, h.exporter.Filename(now), strings.NewReader(artifact), caption); err != nil {
		log.WithError(err).Error("failed to upload export")
		gateway.SendEphemeral(ctx, h.gw, channelID, "❌ Could not upload the export file", h.errorTTL)
		return
	}

	log.WithFields(log.Fields{
		"chat_id":  channelID,
		"messages": len(messages),
	}).Info("history export delivered")
}
