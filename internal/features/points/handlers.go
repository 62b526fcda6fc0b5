// Package points — handlers.go translates routed reaction events into
// ledger operations and short-lived chat acknowledgements.
package points

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

// identityResolver resolves user ids to display names.
type identityResolver interface {
	Resolve(ctx context.Context, chatID, userID int64) gateway.Identity
}

// Handler reacts to the grant-point and check-points emojis.
type Handler struct {
	service    *Service
	gw         gateway.Client
	messages   messageSource
	resolver   identityResolver
	successTTL time.Duration
	errorTTL   time.Duration
}

// NewHandler creates the points handler.
func NewHandler(service *Service, gw gateway.Client, messages messageSource, resolver identityResolver, successTTL, errorTTL time.Duration) *Handler {
	return &Handler{
		service:    service,
		gw:         gw,
		messages:   messages,
		resolver:   resolver,
		successTTL: successTTL,
		errorTTL:   errorTTL,
	}
}

// HandleGrant awards a point to the author of the reacted-to message.
// The receiver must be resolvable; an unresolvable giver degrades to an
// id label. Duplicate grants are silently ignored — re-reacting is normal
// behavior, not a fault.
func (h *Handler) HandleGrant(ctx context.Context, ev gateway.ReactionEvent) {
	msg, err := h.messages.Get(ctx, ev.ChannelID, ev.MessageID)
	if err != nil {
		if errors.Is(err, common.ErrMessageNotArchived) {
			log.WithField("message_id", ev.MessageID).Debug("grant on unarchived message ignored")
			return
		}
		log.WithError(err).Error("failed to fetch reacted-to message")
		gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, "❌ Could not grant the point, try again later", h.errorTTL)
		return
	}

	receiver := h.resolver.Resolve(ctx, ev.ChannelID, msg.AuthorID)
	if !receiver.Known {
		// without a receiver there is nobody to credit the point to
		log.WithField("user_id", msg.AuthorID).Warn("receiver identity unresolvable, grant aborted")
		return
	}
	giver := h.resolver.Resolve(ctx, ev.ChannelID, ev.UserID)

	total, err := h.service.Grant(ctx, ev.UserID, msg.AuthorID, ev.MessageID)
	switch {
	case errors.Is(err, common.ErrDuplicateGrant):
		log.WithFields(log.Fields{
			"message_id": ev.MessageID,
			"giver_id":   ev.UserID,
		}).Debug("duplicate grant ignored")
		return
	case errors.Is(err, common.ErrSelfGrant):
		gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, "❌ You cannot grant a point to your own message", h.errorTTL)
		return
	case err != nil:
		log.WithError(err).Error("grant failed")
		gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, "❌ Could not grant the point, try again later", h.errorTTL)
		return
	}

	log.WithFields(log.Fields{
		"giver_id":    ev.UserID,
		"receiver_id": msg.AuthorID,
		"total":       total,
	}).Info("point granted")

	text := fmt.Sprintf("👍 %s received a point from %s! Total: %s",
		receiver.Label(), giver.Label(), common.FormatPoints(total))
	gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, text, h.successTTL)
}

// HandleCheck shows the reacting user their own total.
func (h *Handler) HandleCheck(ctx context.Context, ev gateway.ReactionEvent) {
	actor := h.resolver.Resolve(ctx, ev.ChannelID, ev.UserID)
	if !actor.Known {
		log.WithField("user_id", ev.UserID).Warn("actor identity unresolvable, check aborted")
		return
	}

	total, err := h.service.Points(ctx, ev.UserID)
	if err != nil {
		log.WithError(err).Error("failed to read points")
		gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, "❌ Could not read your points, try again later", h.errorTTL)
		return
	}

	text := fmt.Sprintf("💎 %s currently has %s", actor.Label(), common.FormatPoints(total))
	gateway.SendEphemeral(ctx, h.gw, ev.ChannelID, text, h.successTTL)
}
