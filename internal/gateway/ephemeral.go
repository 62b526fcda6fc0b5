// Package gateway — ephemeral.go implements self-expiring acknowledgement
// messages. Telegram has no server-side delete_after, so expiry is
// scheduled in-process: send, then delete after the TTL.
package gateway

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// SendEphemeral posts text and schedules its deletion after ttl. The
// deletion runs on its own background context: an acknowledgement must
// still clean itself up after the triggering handler has returned.
// A ttl <= 0 leaves the message in place.
func SendEphemeral(ctx context.Context, client Client, channelID int64, text string, ttl time.Duration) {
	messageID, err := client.SendMessage(ctx, channelID, text)
	if err != nil {
		log.WithError(err).WithField("chat_id", channelID).Error("failed to send acknowledgement")
		return
	}
	if ttl <= 0 {
		return
	}

	time.AfterFunc(ttl, func() {
		deleteCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.DeleteMessage(deleteCtx, channelID, messageID); err != nil {
			// Message may already be gone (chat admins delete things too).
			log.WithError(err).WithFields(log.Fields{
				"chat_id":    channelID,
				"message_id": messageID,
			}).Debug("failed to delete expired acknowledgement")
		}
	})
}
