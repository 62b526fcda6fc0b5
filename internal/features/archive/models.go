// Package archive keeps a copy of every text message the bot sees in the
// configured chat. The Telegram Bot API offers no way to fetch an
// arbitrary message or page through chat history, so the archive is what
// grant handlers read the reacted-to message from, and what the bulk
// export walks.
package archive

import "time"

// Message is one archived chat message.
type Message struct {
	ChatID     int64     `db:"chat_id"`
	MessageID  int64     `db:"message_id"`
	AuthorID   int64     `db:"author_id"`
	AuthorName string    `db:"author_name"`
	Content    string    `db:"content"`
	SentAt     time.Time `db:"sent_at"`
}
