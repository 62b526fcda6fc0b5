// Package archive — export.go materializes chat history as a single text
// artifact. The walk is a bounded batch: fixed-size pages, a hard page
// cap, and a pause between pages so one export cannot monopolize the
// store while handlers are running.
package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/common"
)

// pager is the slice of the repository the exporter needs.
type pager interface {
	PageBefore(ctx context.Context, chatID, beforeID int64, limit int) ([]*Message, error)
}

// Exporter walks the archive newest-first and renders the export artifact.
type Exporter struct {
	pages     pager
	pageSize  int
	maxPages  int
	pagePause time.Duration
	loc       *time.Location
}

// NewExporter creates an exporter. pagePause may be zero (tests).
func NewExporter(pages pager, pageSize, maxPages int, pagePause time.Duration, loc *time.Location) *Exporter {
	return &Exporter{
		pages:     pages,
		pageSize:  pageSize,
		maxPages:  maxPages,
		pagePause: pagePause,
		loc:       loc,
	}
}

// Collect gathers messages newest-first, page by page, stopping at the
// page cap or the end of the archive, whichever comes first.
func (e *Exporter) Collect(ctx context.Context, chatID int64) ([]*Message, error) {
	var (
		collected []*Message
		beforeID  int64
	)

	for page := 0; page < e.maxPages; page++ {
		batch, err := e.pages.PageBefore(ctx, chatID, beforeID, e.pageSize)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page+1, err)
		}
		if len(batch) == 0 {
			break
		}

		collected = append(collected, batch...)
		beforeID = batch[len(batch)-1].MessageID
		log.WithFields(log.Fields{
			"page":  page + 1,
			"total": len(collected),
		}).Debug("export page collected")

		if len(batch) < e.pageSize {
			break
		}
		if e.pagePause > 0 && page+1 < e.maxPages {
			select {
			case <-time.After(e.pagePause):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return collected, nil
}

// Render produces the artifact text: a header followed by one block per
// message, newest first.
func (e *Exporter) Render(chatID int64, now time.Time, messages []*Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chat: %d\n", chatID)
	fmt.Fprintf(&b, "Exported at: %s\n", common.FormatDateTime(now, e.loc))
	fmt.Fprintf(&b, "Messages: %d\n", len(messages))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, m := range messages {
		fmt.Fprintf(&b, "[%s] %s\n", common.FormatDateTime(m.SentAt, e.loc), m.AuthorName)
		b.WriteString(m.Content + "\n")
		b.WriteString(strings.Repeat("-", 30) + "\n")
	}
	return b.String()
}

// Filename returns the artifact name for an export started at now.
func (e *Exporter) Filename(now time.Time) string {
	return fmt.Sprintf("channel_messages_%s.txt", now.In(e.loc).Format("20060102_150405"))
}
