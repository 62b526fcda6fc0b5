package archive_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerbot/internal/common"
	"ledgerbot/internal/features/archive"
	"ledgerbot/internal/testutil"
)

func TestRecordAndGet(t *testing.T) {
	pool := testutil.DB(t)
	repo := archive.NewRepository(pool)
	ctx := context.Background()

	sent := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, archive.Message{
		ChatID: -100123, MessageID: 1, AuthorID: 200, AuthorName: "Bob",
		Content: "hello", SentAt: sent,
	}))

	got, err := repo.Get(ctx, -100123, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, "Bob", got.AuthorName)
	assert.True(t, got.SentAt.Equal(sent))
}

func TestRecordOverwritesEdits(t *testing.T) {
	pool := testutil.DB(t)
	repo := archive.NewRepository(pool)
	ctx := context.Background()

	m := archive.Message{ChatID: -100123, MessageID: 1, AuthorID: 200, AuthorName: "Bob", Content: "hello", SentAt: time.Now()}
	require.NoError(t, repo.Record(ctx, m))
	m.Content = "hello, edited"
	require.NoError(t, repo.Record(ctx, m))

	got, err := repo.Get(ctx, -100123, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello, edited", got.Content)
}

func TestGetUnseenMessage(t *testing.T) {
	pool := testutil.DB(t)
	repo := archive.NewRepository(pool)

	_, err := repo.Get(context.Background(), -100123, 999)
	assert.ErrorIs(t, err, common.ErrMessageNotArchived)
}

func TestPageBeforeKeysetOrder(t *testing.T) {
	pool := testutil.DB(t)
	repo := archive.NewRepository(pool)
	ctx := context.Background()

	for id := int64(1); id <= 7; id++ {
		require.NoError(t, repo.Record(ctx, archive.Message{
			ChatID: -100123, MessageID: id, AuthorID: 200, AuthorName: "Bob",
			Content: "m", SentAt: time.Now(),
		}))
	}

	first, err := repo.PageBefore(ctx, -100123, 0, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, int64(7), first[0].MessageID)
	assert.Equal(t, int64(5), first[2].MessageID)

	second, err := repo.PageBefore(ctx, -100123, first[2].MessageID, 3)
	require.NoError(t, err)
	require.Len(t, second, 3)
	assert.Equal(t, int64(4), second[0].MessageID)

	last, err := repo.PageBefore(ctx, -100123, second[2].MessageID, 3)
	require.NoError(t, err)
	assert.Len(t, last, 1)
}

func TestPageBeforeScopedToChat(t *testing.T) {
	pool := testutil.DB(t)
	repo := archive.NewRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, archive.Message{ChatID: -100123, MessageID: 1, Content: "ours", SentAt: time.Now()}))
	require.NoError(t, repo.Record(ctx, archive.Message{ChatID: -100999, MessageID: 2, Content: "theirs", SentAt: time.Now()}))

	page, err := repo.PageBefore(ctx, -100123, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ours", page[0].Content)
}
