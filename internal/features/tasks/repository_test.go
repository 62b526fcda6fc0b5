package tasks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerbot/internal/common"
	"ledgerbot/internal/features/tasks"
	"ledgerbot/internal/testutil"
)

func TestTaskLifecycleScenario(t *testing.T) {
	pool := testutil.DB(t)
	repo := tasks.NewRepository(pool)
	ctx := context.Background()

	id, err := repo.Create(ctx, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	list, err := repo.ListIncomplete(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "buy milk", list[0].Title)
	assert.False(t, list[0].Completed)

	completed, err := repo.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.True(t, completed)

	list, err = repo.ListIncomplete(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestToggleIsAnInvolution(t *testing.T) {
	pool := testutil.DB(t)
	repo := tasks.NewRepository(pool)
	ctx := context.Background()

	id, err := repo.Create(ctx, "water the plants")
	require.NoError(t, err)

	first, err := repo.Toggle(ctx, id)
	require.NoError(t, err)
	second, err := repo.Toggle(ctx, id)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second, "toggling twice must restore the original state")
}

func TestToggleUnknownTask(t *testing.T) {
	pool := testutil.DB(t)
	repo := tasks.NewRepository(pool)

	_, err := repo.Toggle(context.Background(), 9999)
	assert.ErrorIs(t, err, common.ErrTaskNotFound)
}

func TestListIncompleteOrdersByID(t *testing.T) {
	pool := testutil.DB(t)
	repo := tasks.NewRepository(pool)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, title)
		require.NoError(t, err)
	}

	list, err := repo.ListIncomplete(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "third", list[2].Title)
}

func TestMessageLinkRoundtrip(t *testing.T) {
	pool := testutil.DB(t)
	repo := tasks.NewRepository(pool)
	ctx := context.Background()

	id, err := repo.Create(ctx, "link me")
	require.NoError(t, err)

	require.NoError(t, repo.LinkMessage(ctx, -100123, 555, id))

	got, err := repo.TaskForMessage(ctx, -100123, 555)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = repo.TaskForMessage(ctx, -100123, 556)
	assert.ErrorIs(t, err, common.ErrTaskNotFound)
}

func TestMessageLinkOverwrites(t *testing.T) {
	pool := testutil.DB(t)
	repo := tasks.NewRepository(pool)
	ctx := context.Background()

	first, err := repo.Create(ctx, "old listing")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "new listing")
	require.NoError(t, err)

	require.NoError(t, repo.LinkMessage(ctx, -100123, 555, first))
	require.NoError(t, repo.LinkMessage(ctx, -100123, 555, second))

	got, err := repo.TaskForMessage(ctx, -100123, 555)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}
