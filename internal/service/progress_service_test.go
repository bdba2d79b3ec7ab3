package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"
)

func TestSetCompletionUnknownContent(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.progress.SetCompletion(1, 999, true)
	assert.ErrorIs(t, err, util.ErrContentNotFound)
}

func TestSetCompletionIdempotent(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "T", nil)
	item := env.mustContent(t, topic.ID, "lesson")

	const userID = uint(4)
	first, err := env.progress.SetCompletion(userID, item.ID, true)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)

	second, err := env.progress.SetCompletion(userID, item.ID, true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Completed)
	// Repeating the same toggle does not move the completion timestamp.
	require.NotNil(t, second.CompletedAt)
	assert.Equal(t, first.CompletedAt.Unix(), second.CompletedAt.Unix())

	var count int64
	require.NoError(t, env.db.Model(&model.ProgressEntry{}).
		Where("user_id = ? AND content_id = ?", userID, item.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetCompletionToggleOff(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "T", nil)
	item := env.mustContent(t, topic.ID, "lesson")

	const userID = uint(4)
	_, err := env.progress.SetCompletion(userID, item.ID, true)
	require.NoError(t, err)

	entry, err := env.progress.SetCompletion(userID, item.ID, false)
	require.NoError(t, err)
	assert.False(t, entry.Completed)
	assert.Nil(t, entry.CompletedAt)

	statuses, err := env.progress.GetCompletionMap(userID, []uint{item.ID})
	require.NoError(t, err)
	assert.False(t, statuses[item.ID])
}

func TestCompletionMapDefaultsFalse(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "T", nil)

	done := env.mustContent(t, topic.ID, "done")
	untouched := env.mustContent(t, topic.ID, "untouched")

	const userID = uint(8)
	_, err := env.progress.SetCompletion(userID, done.ID, true)
	require.NoError(t, err)

	statuses, err := env.progress.GetCompletionMap(userID, []uint{done.ID, untouched.ID})
	require.NoError(t, err)
	assert.True(t, statuses[done.ID])
	assert.False(t, statuses[untouched.ID])

	empty, err := env.progress.GetCompletionMap(userID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestConcurrentTogglesKeepOneEntry(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "T", nil)
	item := env.mustContent(t, topic.ID, "lesson")

	const userID = uint(6)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(completed bool) {
			defer wg.Done()
			_, err := env.progress.SetCompletion(userID, item.ID, completed)
			assert.NoError(t, err)
		}(i%2 == 0)
	}
	wg.Wait()

	// Whatever the interleaving, the pair collapses to a single row, and
	// a later write settles the final state.
	var count int64
	require.NoError(t, env.db.Model(&model.ProgressEntry{}).
		Where("user_id = ? AND content_id = ?", userID, item.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	final, err := env.progress.SetCompletion(userID, item.ID, true)
	require.NoError(t, err)
	assert.True(t, final.Completed)

	statuses, err := env.progress.GetCompletionMap(userID, []uint{item.ID})
	require.NoError(t, err)
	assert.True(t, statuses[item.ID])
}

func TestCompletionIsScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "T", nil)
	item := env.mustContent(t, topic.ID, "lesson")

	_, err := env.progress.SetCompletion(1, item.ID, true)
	require.NoError(t, err)

	statuses, err := env.progress.GetCompletionMap(2, []uint{item.ID})
	require.NoError(t, err)
	assert.False(t, statuses[item.ID])
}
