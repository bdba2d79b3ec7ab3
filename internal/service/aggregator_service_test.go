package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack_backend/internal/util"
)

func TestRoundPercentage(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"zero total", 0, 0, 0},
		{"none done", 0, 5, 0},
		{"all done", 5, 5, 100},
		{"one third rounds down", 1, 3, 33},
		{"two thirds rounds up", 2, 3, 67},
		{"exact half rounds up", 1, 2, 50},
		{"one of eight", 1, 8, 13},
		{"one of two hundred", 1, 200, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, roundPercentage(tc.completed, tc.total))
		})
	}
}

func TestComputeTopicProgressEmptyTopic(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "Empty", nil)

	progress, err := env.aggregator.ComputeTopicProgress(1, topic.ID, true)
	require.NoError(t, err)

	assert.Equal(t, 0, progress.TotalCount)
	assert.Equal(t, 0, progress.CompletedCount)
	assert.Equal(t, 0, progress.Percentage)
}

func TestComputeTopicProgressUnknownTopic(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.aggregator.ComputeTopicProgress(1, 999, true)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
}

func TestComputeTopicProgressRecursive(t *testing.T) {
	env := newTestEnv(t)

	// A -> B -> C, two items at each level.
	a := env.mustTopic(t, "A", nil)
	b := env.mustTopic(t, "B", &a.ID)
	c := env.mustTopic(t, "C", &b.ID)

	const userID = uint(7)
	var all []uint
	for _, topic := range []uint{a.ID, b.ID, c.ID} {
		for _, title := range []string{"one", "two"} {
			item := env.mustContent(t, topic, title)
			all = append(all, item.ID)
		}
	}

	for _, id := range all {
		_, err := env.progress.SetCompletion(userID, id, true)
		require.NoError(t, err)
	}

	recursive, err := env.aggregator.ComputeTopicProgress(userID, a.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 6, recursive.TotalCount)
	assert.Equal(t, 6, recursive.CompletedCount)
	assert.Equal(t, 100, recursive.Percentage)

	// Non-recursive only sees A's own items.
	direct, err := env.aggregator.ComputeTopicProgress(userID, a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, direct.TotalCount)
	assert.Equal(t, 2, direct.CompletedCount)
}

func TestComputeTopicProgressRounding(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "Thirds", nil)

	const userID = uint(3)
	items := []uint{
		env.mustContent(t, topic.ID, "x").ID,
		env.mustContent(t, topic.ID, "y").ID,
		env.mustContent(t, topic.ID, "z").ID,
	}

	_, err := env.progress.SetCompletion(userID, items[0], true)
	require.NoError(t, err)

	progress, err := env.aggregator.ComputeTopicProgress(userID, topic.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 33, progress.Percentage)

	_, err = env.progress.SetCompletion(userID, items[1], true)
	require.NoError(t, err)

	progress, err = env.aggregator.ComputeTopicProgress(userID, topic.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 67, progress.Percentage)
}

func TestComputeOverallProgress(t *testing.T) {
	env := newTestEnv(t)

	first := env.mustTopic(t, "First", nil)
	second := env.mustTopic(t, "Second", nil)

	const userID = uint(11)
	done := env.mustContent(t, first.ID, "done")
	env.mustContent(t, first.ID, "pending")
	env.mustContent(t, second.ID, "untouched")

	before, err := env.aggregator.ComputeOverallProgress(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, before.TotalItems)
	assert.Equal(t, 0, before.TotalCompleted)
	assert.Equal(t, 0, before.Percentage)
	assert.Nil(t, before.LastActivity)

	_, err = env.progress.SetCompletion(userID, done.ID, true)
	require.NoError(t, err)

	after, err := env.aggregator.ComputeOverallProgress(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.TotalItems)
	assert.Equal(t, 1, after.TotalCompleted)
	assert.Equal(t, 33, after.Percentage)
	require.NotNil(t, after.LastActivity)
}

func TestOverallProgressIsPerUser(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "Shared", nil)
	item := env.mustContent(t, topic.ID, "lesson")

	_, err := env.progress.SetCompletion(1, item.ID, true)
	require.NoError(t, err)

	other, err := env.aggregator.ComputeOverallProgress(2)
	require.NoError(t, err)
	assert.Equal(t, 0, other.TotalCompleted)
	assert.Nil(t, other.LastActivity)
}
