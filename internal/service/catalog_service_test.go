package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"
)

func TestCreateTopicUnknownParent(t *testing.T) {
	env := newTestEnv(t)

	missing := uint(999)
	_, err := env.catalog.CreateTopic("Orphan", "", 0, &missing)
	assert.ErrorIs(t, err, util.ErrInvalidParent)
}

func TestUpdateTopicSelfParent(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "Loop", nil)

	_, err := env.catalog.UpdateTopic(topic.ID, UpdateTopicInput{
		SetParent: true,
		ParentID:  &topic.ID,
	})
	assert.ErrorIs(t, err, util.ErrInvalidParent)
}

func TestUpdateTopicRejectsCycle(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustTopic(t, "A", nil)
	b := env.mustTopic(t, "B", &a.ID)
	c := env.mustTopic(t, "C", &b.ID)

	// Hanging A under its own grandchild would close a cycle.
	_, err := env.catalog.UpdateTopic(a.ID, UpdateTopicInput{
		SetParent: true,
		ParentID:  &c.ID,
	})
	assert.ErrorIs(t, err, util.ErrInvalidParent)

	// Reparenting C under A directly is a legal move.
	updated, err := env.catalog.UpdateTopic(c.ID, UpdateTopicInput{
		SetParent: true,
		ParentID:  &a.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, a.ID, *updated.ParentID)
}

func TestUpdateTopicPromoteToRoot(t *testing.T) {
	env := newTestEnv(t)

	parent := env.mustTopic(t, "Parent", nil)
	child := env.mustTopic(t, "Child", &parent.ID)

	updated, err := env.catalog.UpdateTopic(child.ID, UpdateTopicInput{
		SetParent: true,
		ParentID:  nil,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)

	roots, err := env.catalog.ListRootTopics()
	require.NoError(t, err)
	assert.Len(t, roots, 2)
}

func TestDeleteTopicCascades(t *testing.T) {
	env := newTestEnv(t)

	root := env.mustTopic(t, "Root", nil)
	child := env.mustTopic(t, "Child", &root.ID)
	keep := env.mustTopic(t, "Keep", nil)

	const userID = uint(5)
	inRoot := env.mustContent(t, root.ID, "a")
	inChild := env.mustContent(t, child.ID, "b")
	inKeep := env.mustContent(t, keep.ID, "c")

	for _, id := range []uint{inRoot.ID, inChild.ID, inKeep.ID} {
		_, err := env.progress.SetCompletion(userID, id, true)
		require.NoError(t, err)
	}

	require.NoError(t, env.catalog.DeleteTopic(root.ID))

	_, err := env.catalog.GetTopic(root.ID)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
	_, err = env.catalog.GetTopic(child.ID)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
	_, err = env.catalog.GetContent(inRoot.ID)
	assert.ErrorIs(t, err, util.ErrContentNotFound)
	_, err = env.catalog.GetContent(inChild.ID)
	assert.ErrorIs(t, err, util.ErrContentNotFound)

	// Ledger entries for deleted content are gone; the sibling tree and
	// the overall rollup stay consistent.
	overall, err := env.aggregator.ComputeOverallProgress(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, overall.TotalItems)
	assert.Equal(t, 1, overall.TotalCompleted)
	assert.Equal(t, 100, overall.Percentage)
}

func TestDeleteTopicUnknown(t *testing.T) {
	env := newTestEnv(t)
	assert.ErrorIs(t, env.catalog.DeleteTopic(42), util.ErrTopicNotFound)
}

func TestCreateContentValidation(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "T", nil)

	_, err := env.catalog.CreateContent(topic.ID, "bad", model.ContentType("podcast"), "", "", 0)
	assert.ErrorIs(t, err, util.ErrInvalidContentType)

	_, err = env.catalog.CreateContent(999, "orphan", model.Video, "", "", 0)
	assert.ErrorIs(t, err, util.ErrInvalidTopic)
}

func TestDeleteContentRemovesLedgerEntries(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "T", nil)
	item := env.mustContent(t, topic.ID, "lesson")

	const userID = uint(9)
	_, err := env.progress.SetCompletion(userID, item.ID, true)
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeleteContent(item.ID))

	overall, err := env.aggregator.ComputeOverallProgress(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, overall.TotalItems)
	assert.Equal(t, 0, overall.TotalCompleted)
}

func TestListContentsOrdering(t *testing.T) {
	env := newTestEnv(t)
	topic := env.mustTopic(t, "T", nil)

	third, err := env.catalog.CreateContent(topic.ID, "third", model.Notes, "", "", 3)
	require.NoError(t, err)
	first, err := env.catalog.CreateContent(topic.ID, "first", model.Video, "", "", 1)
	require.NoError(t, err)
	second, err := env.catalog.CreateContent(topic.ID, "second", model.Exercise, "", "", 2)
	require.NoError(t, err)

	contents, err := env.catalog.ListContents(topic.ID)
	require.NoError(t, err)
	require.Len(t, contents, 3)
	assert.Equal(t, first.ID, contents[0].ID)
	assert.Equal(t, second.ID, contents[1].ID)
	assert.Equal(t, third.ID, contents[2].ID)
}

func TestListRootTopicsTotals(t *testing.T) {
	env := newTestEnv(t)

	root := env.mustTopic(t, "Root", nil)
	child := env.mustTopic(t, "Child", &root.ID)
	env.mustContent(t, root.ID, "a")
	env.mustContent(t, child.ID, "b")
	env.mustContent(t, child.ID, "c")

	roots, err := env.catalog.ListRootTopics()
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, 3, roots[0].TotalItems)
	assert.Equal(t, 1, roots[0].SubtopicsCount)
}

func TestUpdateContentMoveAndType(t *testing.T) {
	env := newTestEnv(t)
	src := env.mustTopic(t, "Src", nil)
	dst := env.mustTopic(t, "Dst", nil)
	item := env.mustContent(t, src.ID, "lesson")

	newType := model.Exercise
	updated, err := env.catalog.UpdateContent(item.ID, UpdateContentInput{
		ContentType: &newType,
		TopicID:     &dst.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.Exercise, updated.ContentType)
	assert.Equal(t, dst.ID, updated.TopicID)

	bad := model.ContentType("webinar")
	_, err = env.catalog.UpdateContent(item.ID, UpdateContentInput{ContentType: &bad})
	assert.ErrorIs(t, err, util.ErrInvalidContentType)
}
