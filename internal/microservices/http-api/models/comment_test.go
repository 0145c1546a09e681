package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddComment(t *testing.T) {
	now := time.Now().UTC()

	t.Run("TrimsAndDefaultsAuthor", func(t *testing.T) {
		r := newTestReview()
		c, err := r.AddComment("", "  great food  ", "", now)
		require.NoError(t, err)
		assert.Equal(t, "great food", c.Text)
		assert.Equal(t, AnonymousUser, c.Author)
		assert.False(t, c.ID.IsZero())
		assert.Len(t, r.Comments, 1)
	})

	t.Run("TruncatesDisplayName", func(t *testing.T) {
		r := newTestReview()
		long := strings.Repeat("é", MaxNameLength+10)
		c, err := r.AddComment("u1", "hi", long, now)
		require.NoError(t, err)
		assert.Equal(t, MaxNameLength, len([]rune(c.AuthorName)))
	})

	t.Run("EmptyText", func(t *testing.T) {
		r := newTestReview()
		_, err := r.AddComment("u1", "   ", "", now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("RemovedReview", func(t *testing.T) {
		r := newTestReview()
		r.IsRemoved = true
		_, err := r.AddComment("u1", "hello", "", now)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteComment(t *testing.T) {
	now := time.Now()
	r := newTestReview()
	c, err := r.AddComment("author", "hello", "", now)
	require.NoError(t, err)

	assert.ErrorIs(t, r.DeleteComment(c.ID.Hex(), "someone-else"), ErrForbidden)
	assert.ErrorIs(t, r.DeleteComment(c.ID.Hex(), ""), ErrForbidden)
	assert.ErrorIs(t, r.DeleteComment(primitive.NewObjectID().Hex(), "author"), ErrNotFound)

	require.NoError(t, r.DeleteComment(c.ID.Hex(), "author"))
	assert.Empty(t, r.Comments)
}

func TestDeleteAnonymousComment(t *testing.T) {
	r := newTestReview()
	c, err := r.AddComment("", "hello", "", time.Now())
	require.NoError(t, err)

	// anonymous comments can only be removed by a requester literally named "anonymous"
	assert.ErrorIs(t, r.DeleteComment(c.ID.Hex(), "u1"), ErrForbidden)
	assert.NoError(t, r.DeleteComment(c.ID.Hex(), AnonymousUser))
}

func TestCommentsNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := newTestReview()
	for i, text := range []string{"first", "second", "third"} {
		_, err := r.AddComment("u1", text, "", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	list := r.CommentsNewestFirst()
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Text)
	assert.Equal(t, "first", list[2].Text)
	// stored order is untouched
	assert.Equal(t, "first", r.Comments[0].Text)

	assert.NotNil(t, newTestReview().CommentsNewestFirst())
}
