package service

import (
	"context"
	"fmt"
	"testing"

	"foodreview/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReactionService(t *testing.T) {
	ctx := context.Background()
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")
	svc := NewReactionService(repo, nil)
	id := review.ID.Hex()

	t.Run("LikeThenDislikeSwitches", func(t *testing.T) {
		res, err := svc.ToggleLike(ctx, id, "u1")
		require.NoError(t, err)
		assert.True(t, res.Liked)

		res, err = svc.ToggleDislike(ctx, id, "u1")
		require.NoError(t, err)
		assert.True(t, res.Disliked)
		assert.False(t, res.Liked)
		assert.Equal(t, 0, res.Likes)
		assert.Equal(t, 1, res.Dislikes)
	})

	t.Run("MissingUser", func(t *testing.T) {
		_, err := svc.ToggleLike(ctx, id, "")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("UnknownReview", func(t *testing.T) {
		_, err := svc.ToggleLike(ctx, primitive.NewObjectID().Hex(), "u1")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestReportService(t *testing.T) {
	ctx := context.Background()
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")
	reports := NewReportService(repo, nil)
	reviews := NewReviewService(repo, nil)
	id := review.ID.Hex()

	t.Run("InvalidReasonNeverReads", func(t *testing.T) {
		before := repo.reads
		_, err := reports.Report(ctx, id, "u1", "meh")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		assert.Equal(t, before, repo.reads)
	})

	t.Run("FifthReportRemoves", func(t *testing.T) {
		for i := 1; i <= 4; i++ {
			res, err := reports.Report(ctx, id, fmt.Sprintf("u%d", i), "spam")
			require.NoError(t, err)
			assert.False(t, res.Removed)
		}

		_, err := reports.Report(ctx, id, "u1", "spam")
		assert.ErrorIs(t, err, models.ErrConflict)

		res, err := reports.Report(ctx, id, "u5", "other")
		require.NoError(t, err)
		assert.Equal(t, 5, res.ReportsCount)
		assert.True(t, res.Removed)

		_, err = reviews.Get(ctx, id)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("RemovedReviewStillReportable", func(t *testing.T) {
		res, err := reports.Report(ctx, id, "u6", "spam")
		require.NoError(t, err)
		assert.Equal(t, 6, res.ReportsCount)
		assert.True(t, res.Removed)
		assert.False(t, res.RemovedNow)
	})
}

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")
	svc := NewCommentService(repo, nil)
	id := review.ID.Hex()

	first, err := svc.AddComment(ctx, id, "u1", "first!", "Una")
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, id, "", "anon thoughts", "")
	require.NoError(t, err)
	assert.Equal(t, models.AnonymousUser, second.Author)

	list, err := svc.ListComments(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 2)

	err = svc.DeleteComment(ctx, id, first.ID.Hex(), "u2")
	assert.ErrorIs(t, err, models.ErrForbidden)

	require.NoError(t, svc.DeleteComment(ctx, id, first.ID.Hex(), "u1"))
	list, err = svc.ListComments(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	err = svc.DeleteComment(ctx, id, first.ID.Hex(), "u1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.ListComments(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
