package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"foodreview/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReview(t *testing.T, repo *memReviewRepo, authorID string) *models.Review {
	t.Helper()
	r, err := models.NewReview(models.ReviewDraft{
		Title:       "Noodle Bar",
		Description: "Hand-pulled noodles with a fiery chili oil.",
		Cuisine:     "Chinese",
	}, authorID, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestReviewWriter_RetriesOnConflict(t *testing.T) {
	repo := newMemReviewRepo()
	cache := newMemCache()
	review := seedReview(t, repo, "author")
	repo.forceConflicts = 2

	svc := NewReactionService(repo, cache)
	res, err := svc.ToggleLike(context.Background(), review.ID.Hex(), "u1")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.Likes)
	assert.Equal(t, 3, repo.reads)
	// committed copy is written through, nothing is dropped
	assert.Equal(t, repo.stored(review.ID.Hex()).Version, cache.cachedVersion(review.ID.Hex()))
	assert.Empty(t, cache.invalidated)
}

func TestReviewWriter_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")
	repo.forceConflicts = DefaultMaxAttempts

	svc := NewReactionService(repo, nil)
	_, err := svc.ToggleLike(context.Background(), review.ID.Hex(), "u1")
	assert.ErrorIs(t, err, ErrConcurrentUpdate)

	stored := repo.stored(review.ID.Hex())
	assert.Empty(t, stored.LikedBy)
	assert.Equal(t, int64(0), stored.Version)
	assert.Equal(t, DefaultMaxAttempts, repo.reads)
}

func TestReviewWriter_ValidationErrorSkipsWrite(t *testing.T) {
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")

	svc := NewCommentService(repo, nil)
	_, err := svc.AddComment(context.Background(), review.ID.Hex(), "u1", "   ", "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, 0, repo.writes)
}

func TestConcurrentLikesFromDistinctUsers(t *testing.T) {
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")

	svc := &reactionService{reviewWriter: newReviewWriter(repo, nil)}
	svc.maxAttempts = 1000

	const users = 25
	var wg sync.WaitGroup
	errs := make(chan error, users)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.ToggleLike(context.Background(), review.ID.Hex(), fmt.Sprintf("user-%d", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored := repo.stored(review.ID.Hex())
	assert.Equal(t, users, stored.Likes)
	assert.Len(t, stored.LikedBy, users)
	assert.Equal(t, int64(users), stored.Version)
}

func TestConcurrentReportsRemoveExactlyOnce(t *testing.T) {
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")

	svc := &reportService{reviewWriter: newReviewWriter(repo, nil)}
	svc.maxAttempts = 1000

	const reporters = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		removedNow int
	)
	for i := 0; i < reporters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Report(context.Background(), review.ID.Hex(), fmt.Sprintf("r%d", i), "spam")
			if assert.NoError(t, err) && res.RemovedNow {
				mu.Lock()
				removedNow++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	stored := repo.stored(review.ID.Hex())
	assert.Len(t, stored.Reports, reporters)
	assert.True(t, stored.IsRemoved)
	assert.Equal(t, 1, removedNow)
}

func TestReviewWriter_PublishesOncePerCommit(t *testing.T) {
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")
	repo.forceConflicts = 2
	events := &memEvents{}

	svc := NewReactionService(repo, nil, WithEvents(events))
	_, err := svc.ToggleDislike(context.Background(), review.ID.Hex(), "u1")
	require.NoError(t, err)

	got := events.all()
	require.Len(t, got, 1)
	assert.Equal(t, "dislike", got[0].Type)
	assert.Equal(t, review.ID.Hex(), got[0].ReviewID)
	assert.Equal(t, 1, got[0].Dislikes)
	assert.Equal(t, 0, got[0].Likes)
}

func TestReviewWriter_NoEventOnFailure(t *testing.T) {
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")
	events := &memEvents{}

	svc := NewReportService(repo, nil, WithEvents(events))
	_, err := svc.Report(context.Background(), review.ID.Hex(), "u1", "spam")
	require.NoError(t, err)
	_, err = svc.Report(context.Background(), review.ID.Hex(), "u1", "spam")
	require.ErrorIs(t, err, models.ErrAlreadyReported)

	got := events.all()
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ReportsCount)
}

func TestWithMaxAttempts(t *testing.T) {
	repo := newMemReviewRepo()
	review := seedReview(t, repo, "author")
	repo.forceConflicts = 1

	svc := NewReactionService(repo, nil, WithMaxAttempts(1))
	_, err := svc.ToggleLike(context.Background(), review.ID.Hex(), "u1")
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.Equal(t, 1, repo.reads)
}
