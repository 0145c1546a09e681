package service

import (
	"context"
	"errors"
	"time"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/monitoring"

	"github.com/rs/zerolog/log"
)

// DefaultMaxAttempts bounds the read-modify-write loop per mutation.
const DefaultMaxAttempts = 5

// ErrConcurrentUpdate is returned when every attempt lost the version race.
var ErrConcurrentUpdate = errors.New("review is being modified concurrently, try again")

// reviewWriter runs every review mutation as read, mutate in memory, then a
// conditional replace. A lost race re-reads and re-applies the mutation.
// The committed document is written through to the cache.
type reviewWriter struct {
	repo        repository.ReviewRepository
	cache       repository.ReviewCache
	events      ReviewEvents
	maxAttempts int
	now         func() time.Time
}

func newReviewWriter(repo repository.ReviewRepository, cache repository.ReviewCache, opts ...Option) *reviewWriter {
	if cache == nil {
		cache = repository.NoopReviewCache{}
	}
	w := &reviewWriter{
		repo:        repo,
		cache:       cache,
		events:      noopEvents{},
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// mutate applies fn to a fresh copy of review id and persists it.
// fn must be deterministic for a given review and must not keep state
// between calls; results it captures reflect the attempt that succeeded.
func (w *reviewWriter) mutate(ctx context.Context, op, id string, fn func(r *models.Review, now time.Time) error) (*models.Review, error) {
	for attempt := 1; ; attempt++ {
		review, err := w.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		now := w.now().UTC()
		if err := fn(review, now); err != nil {
			return nil, err
		}

		err = w.repo.Replace(ctx, review)
		if err == nil {
			w.cache.Set(ctx, review)
			w.events.Publish(models.NewReviewEvent(op, review, now))
			return review, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}

		monitoring.RecordWriteRetry(op)
		if attempt >= w.maxAttempts {
			log.Warn().Str("review_id", id).Str("op", op).Int("attempts", attempt).Msg("giving up after version conflicts")
			return nil, ErrConcurrentUpdate
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}
