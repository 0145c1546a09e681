package service

import (
	"context"
	"fmt"
	"time"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/monitoring"
)

type ReviewService interface {
	Create(ctx context.Context, draft models.ReviewDraft, authorID string) (*models.Review, error)
	Get(ctx context.Context, id string) (*models.Review, error)
	Update(ctx context.Context, id, requesterID string, patch models.ReviewPatch) (*models.Review, error)
	Delete(ctx context.Context, id, requesterRole string) error
	List(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, int64, error)
}

type reviewService struct {
	*reviewWriter
}

func NewReviewService(repo repository.ReviewRepository, cache repository.ReviewCache, opts ...Option) ReviewService {
	return &reviewService{reviewWriter: newReviewWriter(repo, cache, opts...)}
}

func (s *reviewService) Create(ctx context.Context, draft models.ReviewDraft, authorID string) (*models.Review, error) {
	review, err := models.NewReview(draft, authorID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

// Get returns a visible review. Removed reviews are reported as not found.
// A miss fills the cache; the cache keeps whichever copy has the newer version.
func (s *reviewService) Get(ctx context.Context, id string) (*models.Review, error) {
	review, ok := s.cache.Get(ctx, id)
	if ok {
		monitoring.RecordCacheHit()
		if review == nil {
			return nil, models.ErrReviewNotFound
		}
	} else {
		monitoring.RecordCacheMiss()
		var err error
		if review, err = s.repo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		s.cache.Set(ctx, review)
	}

	if review.IsRemoved {
		return nil, models.ErrReviewNotFound
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, id, requesterID string, patch models.ReviewPatch) (*models.Review, error) {
	return s.mutate(ctx, "update", id, func(r *models.Review, now time.Time) error {
		if r.IsRemoved {
			return models.ErrReviewNotFound
		}
		if !r.CanUpdate(requesterID) {
			return models.ErrNotReviewAuthor
		}
		return r.ApplyPatch(patch, now)
	})
}

// Delete is reserved for moderators, whoever wrote the review.
func (s *reviewService) Delete(ctx context.Context, id, requesterRole string) error {
	if !models.IsAdminRole(requesterRole) {
		return models.ErrAdminOnly
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Tombstone(ctx, id)
	s.events.Publish(models.ReviewEvent{Type: "delete", ReviewID: id, IsRemoved: true, At: s.now().UTC()})
	return nil
}

func (s *reviewService) List(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, int64, error) {
	filter.Status = repository.StatusActive
	return s.repo.List(ctx, filter)
}
