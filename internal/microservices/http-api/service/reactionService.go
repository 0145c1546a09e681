package service

import (
	"context"
	"time"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/monitoring"
)

type ReactionService interface {
	ToggleLike(ctx context.Context, reviewID, userID string) (models.ReactionResult, error)
	ToggleDislike(ctx context.Context, reviewID, userID string) (models.ReactionResult, error)
}

type reactionService struct {
	*reviewWriter
}

func NewReactionService(repo repository.ReviewRepository, cache repository.ReviewCache, opts ...Option) ReactionService {
	return &reactionService{reviewWriter: newReviewWriter(repo, cache, opts...)}
}

func (s *reactionService) ToggleLike(ctx context.Context, reviewID, userID string) (models.ReactionResult, error) {
	return s.toggle(ctx, models.ReactionLike, reviewID, userID)
}

func (s *reactionService) ToggleDislike(ctx context.Context, reviewID, userID string) (models.ReactionResult, error) {
	return s.toggle(ctx, models.ReactionDislike, reviewID, userID)
}

func (s *reactionService) toggle(ctx context.Context, kind models.ReactionKind, reviewID, userID string) (models.ReactionResult, error) {
	if userID == "" {
		return models.ReactionResult{}, models.ErrMissingUserID
	}

	var res models.ReactionResult
	_, err := s.mutate(ctx, string(kind), reviewID, func(r *models.Review, _ time.Time) error {
		var err error
		if kind == models.ReactionLike {
			res, err = r.ToggleLike(userID)
		} else {
			res, err = r.ToggleDislike(userID)
		}
		return err
	})
	if err != nil {
		return models.ReactionResult{}, err
	}

	monitoring.RecordReaction(string(kind), res.Active)
	return res, nil
}
