package service

import (
	"context"
	"time"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/monitoring"
)

type CommentService interface {
	AddComment(ctx context.Context, reviewID, userID, text, displayName string) (*models.Comment, error)
	DeleteComment(ctx context.Context, reviewID, commentID, requesterID string) error
	ListComments(ctx context.Context, reviewID string) ([]models.Comment, error)
}

type commentService struct {
	*reviewWriter
}

func NewCommentService(repo repository.ReviewRepository, cache repository.ReviewCache, opts ...Option) CommentService {
	return &commentService{reviewWriter: newReviewWriter(repo, cache, opts...)}
}

func (s *commentService) AddComment(ctx context.Context, reviewID, userID, text, displayName string) (*models.Comment, error) {
	var created models.Comment
	_, err := s.mutate(ctx, "comment_add", reviewID, func(r *models.Review, now time.Time) error {
		var err error
		created, err = r.AddComment(userID, text, displayName, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordComment("add")
	return &created, nil
}

// DeleteComment removes a comment if requesterID wrote it.
func (s *commentService) DeleteComment(ctx context.Context, reviewID, commentID, requesterID string) error {
	_, err := s.mutate(ctx, "comment_delete", reviewID, func(r *models.Review, _ time.Time) error {
		return r.DeleteComment(commentID, requesterID)
	})
	if err != nil {
		return err
	}

	monitoring.RecordComment("delete")
	return nil
}

// ListComments is read-only and also works on removed reviews.
func (s *commentService) ListComments(ctx context.Context, reviewID string) ([]models.Comment, error) {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return review.CommentsNewestFirst(), nil
}
