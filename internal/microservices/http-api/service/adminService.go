package service

import (
	"context"
	"time"

	"foodreview/internal/logging"
	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"

	"github.com/rs/zerolog/log"
)

// DashboardStats aggregates counts from both stores.
type DashboardStats struct {
	Users           repository.UserStats   `json:"users"`
	Reviews         repository.ReviewStats `json:"reviews"`
	TotalComplaints int64                  `json:"totalComplaints"`
	RecentReviews   []models.Review        `json:"recentReviews"`
}

// ModerationUpdate is an admin edit of a review's visibility flags.
type ModerationUpdate struct {
	IsRemoved *bool
	Featured  *bool
}

type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, int64, error)
	ModerateReview(ctx context.Context, reviewID string, update ModerationUpdate, who Requester) (*models.Review, error)
	ListReports(ctx context.Context, page, pageSize int) ([]repository.ReportEntry, int64, error)

	// user management, superadmin only
	ListUsers(ctx context.Context, filter repository.UserFilter, who Requester) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, userID string, update UserUpdate, who Requester) (*models.User, error)
	DeleteUser(ctx context.Context, userID string, who Requester) error
}

// UserUpdate is a superadmin edit of another account; nil means unchanged.
type UserUpdate struct {
	Role     *string
	IsActive *bool
}

type adminService struct {
	*reviewWriter
	users      repository.UserRepository
	complaints repository.ComplaintRepository
}

func NewAdminService(
	reviews repository.ReviewRepository,
	cache repository.ReviewCache,
	users repository.UserRepository,
	complaints repository.ComplaintRepository,
	opts ...Option,
) AdminService {
	return &adminService{
		reviewWriter: newReviewWriter(reviews, cache, opts...),
		users:        users,
		complaints:   complaints,
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	since := startOfDay(s.now())

	reviewStats, err := s.repo.Stats(ctx, since)
	if err != nil {
		return nil, err
	}
	userStats, err := s.users.Stats(ctx, since)
	if err != nil {
		return nil, err
	}
	complaints, err := s.complaints.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.repo.List(ctx, repository.ReviewFilter{Page: 1, PageSize: 5})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Users:           *userStats,
		Reviews:         *reviewStats,
		TotalComplaints: complaints,
		RecentReviews:   recent,
	}, nil
}

// ListReviews includes removed reviews when filter.Status asks for them.
func (s *adminService) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, int64, error) {
	if filter.Status == "" {
		filter.Status = repository.StatusAll
	}
	return s.repo.List(ctx, filter)
}

// ModerateReview is the only path that can restore a removed review.
func (s *adminService) ModerateReview(ctx context.Context, reviewID string, update ModerationUpdate, who Requester) (*models.Review, error) {
	if !who.IsAdmin() {
		return nil, models.ErrAdminOnly
	}

	review, err := s.mutate(ctx, "moderate", reviewID, func(r *models.Review, now time.Time) error {
		if update.IsRemoved != nil {
			r.SetRemoved(*update.IsRemoved, now)
		}
		if update.Featured != nil {
			r.Featured = *update.Featured
		}
		r.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := "update"
	if update.IsRemoved != nil {
		action = "restore"
		if *update.IsRemoved {
			action = "remove"
		}
	}
	logging.LogModeration(reviewID, who.UserID, action, review.ReportsCount())
	return review, nil
}

func (s *adminService) ListReports(ctx context.Context, page, pageSize int) ([]repository.ReportEntry, int64, error) {
	return s.repo.ListReports(ctx, page, pageSize)
}

func (s *adminService) ListUsers(ctx context.Context, filter repository.UserFilter, who Requester) ([]models.User, int64, error) {
	if who.Role != models.RoleSuperAdmin {
		return nil, 0, models.ErrSuperAdminOnly
	}
	return s.users.List(ctx, filter)
}

// UpdateUser changes role and active flag. A superadmin cannot demote themselves.
func (s *adminService) UpdateUser(ctx context.Context, userID string, update UserUpdate, who Requester) (*models.User, error) {
	if who.Role != models.RoleSuperAdmin {
		return nil, models.ErrSuperAdminOnly
	}
	if update.Role != nil && !models.IsValidRole(*update.Role) {
		return nil, models.ErrInvalidRole
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ID == who.UserID && update.Role != nil && *update.Role != models.RoleSuperAdmin {
		return nil, models.ErrSelfDemotion
	}

	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("admin_id", who.UserID).
		Str("role", user.Role).Bool("is_active", user.IsActive).Msg("user updated")
	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID string, who Requester) error {
	if who.Role != models.RoleSuperAdmin {
		return models.ErrSuperAdminOnly
	}
	if userID == who.UserID {
		return models.ErrSelfDelete
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	log.Info().Str("user_id", userID).Str("admin_id", who.UserID).Msg("user deleted")
	return nil
}
