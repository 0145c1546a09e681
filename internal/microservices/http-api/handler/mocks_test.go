package handler

import (
	"context"
	"time"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser fakes what middleware.Identity stores for an authenticated caller.
func asUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		if role != "" {
			c.Set("role", role)
			c.Set("claims", &service.Claims{UserID: userID, Role: role})
		}
		c.Next()
	}
}

func noLimit(c *gin.Context) { c.Next() }

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, draft models.ReviewDraft, authorID string) (*models.Review, error) {
	args := m.Called(ctx, draft, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, id string) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, id, requesterID string, patch models.ReviewPatch) (*models.Review, error) {
	args := m.Called(ctx, id, requesterID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, id, requesterRole string) error {
	return m.Called(ctx, id, requesterRole).Error(0)
}

func (m *MockReviewService) List(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, int64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]models.Review)
	return list, args.Get(1).(int64), args.Error(2)
}

type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) ToggleLike(ctx context.Context, reviewID, userID string) (models.ReactionResult, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Get(0).(models.ReactionResult), args.Error(1)
}

func (m *MockReactionService) ToggleDislike(ctx context.Context, reviewID, userID string) (models.ReactionResult, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Get(0).(models.ReactionResult), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Report(ctx context.Context, reviewID, userID, reason string) (models.ReportResult, error) {
	args := m.Called(ctx, reviewID, userID, reason)
	return args.Get(0).(models.ReportResult), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, reviewID, userID, text, displayName string) (*models.Comment, error) {
	args := m.Called(ctx, reviewID, userID, text, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, reviewID, commentID, requesterID string) error {
	return m.Called(ctx, reviewID, commentID, requesterID).Error(0)
}

func (m *MockCommentService) ListComments(ctx context.Context, reviewID string) ([]models.Comment, error) {
	args := m.Called(ctx, reviewID)
	list, _ := args.Get(0).([]models.Comment)
	return list, args.Error(1)
}

type MockComplaintService struct {
	mock.Mock
}

func (m *MockComplaintService) Create(ctx context.Context, draft models.ComplaintDraft, who service.Requester) (*models.Complaint, error) {
	args := m.Called(ctx, draft, who)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintService) Get(ctx context.Context, id string, who service.Requester) (*models.Complaint, error) {
	args := m.Called(ctx, id, who)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintService) List(ctx context.Context, filter repository.ComplaintFilter, who service.Requester) ([]models.Complaint, int64, error) {
	args := m.Called(ctx, filter, who)
	list, _ := args.Get(0).([]models.Complaint)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MockComplaintService) UpdateStatus(ctx context.Context, id, status string, response *string, who service.Requester) (*models.Complaint, error) {
	args := m.Called(ctx, id, status, response, who)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*service.TokenPair, *models.User, error) {
	args := m.Called(ctx, identifier, password)
	pair, _ := args.Get(0).(*service.TokenPair)
	user, _ := args.Get(1).(*models.User)
	return pair, user, args.Error(2)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, update service.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) AccessTokenTTL() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Dashboard(ctx context.Context) (*service.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardStats), args.Error(1)
}

func (m *MockAdminService) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, int64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]models.Review)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) ModerateReview(ctx context.Context, reviewID string, update service.ModerationUpdate, who service.Requester) (*models.Review, error) {
	args := m.Called(ctx, reviewID, update, who)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockAdminService) ListReports(ctx context.Context, page, pageSize int) ([]repository.ReportEntry, int64, error) {
	args := m.Called(ctx, page, pageSize)
	list, _ := args.Get(0).([]repository.ReportEntry)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) ListUsers(ctx context.Context, filter repository.UserFilter, who service.Requester) ([]models.User, int64, error) {
	args := m.Called(ctx, filter, who)
	list, _ := args.Get(0).([]models.User)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) UpdateUser(ctx context.Context, userID string, update service.UserUpdate, who service.Requester) (*models.User, error) {
	args := m.Called(ctx, userID, update, who)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAdminService) DeleteUser(ctx context.Context, userID string, who service.Requester) error {
	args := m.Called(ctx, userID, who)
	return args.Error(0)
}
