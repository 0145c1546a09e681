package service

import (
	"context"
	"testing"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestAdminService_ModerateReview(t *testing.T) {
	ctx := context.Background()
	repo := newMemReviewRepo()
	cache := newMemCache()
	svc := NewAdminService(repo, cache, new(MockUserRepository), new(MockComplaintRepository))
	review := seedReview(t, repo, "author")
	id := review.ID.Hex()
	admin := Requester{UserID: "a1", Role: models.RoleAdmin}

	_, err := svc.ModerateReview(ctx, id, ModerationUpdate{IsRemoved: boolPtr(true)}, Requester{UserID: "u1"})
	assert.ErrorIs(t, err, models.ErrForbidden)

	got, err := svc.ModerateReview(ctx, id, ModerationUpdate{IsRemoved: boolPtr(true), Featured: boolPtr(true)}, admin)
	require.NoError(t, err)
	assert.True(t, got.IsRemoved)
	assert.True(t, got.Featured)
	assert.NotNil(t, got.RemovedAt)

	// only this path restores a review
	got, err = svc.ModerateReview(ctx, id, ModerationUpdate{IsRemoved: boolPtr(false)}, admin)
	require.NoError(t, err)
	assert.False(t, got.IsRemoved)
	assert.Nil(t, got.RemovedAt)
	assert.Equal(t, repo.stored(id).Version, cache.cachedVersion(id))
}

func TestAdminService_Dashboard(t *testing.T) {
	ctx := context.Background()
	repo := newMemReviewRepo()
	users := new(MockUserRepository)
	complaints := new(MockComplaintRepository)
	svc := NewAdminService(repo, nil, users, complaints)

	seedReview(t, repo, "a")
	users.On("Stats", ctx, mock.Anything).Return(&repository.UserStats{TotalUsers: 3, ActiveUsers: 2}, nil).Once()
	complaints.On("Count", ctx).Return(int64(4), nil).Once()

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Users.TotalUsers)
	assert.Equal(t, int64(1), stats.Reviews.TotalReviews)
	assert.Equal(t, int64(4), stats.TotalComplaints)
	assert.Len(t, stats.RecentReviews, 1)
}

func TestAdminService_ListReviewsDefaultsToAll(t *testing.T) {
	ctx := context.Background()
	repo := newMemReviewRepo()
	svc := NewAdminService(repo, nil, nil, nil)
	seedReview(t, repo, "a")
	removed := seedReview(t, repo, "b")
	removed.IsRemoved = true
	require.NoError(t, repo.Replace(ctx, removed))

	list, _, err := svc.ListReviews(ctx, repository.ReviewFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, _, err = svc.ListReviews(ctx, repository.ReviewFilter{Status: repository.StatusRemoved})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAdminService_UserManagement(t *testing.T) {
	ctx := context.Background()
	root := Requester{UserID: "root", Role: models.RoleSuperAdmin}
	admin := Requester{UserID: "a1", Role: models.RoleAdmin}

	t.Run("SuperAdminOnly", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAdminService(newMemReviewRepo(), nil, users, nil)

		_, _, err := svc.ListUsers(ctx, repository.UserFilter{}, admin)
		assert.ErrorIs(t, err, models.ErrForbidden)
		_, err = svc.UpdateUser(ctx, "u1", UserUpdate{IsActive: boolPtr(false)}, admin)
		assert.ErrorIs(t, err, models.ErrForbidden)
		assert.ErrorIs(t, svc.DeleteUser(ctx, "u1", admin), models.ErrForbidden)
		users.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		svc := NewAdminService(newMemReviewRepo(), nil, new(MockUserRepository), nil)
		_, err := svc.UpdateUser(ctx, "u1", UserUpdate{Role: strPtr("owner")}, root)
		assert.Equal(t, models.ErrInvalidRole, err)
	})

	t.Run("SelfDemotion", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAdminService(newMemReviewRepo(), nil, users, nil)
		users.On("FindByID", ctx, "root").Return(&models.User{ID: "root", Role: models.RoleSuperAdmin, IsActive: true}, nil)

		_, err := svc.UpdateUser(ctx, "root", UserUpdate{Role: strPtr(models.RoleAdmin)}, root)
		assert.Equal(t, models.ErrSelfDemotion, err)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("SelfDelete", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAdminService(newMemReviewRepo(), nil, users, nil)
		assert.Equal(t, models.ErrSelfDelete, svc.DeleteUser(ctx, "root", root))
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("PromoteAndDeactivate", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAdminService(newMemReviewRepo(), nil, users, nil)
		users.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1", Role: models.RoleUser, IsActive: true}, nil).Once()
		users.On("Update", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleAdmin && !u.IsActive
		})).Return(nil).Once()

		got, err := svc.UpdateUser(ctx, "u1", UserUpdate{Role: strPtr(models.RoleAdmin), IsActive: boolPtr(false)}, root)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)
		users.AssertExpectations(t)
	})

	t.Run("ListAndDelete", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAdminService(newMemReviewRepo(), nil, users, nil)
		filter := repository.UserFilter{Query: "bob", Page: 1, PageSize: 10}
		users.On("List", ctx, filter).Return([]models.User{{ID: "u2", Username: "bob"}}, int64(1), nil).Once()
		users.On("Delete", ctx, "u2").Return(nil).Once()

		list, total, err := svc.ListUsers(ctx, filter, root)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, list, 1)
		require.NoError(t, svc.DeleteUser(ctx, "u2", root))
		users.AssertExpectations(t)
	})
}
