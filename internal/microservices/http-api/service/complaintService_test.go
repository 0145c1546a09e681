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

func TestComplaintService_Create(t *testing.T) {
	repo := new(MockComplaintRepository)
	svc := NewComplaintService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Complaint) bool {
		return c.UserID == "u1" && c.UserName == "dana" && c.Status == models.ComplaintOpen
	})).Return(nil).Once()

	c, err := svc.Create(context.Background(), models.ComplaintDraft{
		RestaurantName: "Pho 99",
		Title:          "Hair in soup",
		Description:    "Found a hair in my pho",
	}, Requester{UserID: "u1", Username: "dana"})
	require.NoError(t, err)
	assert.Equal(t, "Pho 99", c.RestaurantName)
	repo.AssertExpectations(t)

	_, err = svc.Create(context.Background(), models.ComplaintDraft{}, Requester{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestComplaintService_ListScopesNonAdmins(t *testing.T) {
	repo := new(MockComplaintRepository)
	svc := NewComplaintService(repo)
	ctx := context.Background()

	repo.On("List", mock.Anything, repository.ComplaintFilter{UserID: "u1"}).
		Return([]models.Complaint{{ID: "c1", UserID: "u1"}}, int64(1), nil).Once()
	list, total, err := svc.List(ctx, repository.ComplaintFilter{UserID: "someone-else"}, Requester{UserID: "u1", Role: models.RoleUser})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(1), total)

	repo.On("List", mock.Anything, repository.ComplaintFilter{Status: "open"}).
		Return([]models.Complaint{}, int64(0), nil).Once()
	_, _, err = svc.List(ctx, repository.ComplaintFilter{Status: "open"}, Requester{UserID: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, _, err = svc.List(ctx, repository.ComplaintFilter{Status: "bogus"}, Requester{Role: models.RoleAdmin})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	list, _, err = svc.List(ctx, repository.ComplaintFilter{}, Requester{})
	require.NoError(t, err)
	assert.Empty(t, list)

	repo.AssertExpectations(t)
}

func TestComplaintService_GetChecksOwnership(t *testing.T) {
	repo := new(MockComplaintRepository)
	svc := NewComplaintService(repo)
	repo.On("GetByID", mock.Anything, "c1").Return(&models.Complaint{ID: "c1", UserID: "u1"}, nil)

	_, err := svc.Get(context.Background(), "c1", Requester{UserID: "u2"})
	assert.ErrorIs(t, err, models.ErrForbidden)

	c, err := svc.Get(context.Background(), "c1", Requester{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
}

func TestComplaintService_UpdateStatus(t *testing.T) {
	repo := new(MockComplaintRepository)
	svc := NewComplaintService(repo)
	ctx := context.Background()
	admin := Requester{UserID: "a1", Role: models.RoleAdmin}

	_, err := svc.UpdateStatus(ctx, "c1", "resolved", nil, Requester{UserID: "u1"})
	assert.ErrorIs(t, err, models.ErrForbidden)

	repo.On("GetByID", mock.Anything, "c1").Return(&models.Complaint{ID: "c1", Status: models.ComplaintOpen}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	c, err := svc.UpdateStatus(ctx, "c1", "resolved", strPtr(" refunded "), admin)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintResolved, c.Status)
	assert.Equal(t, "refunded", c.AdminResponse)

	_, err = svc.UpdateStatus(ctx, "c1", "closed", nil, admin)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
