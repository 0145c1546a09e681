package service

import (
	"context"
	"fmt"
	"strings"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"

	"github.com/rs/zerolog/log"
)

// Requester is the identity a request acts as.
type Requester struct {
	UserID   string
	Username string
	Role     string
}

func (r Requester) IsAdmin() bool { return models.IsAdminRole(r.Role) }

type ComplaintService interface {
	Create(ctx context.Context, draft models.ComplaintDraft, who Requester) (*models.Complaint, error)
	Get(ctx context.Context, id string, who Requester) (*models.Complaint, error)
	List(ctx context.Context, filter repository.ComplaintFilter, who Requester) ([]models.Complaint, int64, error)
	UpdateStatus(ctx context.Context, id, status string, response *string, who Requester) (*models.Complaint, error)
}

type complaintService struct {
	repo repository.ComplaintRepository
}

func NewComplaintService(repo repository.ComplaintRepository) ComplaintService {
	return &complaintService{repo: repo}
}

func (s *complaintService) Create(ctx context.Context, draft models.ComplaintDraft, who Requester) (*models.Complaint, error) {
	if strings.TrimSpace(draft.UserName) == "" {
		draft.UserName = who.Username
	}
	complaint, err := models.NewComplaint(draft, who.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}
	log.Info().Str("complaint_id", complaint.ID).Str("restaurant", complaint.RestaurantName).Msg("complaint filed")
	return complaint, nil
}

func (s *complaintService) Get(ctx context.Context, id string, who Requester) (*models.Complaint, error) {
	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !complaint.VisibleTo(who.UserID, who.Role) {
		return nil, models.ErrNotComplaintAuthor
	}
	return complaint, nil
}

// List shows admins every complaint and everyone else only their own.
func (s *complaintService) List(ctx context.Context, filter repository.ComplaintFilter, who Requester) ([]models.Complaint, int64, error) {
	if !who.IsAdmin() {
		if who.UserID == "" {
			return []models.Complaint{}, 0, nil
		}
		filter.UserID = who.UserID
	}
	if filter.Status != "" && filter.Status != "all" {
		if _, err := models.ParseComplaintStatus(filter.Status); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.List(ctx, filter)
}

// UpdateStatus is an admin operation; response replaces the admin reply when set.
func (s *complaintService) UpdateStatus(ctx context.Context, id, status string, response *string, who Requester) (*models.Complaint, error) {
	if !who.IsAdmin() {
		return nil, models.ErrAdminOnly
	}

	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status != "" {
		parsed, err := models.ParseComplaintStatus(status)
		if err != nil {
			return nil, err
		}
		complaint.Status = parsed
	}
	if response != nil {
		complaint.AdminResponse = strings.TrimSpace(*response)
	}

	if err := s.repo.Update(ctx, complaint); err != nil {
		return nil, fmt.Errorf("update complaint: %w", err)
	}
	return complaint, nil
}
