package repository

import (
	"context"
	"errors"
	"strings"

	"foodreview/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ComplaintFilter narrows a complaint listing. An empty UserID lists everyone's.
type ComplaintFilter struct {
	UserID   string
	Status   string // empty or "all" means any
	Query    string
	Page     int
	PageSize int
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	Update(ctx context.Context, complaint *models.Complaint) error
	GetByID(ctx context.Context, id string) (*models.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]models.Complaint, int64, error)
	Count(ctx context.Context) (int64, error)
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

// Create a new complaint
func (r *complaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

// Update an existing complaint
func (r *complaintRepository) Update(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

// GetByID retrieves a complaint by its ID
func (r *complaintRepository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&complaint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrComplaintNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

// List retrieves complaints newest first with pagination
func (r *complaintRepository) List(ctx context.Context, f ComplaintFilter) ([]models.Complaint, int64, error) {
	var complaints []models.Complaint
	var total int64

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > MaxPageSize {
		f.PageSize = 20
	}

	query := r.db.WithContext(ctx).Model(&models.Complaint{})
	if f.UserID != "" {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" && f.Status != "all" {
		query = query.Where("status = ?", f.Status)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + escapeLike(q) + "%"
		query = query.Where(
			"restaurant_name ILIKE ? OR item_name ILIKE ? OR title ILIKE ? OR description ILIKE ? OR user_name ILIKE ?",
			like, like, like, like, like,
		)
	}

	// Count total complaints
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated complaints
	offset := (f.Page - 1) * f.PageSize
	err := query.
		Order("created_at DESC").
		Limit(f.PageSize).
		Offset(offset).
		Find(&complaints).Error
	if err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

func (r *complaintRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Complaint{}).Count(&total).Error
	return total, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input literal inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
