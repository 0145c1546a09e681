package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "open"
	ComplaintInReview ComplaintStatus = "in_review"
	ComplaintResolved ComplaintStatus = "resolved"

	DefaultComplainant = "Anonymous"
)

// ParseComplaintStatus validates a raw status string.
func ParseComplaintStatus(raw string) (ComplaintStatus, error) {
	switch s := ComplaintStatus(strings.TrimSpace(raw)); s {
	case ComplaintOpen, ComplaintInReview, ComplaintResolved:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Complaint is a customer complaint about a restaurant, optionally tied to a review.
type Complaint struct {
	ID             string          `gorm:"primaryKey;type:uuid" json:"_id"`
	RestaurantName string          `gorm:"not null" json:"restaurantName"`
	ItemName       string          `json:"itemName,omitempty"`
	Title          string          `gorm:"not null" json:"title"`
	Description    string          `gorm:"type:text;not null" json:"description"`
	UserName       string          `gorm:"default:'Anonymous'" json:"userName"`
	UserID         string          `gorm:"index;not null" json:"userId"`
	PostID         string          `gorm:"index" json:"postId,omitempty"`
	Status         ComplaintStatus `gorm:"type:varchar(16);default:'open';not null;index" json:"status"`
	AdminResponse  string          `gorm:"type:text" json:"adminResponse,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Complaint) TableName() string {
	return "complaints"
}

// ComplaintDraft holds the fields a user submits.
type ComplaintDraft struct {
	RestaurantName string
	ItemName       string
	Title          string
	Description    string
	UserName       string
	PostID         string
}

// NewComplaint validates a draft and builds an open complaint owned by userID.
func NewComplaint(d ComplaintDraft, userID string) (*Complaint, error) {
	c := &Complaint{
		RestaurantName: strings.TrimSpace(d.RestaurantName),
		ItemName:       strings.TrimSpace(d.ItemName),
		Title:          strings.TrimSpace(d.Title),
		Description:    strings.TrimSpace(d.Description),
		UserName:       truncateRunes(strings.TrimSpace(d.UserName), MaxNameLength),
		UserID:         userID,
		PostID:         strings.TrimSpace(d.PostID),
		Status:         ComplaintOpen,
	}
	if c.RestaurantName == "" || c.Title == "" || c.Description == "" {
		return nil, InvalidInputf("restaurantName, title and description are required")
	}
	if c.UserName == "" {
		c.UserName = DefaultComplainant
	}
	if c.UserID == "" {
		c.UserID = AnonymousUser
	}
	return c, nil
}

// VisibleTo reports whether requesterID (with role) may read the complaint.
func (c *Complaint) VisibleTo(requesterID, role string) bool {
	return IsAdminRole(role) || (requesterID != "" && c.UserID == requesterID)
}
