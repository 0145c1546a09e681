package dto

import "foodreview/internal/microservices/http-api/models"

// CreateComplaintRequest: payload for POST /api/complaints
type CreateComplaintRequest struct {
	RestaurantName string `json:"restaurantName" binding:"required"`
	ItemName       string `json:"itemName"`
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	UserName       string `json:"userName"`
	PostID         string `json:"postId"`
}

func (r CreateComplaintRequest) ToDraft() models.ComplaintDraft {
	return models.ComplaintDraft{
		RestaurantName: r.RestaurantName,
		ItemName:       r.ItemName,
		Title:          r.Title,
		Description:    r.Description,
		UserName:       r.UserName,
		PostID:         r.PostID,
	}
}

// UpdateComplaintStatusRequest: payload for PATCH /api/complaints/:id/status
type UpdateComplaintStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateComplaintRequest: payload for PUT /api/admin/complaints/:complaintId
type AdminUpdateComplaintRequest struct {
	Status   string  `json:"status"`
	Response *string `json:"response"`
}
