package dto

import (
	"time"

	"foodreview/internal/microservices/http-api/models"
)

// CreateReviewRequest: payload for POST /api/foodreviews
type CreateReviewRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Rating      *float64   `json:"rating" binding:"omitempty,min=1,max=5"`
	ImageURL    string     `json:"imageUrl"`
	Images      []string   `json:"images"`
	VisitDate   *time.Time `json:"visitDate"`
	Cuisine     string     `json:"cuisine"`
	Area        string     `json:"area"`
	DiningStyle string     `json:"diningStyle"`
	Price       string     `json:"price"`
	Tags        []string   `json:"tags"`
	AuthorName  string     `json:"authorName" binding:"max=60"`
}

func (r CreateReviewRequest) ToDraft() models.ReviewDraft {
	return models.ReviewDraft{
		Title:       r.Title,
		Description: r.Description,
		Rating:      r.Rating,
		ImageURL:    r.ImageURL,
		Images:      r.Images,
		VisitDate:   r.VisitDate,
		Cuisine:     r.Cuisine,
		Area:        r.Area,
		DiningStyle: r.DiningStyle,
		Price:       r.Price,
		Tags:        r.Tags,
		AuthorName:  r.AuthorName,
	}
}

// UpdateReviewRequest: payload for PATCH /api/foodreviews/:id, absent fields are left alone
type UpdateReviewRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Rating      *float64   `json:"rating" binding:"omitempty,min=1,max=5"`
	Cuisine     *string    `json:"cuisine"`
	Area        *string    `json:"area"`
	DiningStyle *string    `json:"diningStyle"`
	Price       *string    `json:"price"`
	ImageURL    *string    `json:"imageUrl"`
	Tags        *[]string  `json:"tags"`
	VisitDate   *time.Time `json:"visitDate"`
}

func (r UpdateReviewRequest) ToPatch() models.ReviewPatch {
	return models.ReviewPatch{
		Title:       r.Title,
		Description: r.Description,
		Rating:      r.Rating,
		Cuisine:     r.Cuisine,
		Area:        r.Area,
		DiningStyle: r.DiningStyle,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Tags:        r.Tags,
		VisitDate:   r.VisitDate,
	}
}

// ReviewResponse is what clients see of a review. Reporter identities stay private.
type ReviewResponse struct {
	ID           string           `json:"_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Rating       *float64         `json:"rating,omitempty"`
	ImageURL     string           `json:"imageUrl,omitempty"`
	Images       []string         `json:"images"`
	VisitDate    *time.Time       `json:"visitDate,omitempty"`
	Cuisine      string           `json:"cuisine,omitempty"`
	Area         string           `json:"area,omitempty"`
	DiningStyle  string           `json:"diningStyle,omitempty"`
	Price        string           `json:"price,omitempty"`
	Tags         []string         `json:"tags"`
	AuthorID     string           `json:"authorId"`
	AuthorName   string           `json:"authorName,omitempty"`
	LikedBy      []string         `json:"likedBy"`
	DislikedBy   []string         `json:"dislikedBy"`
	Likes        int              `json:"likes"`
	Dislikes     int              `json:"dislikes"`
	Comments     []models.Comment `json:"comments"`
	ReportsCount int              `json:"reportsCount"`
	IsRemoved    bool             `json:"isRemoved"`
	Featured     bool             `json:"featured"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func FromReview(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID.Hex(),
		Title:        r.Title,
		Description:  r.Description,
		Rating:       r.Rating,
		ImageURL:     r.ImageURL,
		Images:       orEmpty(r.Images),
		VisitDate:    r.VisitDate,
		Cuisine:      r.Cuisine,
		Area:         r.Area,
		DiningStyle:  r.DiningStyle,
		Price:        r.Price,
		Tags:         orEmpty(r.Tags),
		AuthorID:     r.AuthorID,
		AuthorName:   r.AuthorName,
		LikedBy:      orEmpty(r.LikedBy),
		DislikedBy:   orEmpty(r.DislikedBy),
		Likes:        r.Likes,
		Dislikes:     r.Dislikes,
		Comments:     r.CommentsNewestFirst(),
		ReportsCount: r.ReportsCount(),
		IsRemoved:    r.IsRemoved,
		Featured:     r.Featured,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func FromReviews(list []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for i := range list {
		out = append(out, FromReview(&list[i]))
	}
	return out
}

func orEmpty[S ~[]string](s S) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}

// ReactionResponse: result of like/dislike toggles
type ReactionResponse struct {
	Liked         bool `json:"liked"`
	LikesCount    int  `json:"likesCount"`
	Disliked      bool `json:"disliked"`
	DislikesCount int  `json:"dislikesCount"`
}

func FromReaction(r models.ReactionResult) ReactionResponse {
	return ReactionResponse{
		Liked:         r.Liked,
		LikesCount:    r.Likes,
		Disliked:      r.Disliked,
		DislikesCount: r.Dislikes,
	}
}

// ReportRequest: payload for POST /api/foodreviews/:id/report
type ReportRequest struct {
	Reason string `json:"reason"`
}

type ReportResponse struct {
	ReportsCount int  `json:"reportsCount"`
	Removed      bool `json:"removed"`
}

// CommentRequest: payload for POST /api/foodreviews/:id/comments
type CommentRequest struct {
	Text string `json:"text"`
	Name string `json:"name"`
}
