package models

import "time"

// ReviewEvent is pushed to live subscribers after a review changes.
// It carries counters only, never reporter or reactor identities.
type ReviewEvent struct {
	Type          string    `json:"type"`
	ReviewID      string    `json:"reviewId"`
	Likes         int       `json:"likes"`
	Dislikes      int       `json:"dislikes"`
	ReportsCount  int       `json:"reportsCount"`
	CommentsCount int       `json:"commentsCount"`
	IsRemoved     bool      `json:"isRemoved"`
	At            time.Time `json:"at"`
}

func NewReviewEvent(kind string, r *Review, at time.Time) ReviewEvent {
	return ReviewEvent{
		Type:          kind,
		ReviewID:      r.ID.Hex(),
		Likes:         r.Likes,
		Dislikes:      r.Dislikes,
		ReportsCount:  r.ReportsCount(),
		CommentsCount: len(r.Comments),
		IsRemoved:     r.IsRemoved,
		At:            at,
	}
}
