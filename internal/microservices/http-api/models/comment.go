package models

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in its review.
type Comment struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Text       string             `json:"text" bson:"text"`
	Author     string             `json:"author" bson:"author"`
	AuthorName string             `json:"authorName,omitempty" bson:"authorName,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// AddComment appends a comment by userID (anonymous when empty).
// displayName is optional and cut to MaxNameLength characters.
func (r *Review) AddComment(userID, text, displayName string, now time.Time) (Comment, error) {
	body := strings.TrimSpace(text)
	if body == "" {
		return Comment{}, ErrEmptyComment
	}
	if r.IsRemoved {
		return Comment{}, ErrReviewNotFound
	}
	if userID == "" {
		userID = AnonymousUser
	}

	c := Comment{
		ID:         primitive.NewObjectID(),
		Text:       body,
		Author:     userID,
		AuthorName: truncateRunes(strings.TrimSpace(displayName), MaxNameLength),
		CreatedAt:  now,
	}
	r.Comments = append(r.Comments, c)
	return c, nil
}

// DeleteComment removes commentID if requesterID wrote it.
// There is no moderator override on this path.
func (r *Review) DeleteComment(commentID, requesterID string) error {
	idx := -1
	for i := range r.Comments {
		if r.Comments[i].ID.Hex() == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCommentNotFound
	}
	if requesterID == "" || r.Comments[idx].Author != requesterID {
		return ErrNotCommentAuthor
	}
	r.Comments = append(r.Comments[:idx], r.Comments[idx+1:]...)
	return nil
}

// CommentsNewestFirst returns a copy ordered by CreatedAt descending.
func (r *Review) CommentsNewestFirst() []Comment {
	out := append([]Comment(nil), r.Comments...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if out == nil {
		out = []Comment{}
	}
	return out
}
