package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// AnonymousUser is the author/user value used when no identity is supplied.
	// Reviews authored by it are editable by anyone.
	AnonymousUser = "anonymous"

	// AutoRemoveThreshold is the number of distinct reports that hides a review.
	AutoRemoveThreshold = 5

	MinTitleLength       = 3
	MinDescriptionLength = 20
	MaxNameLength        = 60
	MinRating            = 1
	MaxRating            = 5
)

// Review is a restaurant review document. It owns its comments and reports.
type Review struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Rating      *float64           `json:"rating,omitempty" bson:"rating,omitempty"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Images      []string           `json:"images" bson:"images"`
	VisitDate   *time.Time         `json:"visitDate,omitempty" bson:"visitDate,omitempty"`

	// Facets used for filtering
	Cuisine     string   `json:"cuisine,omitempty" bson:"cuisine,omitempty"`
	Area        string   `json:"area,omitempty" bson:"area,omitempty"`
	DiningStyle string   `json:"diningStyle,omitempty" bson:"diningStyle,omitempty"`
	Price       string   `json:"price,omitempty" bson:"price,omitempty"`
	Tags        []string `json:"tags" bson:"tags"`

	AuthorID   string `json:"authorId" bson:"authorId"`
	AuthorName string `json:"authorName,omitempty" bson:"authorName,omitempty"`

	// Reactions
	LikedBy    UserSet `json:"likedBy" bson:"likedBy"`
	DislikedBy UserSet `json:"dislikedBy" bson:"dislikedBy"`
	Likes      int     `json:"likes" bson:"likes"`
	Dislikes   int     `json:"dislikes" bson:"dislikes"`

	Comments []Comment `json:"comments" bson:"comments"`

	// Moderation
	Reports   []Report   `json:"reports" bson:"reports"`
	IsRemoved bool       `json:"isRemoved" bson:"isRemoved"`
	RemovedAt *time.Time `json:"removedAt,omitempty" bson:"removedAt,omitempty"`
	Featured  bool       `json:"featured" bson:"featured"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`

	// Version guards conditional writes; never exposed.
	Version int64 `json:"-" bson:"version"`
}

// ReportsCount is the number of stored reports.
func (r *Review) ReportsCount() int { return len(r.Reports) }

// ReviewDraft holds the fields accepted when creating a review.
type ReviewDraft struct {
	Title       string
	Description string
	Rating      *float64
	ImageURL    string
	Images      []string
	VisitDate   *time.Time
	Cuisine     string
	Area        string
	DiningStyle string
	Price       string
	Tags        []string
	AuthorName  string
}

// NewReview validates a draft and builds a fresh review owned by authorID
// (or the anonymous sentinel when authorID is empty).
func NewReview(d ReviewDraft, authorID string, now time.Time) (*Review, error) {
	title := strings.TrimSpace(d.Title)
	description := strings.TrimSpace(d.Description)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validateRating(d.Rating); err != nil {
		return nil, err
	}
	if authorID == "" {
		authorID = AnonymousUser
	}

	r := &Review{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		Rating:      d.Rating,
		ImageURL:    strings.TrimSpace(d.ImageURL),
		Images:      nonNil(d.Images),
		VisitDate:   d.VisitDate,
		Cuisine:     strings.TrimSpace(d.Cuisine),
		Area:        strings.TrimSpace(d.Area),
		DiningStyle: strings.TrimSpace(d.DiningStyle),
		Price:       strings.TrimSpace(d.Price),
		Tags:        trimAll(d.Tags),
		AuthorID:    authorID,
		AuthorName:  truncateRunes(strings.TrimSpace(d.AuthorName), MaxNameLength),
		LikedBy:     UserSet{},
		DislikedBy:  UserSet{},
		Comments:    []Comment{},
		Reports:     []Report{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return r, nil
}

// ReviewPatch holds the fields an author may change; nil means unchanged.
type ReviewPatch struct {
	Title       *string
	Description *string
	Rating      *float64
	Cuisine     *string
	Area        *string
	DiningStyle *string
	Price       *string
	ImageURL    *string
	Tags        *[]string
	VisitDate   *time.Time
}

// CanUpdate reports whether requesterID may edit the review.
// Anonymous-authored reviews are editable by anyone.
func (r *Review) CanUpdate(requesterID string) bool {
	if r.AuthorID == "" || r.AuthorID == AnonymousUser {
		return true
	}
	return requesterID != "" && r.AuthorID == requesterID
}

// ApplyPatch validates and applies p. Nothing is changed on error.
func (r *Review) ApplyPatch(p ReviewPatch, now time.Time) error {
	var title, description string
	if p.Title != nil {
		title = strings.TrimSpace(*p.Title)
		if err := validateTitle(title); err != nil {
			return err
		}
	}
	if p.Description != nil {
		description = strings.TrimSpace(*p.Description)
		if err := validateDescription(description); err != nil {
			return err
		}
	}
	if err := validateRating(p.Rating); err != nil {
		return err
	}

	if p.Title != nil {
		r.Title = title
	}
	if p.Description != nil {
		r.Description = description
	}
	if p.Rating != nil {
		rating := *p.Rating
		r.Rating = &rating
	}
	setTrimmed(&r.Cuisine, p.Cuisine)
	setTrimmed(&r.Area, p.Area)
	setTrimmed(&r.DiningStyle, p.DiningStyle)
	setTrimmed(&r.Price, p.Price)
	setTrimmed(&r.ImageURL, p.ImageURL)
	if p.Tags != nil {
		r.Tags = trimAll(*p.Tags)
	}
	if p.VisitDate != nil {
		visit := *p.VisitDate
		r.VisitDate = &visit
	}
	r.UpdatedAt = now
	return nil
}

// SetRemoved is the manual moderation switch. Unlike auto-moderation it can
// also restore a review.
func (r *Review) SetRemoved(removed bool, now time.Time) {
	if removed && !r.IsRemoved {
		r.RemovedAt = &now
	}
	if !removed {
		r.RemovedAt = nil
	}
	r.IsRemoved = removed
}

// Clone returns a deep copy.
func (r *Review) Clone() *Review {
	c := *r
	if r.Rating != nil {
		v := *r.Rating
		c.Rating = &v
	}
	if r.VisitDate != nil {
		v := *r.VisitDate
		c.VisitDate = &v
	}
	if r.RemovedAt != nil {
		v := *r.RemovedAt
		c.RemovedAt = &v
	}
	c.Images = append([]string(nil), r.Images...)
	c.Tags = append([]string(nil), r.Tags...)
	c.LikedBy = append(UserSet(nil), r.LikedBy...)
	c.DislikedBy = append(UserSet(nil), r.DislikedBy...)
	c.Comments = append([]Comment(nil), r.Comments...)
	c.Reports = append([]Report(nil), r.Reports...)
	return &c
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) < MinTitleLength {
		return InvalidInputf("title must be at least %d characters", MinTitleLength)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return InvalidInputf("description must be at least %d characters", MinDescriptionLength)
	}
	return nil
}

func validateRating(rating *float64) error {
	if rating != nil && (*rating < MinRating || *rating > MaxRating) {
		return InvalidInputf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
