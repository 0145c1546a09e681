package repository

import (
	"fmt"
	"regexp"
	"strings"

	"foodreview/internal/microservices/http-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// decodeReview turns a raw stored document into a Review, normalizing the
// legacy shapes older writers left behind:
//   - likedBy/dislikedBy stored as a bare string (or null)
//   - reports stored as a plain number
//   - null comments/images/tags
//
// The in-memory Review always satisfies the counter and set invariants.
func decodeReview(raw bson.Raw) (*models.Review, error) {
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode review: %w", err)
	}

	for i := range doc {
		switch doc[i].Key {
		case "likedBy", "dislikedBy":
			doc[i].Value = normalizeUserSet(doc[i].Value)
		case "reports":
			doc[i].Value = normalizeReports(doc[i].Value)
		case "comments", "images", "tags":
			if doc[i].Value == nil {
				doc[i].Value = bson.A{}
			}
		}
	}

	normalized, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("re-encode review: %w", err)
	}

	var review models.Review
	if err := bson.Unmarshal(normalized, &review); err != nil {
		return nil, fmt.Errorf("decode review: %w", err)
	}

	review.LikedBy = models.NewUserSet(review.LikedBy...)
	review.DislikedBy = models.NewUserSet(review.DislikedBy...)
	// a user in both legacy sets keeps the like
	kept := review.DislikedBy[:0]
	for _, id := range review.DislikedBy {
		if !review.LikedBy.Contains(id) {
			kept = append(kept, id)
		}
	}
	review.DislikedBy = kept
	review.SyncCounters()

	if review.Comments == nil {
		review.Comments = []models.Comment{}
	}
	if review.Reports == nil {
		review.Reports = []models.Report{}
	}
	if review.Images == nil {
		review.Images = []string{}
	}
	if review.Tags == nil {
		review.Tags = []string{}
	}
	if review.AuthorID == "" {
		review.AuthorID = models.AnonymousUser
	}
	return &review, nil
}

func normalizeUserSet(v interface{}) bson.A {
	switch t := v.(type) {
	case nil:
		return bson.A{}
	case string:
		if t == "" {
			return bson.A{}
		}
		return bson.A{t}
	case bson.A:
		out := bson.A{}
		for _, item := range t {
			switch id := item.(type) {
			case string:
				if id != "" {
					out = append(out, id)
				}
			case primitive.ObjectID:
				out = append(out, id.Hex())
			}
		}
		return out
	default:
		return bson.A{}
	}
}

// normalizeReports keeps array values and drops anything else. A legacy
// numeric count has no reporter identities, so it is discarded.
func normalizeReports(v interface{}) bson.A {
	a, ok := v.(bson.A)
	if !ok {
		return bson.A{}
	}
	out := bson.A{}
	for _, item := range a {
		switch item.(type) {
		case bson.D, bson.M:
			out = append(out, item)
		}
	}
	return out
}

// ReviewStatus selects reviews by moderation state.
type ReviewStatus string

const (
	StatusActive  ReviewStatus = "active"
	StatusRemoved ReviewStatus = "removed"
	StatusAll     ReviewStatus = "all"
)

// ReviewFilter describes a review listing query.
type ReviewFilter struct {
	Query       string
	Cuisine     []string
	Area        []string
	DiningStyle []string
	Sort        string
	Status      ReviewStatus // empty means active
	Page        int
	PageSize    int
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Normalize clamps paging values.
func (f *ReviewFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

var searchFields = []string{"title", "description", "cuisine", "area", "diningStyle", "tags"}

func buildListFilter(f ReviewFilter) bson.M {
	filter := bson.M{}

	switch f.Status {
	case StatusAll:
	case StatusRemoved:
		filter["isRemoved"] = true
	default:
		// legacy documents may not carry the flag at all
		filter["isRemoved"] = bson.M{"$ne": true}
	}

	addFacet(filter, "cuisine", f.Cuisine)
	addFacet(filter, "area", f.Area)
	addFacet(filter, "diningStyle", f.DiningStyle)

	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		or := make(bson.A, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: pattern})
		}
		filter["$or"] = or
	}
	return filter
}

func addFacet(filter bson.M, field string, values []string) {
	clean := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			clean = append(clean, v)
		}
	}
	switch len(clean) {
	case 0:
	case 1:
		filter[field] = clean[0]
	default:
		filter[field] = bson.M{"$in": clean}
	}
}

func buildSort(sort string) bson.D {
	switch sort {
	case "rating_desc":
		return bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}}
	case "rating_asc":
		return bson.D{{Key: "rating", Value: 1}, {Key: "createdAt", Value: -1}}
	case "price_low":
		return bson.D{{Key: "price", Value: 1}, {Key: "createdAt", Value: -1}}
	case "price_high":
		return bson.D{{Key: "price", Value: -1}, {Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// versionFilter matches the document only if it is still at version.
// Documents written before versioning have no field and count as 0.
func versionFilter(id primitive.ObjectID, version int64) bson.M {
	if version == 0 {
		return bson.M{
			"_id": id,
			"$or": bson.A{
				bson.M{"version": int64(0)},
				bson.M{"version": bson.M{"$exists": false}},
			},
		}
	}
	return bson.M{"_id": id, "version": version}
}
