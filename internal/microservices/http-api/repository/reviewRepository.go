package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodreview/internal/microservices/http-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReviewsCollection = "foodreviews"

// ErrVersionConflict means the document changed between read and write.
var ErrVersionConflict = errors.New("review was modified concurrently")

// ReviewRepository defines the persistence operations for reviews.
// Every mutation is a whole-document replace guarded by the review's Version.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Replace(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ReviewFilter) ([]models.Review, int64, error)
	Stats(ctx context.Context, since time.Time) (*ReviewStats, error)
	ListReports(ctx context.Context, page, pageSize int) ([]ReportEntry, int64, error)
}

// ReviewStats feeds the admin dashboard.
type ReviewStats struct {
	TotalReviews   int64 `json:"totalReviews"`
	RemovedReviews int64 `json:"removedReviews"`
	TotalReports   int64 `json:"totalReports"`
	TodayReviews   int64 `json:"todayReviews"`
}

// ReportEntry is one report flattened together with its review.
type ReportEntry struct {
	ReviewID     primitive.ObjectID `json:"reviewId" bson:"reviewId"`
	Title        string             `json:"title" bson:"title"`
	AuthorName   string             `json:"authorName,omitempty" bson:"authorName,omitempty"`
	Report       models.Report      `json:"report" bson:"report"`
	ReportsCount int                `json:"reportsCount" bson:"reportsCount"`
	IsRemoved    bool               `json:"isRemoved" bson:"isRemoved"`
}

type mongoReviewRepository struct {
	coll *mongo.Collection
}

// NewReviewRepository creates a MongoDB implementation of ReviewRepository.
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &mongoReviewRepository{coll: db.Collection(ReviewsCollection)}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// malformed ids can never match a stored review
		return primitive.NilObjectID, models.ErrReviewNotFound
	}
	return oid, nil
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	review.Version = 0
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *mongoReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	raw, err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review %s: %w", id, err)
	}
	return decodeReview(raw)
}

// Replace writes review if the stored copy is still at review.Version.
// On success review.Version is advanced to the stored value.
func (r *mongoReviewRepository) Replace(ctx context.Context, review *models.Review) error {
	expected := review.Version
	next := review.Clone()
	next.Version = expected + 1

	res, err := r.coll.ReplaceOne(ctx, versionFilter(review.ID, expected), next)
	if err != nil {
		return fmt.Errorf("replace review %s: %w", review.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": review.ID})
		if err != nil {
			return fmt.Errorf("replace review %s: %w", review.ID.Hex(), err)
		}
		if n == 0 {
			return models.ErrReviewNotFound
		}
		return ErrVersionConflict
	}
	review.Version = next.Version
	return nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

func (r *mongoReviewRepository) List(ctx context.Context, f ReviewFilter) ([]models.Review, int64, error) {
	f.Normalize()
	filter := buildListFilter(f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(buildSort(f.Sort)).
		SetSkip(int64((f.Page - 1) * f.PageSize)).
		SetLimit(int64(f.PageSize))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find reviews: %w", err)
	}
	defer cur.Close(ctx)

	reviews := make([]models.Review, 0, f.PageSize)
	for cur.Next(ctx) {
		review, err := decodeReview(cur.Current)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, *review)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *mongoReviewRepository) Stats(ctx context.Context, since time.Time) (*ReviewStats, error) {
	var (
		stats ReviewStats
		err   error
	)
	active := bson.M{"isRemoved": bson.M{"$ne": true}}

	if stats.TotalReviews, err = r.coll.CountDocuments(ctx, active); err != nil {
		return nil, fmt.Errorf("count active reviews: %w", err)
	}
	if stats.RemovedReviews, err = r.coll.CountDocuments(ctx, bson.M{"isRemoved": true}); err != nil {
		return nil, fmt.Errorf("count removed reviews: %w", err)
	}
	if stats.TodayReviews, err = r.coll.CountDocuments(ctx, bson.M{
		"isRemoved": bson.M{"$ne": true},
		"createdAt": bson.M{"$gte": since},
	}); err != nil {
		return nil, fmt.Errorf("count today's reviews: %w", err)
	}
	if stats.TotalReports, err = r.countReports(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

func reportsPipelineHead() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"reports.0": bson.M{"$exists": true}}}},
		{{Key: "$addFields", Value: bson.M{"reportsCount": bson.M{"$size": "$reports"}}}},
		{{Key: "$unwind", Value: "$reports"}},
	}
}

func (r *mongoReviewRepository) countReports(ctx context.Context) (int64, error) {
	pipeline := append(reportsPipelineHead(), bson.D{{Key: "$count", Value: "total"}})
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	defer cur.Close(ctx)

	var out []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

// ListReports returns every report across all reviews, newest first.
func (r *mongoReviewRepository) ListReports(ctx context.Context, page, pageSize int) ([]ReportEntry, int64, error) {
	f := ReviewFilter{Page: page, PageSize: pageSize}
	f.Normalize()

	total, err := r.countReports(ctx)
	if err != nil {
		return nil, 0, err
	}

	pipeline := append(reportsPipelineHead(),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "reports.createdAt", Value: -1}}}},
		bson.D{{Key: "$skip", Value: int64((f.Page - 1) * f.PageSize)}},
		bson.D{{Key: "$limit", Value: int64(f.PageSize)}},
		bson.D{{Key: "$project", Value: bson.M{
			"reviewId":     "$_id",
			"title":        1,
			"authorName":   1,
			"report":       "$reports",
			"reportsCount": 1,
			"isRemoved":    1,
		}}},
	)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(ctx)

	entries := []ReportEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("decode reports: %w", err)
	}
	return entries, total, nil
}

// EnsureReviewIndexes creates the indexes the listing and moderation queries use.
func EnsureReviewIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ReviewsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "isRemoved", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "cuisine", Value: 1}}},
		{Keys: bson.D{{Key: "area", Value: 1}}},
		{Keys: bson.D{{Key: "diningStyle", Value: 1}}},
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create review indexes: %w", err)
	}
	return nil
}
