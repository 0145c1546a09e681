package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"foodreview/internal/microservices/http-api/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

// TombstoneTTL is how long a deleted review stays negatively cached.
const TombstoneTTL = time.Minute

// ReviewCache caches single reviews keyed by id.
//
// Set never replaces an entry holding the same or a newer version, and never
// replaces a tombstone, so a reader that loaded an old copy cannot overwrite
// what a writer stored after committing. Get reports a tombstone as a hit
// with a nil review.
type ReviewCache interface {
	Get(ctx context.Context, id string) (*models.Review, bool)
	Set(ctx context.Context, review *models.Review)
	Tombstone(ctx context.Context, id string)
	Invalidate(ctx context.Context, id string)
}

type redisReviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReviewCache wraps an already connected client. A nil client
// yields a cache that never hits.
func NewRedisReviewCache(client *redis.Client, ttl time.Duration) ReviewCache {
	if client == nil {
		return NoopReviewCache{}
	}
	return &redisReviewCache{client: client, ttl: ttl}
}

func reviewKey(id string) string {
	return fmt.Sprintf("foodreview:review:%s", id)
}

// Each entry is a hash: v = version, doc = BSON document, gone = tombstone.
const (
	fieldDoc  = "doc"
	fieldGone = "gone"
)

// KEYS[1] entry; ARGV version, doc, ttl in ms
var setIfNewer = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], 'gone') == 1 then
	return 0
end
local cur = redis.call('HGET', KEYS[1], 'v')
if cur and tonumber(cur) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'doc', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

func (c *redisReviewCache) Get(ctx context.Context, id string) (*models.Review, bool) {
	fields, err := c.client.HGetAll(ctx, reviewKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("review_id", id).Msg("review cache read failed")
		}
		return nil, false
	}
	if len(fields) == 0 {
		return nil, false
	}
	if _, gone := fields[fieldGone]; gone {
		return nil, true
	}

	// stored as BSON so the document goes through the same normalization as Mongo reads
	review, err := decodeReview([]byte(fields[fieldDoc]))
	if err != nil {
		log.Warn().Err(err).Str("review_id", id).Msg("dropping undecodable cache entry")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return review, true
}

func (c *redisReviewCache) Set(ctx context.Context, review *models.Review) {
	id := review.ID.Hex()
	data, err := bson.Marshal(review)
	if err != nil {
		log.Warn().Err(err).Msg("encode review for cache")
		c.Invalidate(ctx, id)
		return
	}
	args := []any{strconv.FormatInt(review.Version, 10), data, c.ttl.Milliseconds()}
	if err := setIfNewer.Run(ctx, c.client, []string{reviewKey(id)}, args...).Err(); err != nil {
		log.Warn().Err(err).Str("review_id", id).Msg("review cache write failed")
		c.Invalidate(ctx, id)
	}
}

func (c *redisReviewCache) Tombstone(ctx context.Context, id string) {
	key := reviewKey(id)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldGone, 1)
		pipe.PExpire(ctx, key, TombstoneTTL)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("review_id", id).Msg("review cache tombstone failed")
	}
}

func (c *redisReviewCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, reviewKey(id)).Err(); err != nil {
		log.Warn().Err(err).Str("review_id", id).Msg("review cache invalidate failed")
	}
}

// NoopReviewCache is used when Redis is not configured and in tests.
type NoopReviewCache struct{}

func (NoopReviewCache) Get(context.Context, string) (*models.Review, bool) { return nil, false }
func (NoopReviewCache) Set(context.Context, *models.Review)               {}
func (NoopReviewCache) Tombstone(context.Context, string)                 {}
func (NoopReviewCache) Invalidate(context.Context, string)                {}
