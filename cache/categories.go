package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const categoriesKey = "musicspot:categories"

// CategoryLister is the source of truth behind the cache
type CategoryLister interface {
	List(ctx context.Context) ([]models.Category, error)
}

// Categories is a read-through Redis cache of the category list.
// Redis failures are logged and served from the underlying lister.
type Categories struct {
	next   CategoryLister
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCategories(next CategoryLister, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *Categories {
	return &Categories{next: next, redis: client, ttl: ttl, logger: logger}
}

func (c *Categories) List(ctx context.Context) ([]models.Category, error) {
	raw, err := c.redis.Get(ctx, categoriesKey).Bytes()
	switch {
	case err == nil:
		var categories []models.Category
		if jsonErr := json.Unmarshal(raw, &categories); jsonErr == nil {
			return categories, nil
		}
		c.logger.Warn().Str("key", categoriesKey).Msg("discarding undecodable cached categories")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn().Err(err).Msg("category cache read failed")
	}

	categories, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		if err := c.redis.Set(ctx, categoriesKey, payload, c.ttl).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}
