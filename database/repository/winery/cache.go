package wineryRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"winetrail/models"
	"winetrail/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedCatalog is a Redis read-through cache in front of a WineryRepository.
// Single-winery reads are cached; listings always hit the store.
type CachedCatalog struct {
	inner  WineryRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCatalog wraps inner with a cache stored in client.
func NewCachedCatalog(inner WineryRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedCatalog {
	if ttl <= 0 {
		ttl = utils.DefaultCatalogCacheTTL
	}
	return &CachedCatalog{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(id string) string {
	return utils.CatalogCachePrefix + id
}

// GetByID serves from the cache and fills it on a miss. Cache errors only cost a store read.
func (c *CachedCatalog) GetByID(ctx context.Context, id string) (*models.Winery, error) {
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var w models.Winery
		if err := json.Unmarshal(data, &w); err == nil {
			return &w, nil
		}
		c.logger.Warn("dropping undecodable cached winery", zap.String("wineryID", id))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("catalog cache read failed", zap.String("wineryID", id), zap.Error(err))
	}

	w, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, *w)
	return w, nil
}

// GetMany answers what it can from the cache and loads the rest in one query.
func (c *CachedCatalog) GetMany(ctx context.Context, ids []string) ([]models.Winery, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}

	found := make(map[string]models.Winery, len(ids))
	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("catalog cache mget failed", zap.Error(err))
	}
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var w models.Winery
		if json.Unmarshal([]byte(s), &w) == nil {
			found[w.ID] = w
		}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		loaded, err := c.inner.GetMany(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, w := range loaded {
			found[w.ID] = w
			c.store(ctx, w)
		}
	}

	out := make([]models.Winery, 0, len(found))
	for _, id := range ids {
		if w, ok := found[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (c *CachedCatalog) List(ctx context.Context, page, limit int) ([]models.Winery, int64, error) {
	return c.inner.List(ctx, page, limit)
}

func (c *CachedCatalog) ListByOwner(ctx context.Context, ownerID string) ([]models.Winery, error) {
	return c.inner.ListByOwner(ctx, ownerID)
}

func (c *CachedCatalog) store(ctx context.Context, w models.Winery) {
	data, err := json.Marshal(w)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(w.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("wineryID", w.ID), zap.Error(err))
	}
}
