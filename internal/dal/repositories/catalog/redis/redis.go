package redisrepo

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/dal/interfaces/icatalogrepo"
	"github.com/corray333/backend-labs/checkout/internal/service/models/catalogitem"
)

const keyPrefix = "checkout:catalog:"

// cache is the key/value store the repository reads through.
type cache interface {
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
	SetMany(ctx context.Context, values map[string]string, ttl time.Duration) error
}

// CachedCatalogRepository serves catalog lookups from a cache and falls back
// to the wrapped repository for misses. Cache failures only cost a round trip.
type CachedCatalogRepository struct {
	next  icatalogrepo.ICatalogRepository
	cache cache
	ttl   time.Duration
}

// NewCachedCatalogRepository wraps next with a read-through cache.
func NewCachedCatalogRepository(next icatalogrepo.ICatalogRepository, cache cache, ttl time.Duration) *CachedCatalogRepository {
	return &CachedCatalogRepository{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

// ListByIDs returns the catalog items with the given ids.
func (r *CachedCatalogRepository) ListByIDs(ctx context.Context, ids []int64) ([]catalogitem.CatalogItem, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}

	cached, err := r.cache.GetMany(ctx, keys)
	if err != nil {
		slog.WarnContext(ctx, "Catalog cache read failed", "error", err)
		cached = nil
	}

	result := make([]catalogitem.CatalogItem, 0, len(ids))
	var missing []int64
	for i, id := range ids {
		raw, ok := cached[keys[i]]
		if !ok {
			missing = append(missing, id)

			continue
		}

		var item catalogitem.CatalogItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			slog.WarnContext(ctx, "Dropping malformed catalog cache entry", "key", keys[i], "error", err)
			missing = append(missing, id)

			continue
		}
		result = append(result, item)
	}

	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := r.next.ListByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	result = append(result, loaded...)

	toCache := make(map[string]string, len(loaded))
	for _, item := range loaded {
		data, err := json.Marshal(item)
		if err != nil {
			continue
		}
		toCache[key(item.ID)] = string(data)
	}
	if err := r.cache.SetMany(ctx, toCache, r.ttl); err != nil {
		slog.WarnContext(ctx, "Catalog cache write failed", "error", err)
	}

	return result, nil
}

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}
