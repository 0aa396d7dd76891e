package redisrepo

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/service/models/catalogitem"
	"github.com/shopspring/decimal"
)

type fakeCache struct {
	values  map[string]string
	getErr  error
	setErr  error
	setTTLs []time.Duration
}

func (c *fakeCache) GetMany(_ context.Context, keys []string) (map[string]string, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := map[string]string{}
	for _, k := range keys {
		if v, ok := c.values[k]; ok {
			out[k] = v
		}
	}

	return out, nil
}

func (c *fakeCache) SetMany(_ context.Context, values map[string]string, ttl time.Duration) error {
	c.setTTLs = append(c.setTTLs, ttl)
	if c.setErr != nil {
		return c.setErr
	}
	for k, v := range values {
		c.values[k] = v
	}

	return nil
}

type fakeCatalog struct {
	items map[int64]catalogitem.CatalogItem
	calls [][]int64
	err   error
}

func (c *fakeCatalog) ListByIDs(_ context.Context, ids []int64) ([]catalogitem.CatalogItem, error) {
	c.calls = append(c.calls, ids)
	if c.err != nil {
		return nil, c.err
	}
	var out []catalogitem.CatalogItem
	for _, id := range ids {
		if item, ok := c.items[id]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[int64]catalogitem.CatalogItem{
		1: {ID: 1, Name: "Widget", Price: decimal.RequireFromString("10.00")},
		2: {ID: 2, Name: "Gadget", Price: decimal.RequireFromString("2.50")},
	}}
}

func ids(items []catalogitem.CatalogItem) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	slices.Sort(out)

	return out
}

func TestListByIDs_ReadThrough(t *testing.T) {
	catalog := newCatalog()
	cache := &fakeCache{values: map[string]string{}}
	repo := NewCachedCatalogRepository(catalog, cache, time.Minute)

	items, err := repo.ListByIDs(context.Background(), []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(ids(items), []int64{1, 2}) {
		t.Fatalf("unexpected items: %+v", items)
	}
	if len(cache.values) != 2 || cache.setTTLs[0] != time.Minute {
		t.Fatalf("items not cached: %+v", cache)
	}

	items, err = repo.ListByIDs(context.Background(), []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.calls) != 1 {
		t.Fatalf("expected one backend call, got %v", catalog.calls)
	}
	if items[0].Name == "" || !items[0].Price.IsPositive() {
		t.Fatalf("cached item not decoded: %+v", items[0])
	}
}

func TestListByIDs_OnlyMissesHitBackend(t *testing.T) {
	catalog := newCatalog()
	cache := &fakeCache{values: map[string]string{
		key(1): `{"id":1,"name":"Widget","pictureUri":"","price":"10"}`,
	}}
	repo := NewCachedCatalogRepository(catalog, cache, time.Minute)

	items, err := repo.ListByIDs(context.Background(), []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(ids(items), []int64{1, 2}) {
		t.Fatalf("unexpected items: %+v", items)
	}
	if len(catalog.calls) != 1 || !slices.Equal(catalog.calls[0], []int64{2, 3}) {
		t.Fatalf("unexpected backend calls: %v", catalog.calls)
	}
}

func TestListByIDs_CacheFailuresFallThrough(t *testing.T) {
	catalog := newCatalog()
	cache := &fakeCache{values: map[string]string{}, getErr: errors.New("down"), setErr: errors.New("down")}
	repo := NewCachedCatalogRepository(catalog, cache, time.Minute)

	items, err := repo.ListByIDs(context.Background(), []int64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestListByIDs_BackendErrorPropagates(t *testing.T) {
	catalog := newCatalog()
	catalog.err = errors.New("db down")
	repo := NewCachedCatalogRepository(catalog, &fakeCache{values: map[string]string{}}, time.Minute)

	if _, err := repo.ListByIDs(context.Background(), []int64{1}); !errors.Is(err, catalog.err) {
		t.Fatalf("expected backend error, got %v", err)
	}
}
