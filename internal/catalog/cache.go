package catalog

import (
	"context"
	"strings"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// entry is a memoized query result with its wall-clock expiry.
type entry struct {
	value     any
	expiresAt time.Time
}

// Cached decorates a Catalog with TTL memoization. Keys are the full
// argument tuple plus a per-query tag, so concurrent requests with
// different arguments never collide. Entries expire purely by TTL; there is
// no explicit invalidation and no single-flight coalescing. Two concurrent
// misses for the same key both query the database, which is harmless since
// the queries are read-only and idempotent.
//
// The cache is a performance optimization only. Results may be up to TTL
// stale relative to the underlying catalog; that staleness is accepted
// behavior, not something callers may rely on for correctness.
type Cached struct {
	inner   Catalog
	ttl     time.Duration
	entries cmap.ConcurrentMap[string, entry]
	now     func() time.Time
}

// NewCached wraps inner with a TTL cache.
func NewCached(inner Catalog, ttl time.Duration) *Cached {
	return &Cached{
		inner:   inner,
		ttl:     ttl,
		entries: cmap.New[entry](),
		now:     time.Now,
	}
}

// ListTables returns the cached table list for schema, querying through on
// a miss or after expiry.
func (c *Cached) ListTables(ctx context.Context, schema string) ([]string, error) {
	key := "tables\x1f" + schema
	if v, ok := c.lookup(key); ok {
		return v.([]string), nil
	}

	tables, err := c.inner.ListTables(ctx, schema)
	if err != nil {
		return nil, err
	}
	c.put(key, tables)
	return tables, nil
}

// FetchCatalog returns the cached row set for (schema, tables), querying
// through on a miss or after expiry. Within the TTL window, repeated calls
// with identical arguments return the identical result even if the
// underlying catalog changed in between.
func (c *Cached) FetchCatalog(ctx context.Context, schema string, tables []string) ([]Row, error) {
	key := "catalog\x1f" + schema + "\x1f" + strings.Join(tables, "\x1f")
	if v, ok := c.lookup(key); ok {
		return v.([]Row), nil
	}

	rows, err := c.inner.FetchCatalog(ctx, schema, tables)
	if err != nil {
		return nil, err
	}
	c.put(key, rows)
	return rows, nil
}

func (c *Cached) lookup(key string) (any, bool) {
	e, ok := c.entries.Get(key)
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *Cached) put(key string, value any) {
	c.entries.Set(key, entry{value: value, expiresAt: c.now().Add(c.ttl)})
}

// Ensure Cached implements the Catalog interface.
var _ Catalog = (*Cached)(nil)
