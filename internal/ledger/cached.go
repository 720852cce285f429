package ledger

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"ledgerviz/internal/cache"
	"ledgerviz/internal/core"
	applog "ledgerviz/internal/log"
)

const snapshotKey = "ledger"

// CachedReader keeps the last loaded ledger for a short TTL and collapses
// concurrent loads into one upstream call. Only the raw ledger is cached;
// buckets, cells and figures are always derived fresh.
type CachedReader struct {
	next  Reader
	cache *cache.LRUCache[core.Ledger]
	group singleflight.Group
}

var _ Reader = (*CachedReader)(nil)

func NewCachedReader(next Reader, ttl time.Duration) *CachedReader {
	return &CachedReader{
		next:  next,
		cache: cache.NewLRUCache[core.Ledger](1, ttl),
	}
}

func (r *CachedReader) Load(ctx context.Context) (core.Ledger, error) {
	if l, ok := r.cache.Get(snapshotKey); ok {
		return l, nil
	}
	v, err, shared := r.group.Do(snapshotKey, func() (any, error) {
		l, err := r.next.Load(ctx)
		if err != nil {
			return nil, err
		}
		r.cache.Set(snapshotKey, l)
		return l, nil
	})
	if err != nil {
		return nil, err
	}
	l := v.(core.Ledger)
	slog.DebugContext(ctx, "Ledger loaded",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldTransactions, len(l),
		"shared", shared)
	return l, nil
}

// Invalidate drops the snapshot so the next Load hits the source.
func (r *CachedReader) Invalidate() {
	r.cache.Delete(snapshotKey)
}

// Cleaner exposes the snapshot cache to a cache.Janitor.
func (r *CachedReader) Cleaner() cache.Cleaner {
	return r.cache
}
