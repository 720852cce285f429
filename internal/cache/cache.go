// Package cache holds short-lived ledger snapshots between render passes.
package cache

import (
	"context"
	"log/slog"
	"time"

	applog "ledgerviz/internal/log"
)

// Cache is the minimal keyed store used by readers.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Janitor periodically sweeps registered caches until Stop is called.
type Janitor struct {
	caches []Cleaner
	stop   chan struct{}
	done   chan struct{}
}

func NewJanitor(caches ...Cleaner) *Janitor {
	return &Janitor{
		caches: caches,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (j *Janitor) Start(ctx context.Context, interval time.Duration) {
	go j.run(ctx, interval)
}

func (j *Janitor) run(ctx context.Context, interval time.Duration) {
	defer close(j.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cleaned := 0
			for _, c := range j.caches {
				cleaned += c.CleanExpired()
			}
			if cleaned > 0 {
				slog.DebugContext(ctx, "Expired cache entries removed",
					applog.FieldComponent, applog.ComponentCache,
					"removed", cleaned)
			}
		case <-j.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends the sweep loop and waits for it to exit. Safe to call once.
func (j *Janitor) Stop() {
	close(j.stop)
	<-j.done
}
