// Package dedupe keeps a double-clicked or resubmitted form from producing
// two spreadsheet rows.
package dedupe

import (
	"context"
	"sync"
	"time"
)

// Guard admits a key once per TTL.
type Guard interface {
	// FirstSeen records key and reports whether it was new.
	FirstSeen(ctx context.Context, key string) (bool, error)
	// Forget drops key so the next FirstSeen admits it again.
	Forget(ctx context.Context, key string) error
}

// MemoryGuard is a process-local Guard.
type MemoryGuard struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

// NewMemoryGuard returns a Guard backed by a map.
func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{ttl: ttl, now: time.Now, seen: map[string]time.Time{}}
}

func (g *MemoryGuard) FirstSeen(_ context.Context, key string) (bool, error) {
	now := g.now()
	g.mu.Lock()
	defer g.mu.Unlock()

	for k, exp := range g.seen {
		if !now.Before(exp) {
			delete(g.seen, k)
		}
	}
	if _, ok := g.seen[key]; ok {
		return false, nil
	}
	g.seen[key] = now.Add(g.ttl)
	return true, nil
}

func (g *MemoryGuard) Forget(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, key)
	return nil
}
