package events

import (
	"context"
	"sync"
	"time"
)

// DedupeProvider reports whether a key is seen for the first time.
// Deduplicate returns false when the key was already seen within the ttl.
type DedupeProvider interface {
	Deduplicate(ctx context.Context, key string, ttl time.Duration) bool
	Release(ctx context.Context, key string)
}

type noopDedupeProvider struct{}

// NewNoopDedupeProvider returns a provider that lets every key through.
func NewNoopDedupeProvider() DedupeProvider {
	return noopDedupeProvider{}
}

func (noopDedupeProvider) Deduplicate(context.Context, string, time.Duration) bool {
	return true
}

func (noopDedupeProvider) Release(context.Context, string) {}

// InMemoryDedupeProvider tracks keys and when they expire. Expired keys are
// only removed by Cleanup, which the owner should call periodically.
type InMemoryDedupeProvider struct {
	keys map[string]time.Time
	now  func() time.Time
	mu   sync.Mutex
}

func NewInMemoryDedupeProvider() *InMemoryDedupeProvider {
	return &InMemoryDedupeProvider{
		keys: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (d *InMemoryDedupeProvider) Deduplicate(_ context.Context, key string, ttl time.Duration) bool {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if expiration, ok := d.keys[key]; ok && expiration.After(now) {
		return false
	}

	d.keys[key] = now.Add(ttl)

	return true
}

func (d *InMemoryDedupeProvider) Release(_ context.Context, key string) {
	d.mu.Lock()
	delete(d.keys, key)
	d.mu.Unlock()
}

// Cleanup removes expired keys and returns how many were removed.
func (d *InMemoryDedupeProvider) Cleanup() int {
	now := d.now()
	removed := 0

	d.mu.Lock()
	for key, expiration := range d.keys {
		if !expiration.After(now) {
			delete(d.keys, key)
			removed++
		}
	}
	d.mu.Unlock()

	return removed
}

// Len returns how many keys are tracked, including expired keys not yet cleaned up.
func (d *InMemoryDedupeProvider) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.keys)
}
