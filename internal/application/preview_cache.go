package application

import (
	"strings"
	"sync"
	"time"

	"github.com/example/recurrence-preview/internal/recurrence"
)

// previewCache stores recently computed previews of stored configurations so
// repeated reads do not rerun the engine while the record is unchanged.
type previewCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]previewCacheEntry
}

type previewCacheEntry struct {
	preview   Preview
	expiresAt time.Time
}

func newPreviewCache(ttl time.Duration, maxEntries int, now func() time.Time) *previewCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	if now == nil {
		now = time.Now
	}
	return &previewCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]previewCacheEntry),
	}
}

func (c *previewCache) Get(key string) (Preview, bool) {
	if c == nil {
		return Preview{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Preview{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return Preview{}, false
	}
	return clonePreview(entry.preview), true
}

func (c *previewCache) Store(key string, preview Preview) {
	if c == nil {
		return
	}
	cloned := clonePreview(preview)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = previewCacheEntry{preview: cloned, expiresAt: expiry}
}

// Forget drops every entry computed for the configuration id.
func (c *previewCache) Forget(id string) {
	if c == nil {
		return
	}
	prefix := id + "|"
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Invalidate drops every entry.
func (c *previewCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]previewCacheEntry)
	c.mu.Unlock()
}

func (c *previewCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *previewCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// evictOneLocked drops the entry closest to expiry.
func (c *previewCache) evictOneLocked() {
	var (
		victim string
		oldest time.Time
	)
	for key, entry := range c.entries {
		if victim == "" || entry.expiresAt.Before(oldest) {
			victim, oldest = key, entry.expiresAt
		}
	}
	delete(c.entries, victim)
}

func clonePreview(preview Preview) Preview {
	if len(preview.Outputs) > 0 {
		outputs := make([]recurrence.Output, len(preview.Outputs))
		copy(outputs, preview.Outputs)
		preview.Outputs = outputs
	}
	return preview
}

// buildPreviewCacheKey keys a stored preview by record identity and version.
// The reference only takes part when the outputs depend on it.
func buildPreviewCacheKey(stored StoredConfiguration, reference time.Time) string {
	builder := strings.Builder{}
	builder.WriteString(stored.ID)
	builder.WriteString("|")
	builder.WriteString(stored.UpdatedAt.UTC().Format(time.RFC3339Nano))
	builder.WriteString("|")
	if dependsOnReference(&stored.Configuration) {
		builder.WriteString(reference.UTC().Format(time.RFC3339Nano))
	}
	return builder.String()
}

// dependsOnReference reports whether the outputs of cfg change with the
// reference date. Only disabled and once configurations read it.
func dependsOnReference(cfg *recurrence.Configuration) bool {
	return !cfg.Enabled || cfg.TimeType != recurrence.TimeTypeRecurring
}
