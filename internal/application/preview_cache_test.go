package application

import (
	"testing"
	"time"

	"github.com/example/recurrence-preview/internal/recurrence"
)

func TestPreviewCacheStoresAndReturnsCopies(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	current := fixed
	cache := newPreviewCache(time.Minute, 4, func() time.Time { return current })

	original := Preview{Description: "daily", Outputs: []recurrence.Output{{OutputDate: fixed, Description: "daily"}}}
	cache.Store("key", original)

	// Mutating the original slice should not affect the cached copy.
	original.Outputs[0].Description = "mutated"

	cached, ok := cache.Get("key")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if cached.Outputs[0].Description != "daily" {
		t.Fatalf("expected cached output to remain unchanged, got %s", cached.Outputs[0].Description)
	}

	// Mutating the returned slice should not be visible on subsequent reads.
	cached.Outputs[0].Description = "changed"
	cachedAgain, ok := cache.Get("key")
	if !ok {
		t.Fatalf("expected cache hit on second read")
	}
	if cachedAgain.Outputs[0].Description != "daily" {
		t.Fatalf("expected cache to return independent copy, got %s", cachedAgain.Outputs[0].Description)
	}
}

func TestPreviewCacheExpiresEntries(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	current := fixed
	cache := newPreviewCache(time.Second, 4, func() time.Time { return current })

	cache.Store("key", Preview{Description: "x"})
	if _, ok := cache.Get("key"); !ok {
		t.Fatalf("expected cache hit before expiry")
	}

	current = current.Add(2 * time.Second)
	if _, ok := cache.Get("key"); ok {
		t.Fatalf("expected cache entry to expire")
	}
}

func TestPreviewCacheEvictsOldestWhenFull(t *testing.T) {
	current := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cache := newPreviewCache(time.Minute, 2, func() time.Time { return current })

	cache.Store("a", Preview{})
	current = current.Add(time.Second)
	cache.Store("b", Preview{})
	current = current.Add(time.Second)
	cache.Store("c", Preview{})

	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
	if _, ok := cache.Get("a"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if _, ok := cache.Get("c"); !ok {
		t.Fatalf("expected newest entry to be kept")
	}
}

func TestPreviewCacheForgetAndInvalidate(t *testing.T) {
	cache := newPreviewCache(time.Minute, 8, time.Now)
	cache.Store("cfg-1|v1|", Preview{})
	cache.Store("cfg-1|v2|", Preview{})
	cache.Store("cfg-10|v1|", Preview{})

	cache.Forget("cfg-1")
	if cache.Len() != 1 {
		t.Fatalf("expected only cfg-10 to remain, got %d entries", cache.Len())
	}
	if _, ok := cache.Get("cfg-10|v1|"); !ok {
		t.Fatalf("expected cfg-10 entry to survive Forget(cfg-1)")
	}

	cache.Invalidate()
	if cache.Len() != 0 {
		t.Fatalf("expected cache to be empty after invalidation")
	}
}

func TestBuildPreviewCacheKey(t *testing.T) {
	t.Parallel()

	updated := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	first := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	recurring := StoredConfiguration{ID: "cfg", UpdatedAt: updated, Configuration: recurrence.Configuration{Enabled: true, TimeType: recurrence.TimeTypeRecurring}}
	if buildPreviewCacheKey(recurring, first) != buildPreviewCacheKey(recurring, second) {
		t.Fatalf("expected recurring key to ignore the reference")
	}

	once := StoredConfiguration{ID: "cfg", UpdatedAt: updated, Configuration: recurrence.Configuration{Enabled: true}}
	if buildPreviewCacheKey(once, first) == buildPreviewCacheKey(once, second) {
		t.Fatalf("expected once key to depend on the reference")
	}

	bumped := recurring
	bumped.UpdatedAt = updated.Add(time.Second)
	if buildPreviewCacheKey(recurring, first) == buildPreviewCacheKey(bumped, first) {
		t.Fatalf("expected key to change with UpdatedAt")
	}
}
