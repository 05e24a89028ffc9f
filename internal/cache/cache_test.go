package cache

import (
	"testing"
	"time"
)

func TestEntityCacheGetSet(t *testing.T) {
	c := NewEntityCache(time.Minute)

	if _, found := c.Get("court", "sdny"); found {
		t.Error("expected miss on empty cache")
	}

	c.Set("court", "sdny", 42)
	id, found := c.Get("court", "sdny")
	if !found {
		t.Fatal("expected hit after Set")
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}

	// Kinds are separate namespaces
	if _, found := c.Get("judge", "sdny"); found {
		t.Error("expected miss for same name under a different kind")
	}
}

func TestEntityCacheStats(t *testing.T) {
	c := NewEntityCache(time.Minute)

	c.Set("party", "acme corp", 7)
	c.Get("party", "acme corp")
	c.Get("party", "unknown")

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("misses = %d, want 1", stats.Misses)
	}
	if stats.Size != 1 {
		t.Errorf("size = %d, want 1", stats.Size)
	}
	if stats.LastAccess.IsZero() {
		t.Error("last_access not stamped")
	}
}

func TestEntityCacheClear(t *testing.T) {
	c := NewEntityCache(time.Minute)

	c.Set("court", "sdny", 1)
	c.Get("court", "sdny")
	c.Clear()

	if _, found := c.Get("court", "sdny"); found {
		t.Error("expected miss after Clear")
	}
	stats := c.Stats()
	if stats.Hits != 0 || stats.Size != 0 {
		t.Errorf("stats not reset: %+v", stats)
	}
}
