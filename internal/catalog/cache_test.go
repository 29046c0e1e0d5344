package catalog

import (
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache[string](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("key", "value")

	if v, ok := c.Get("key"); !ok || v != "value" {
		t.Fatalf("fresh entry not returned: %q %v", v, ok)
	}

	now = now.Add(59 * time.Second)
	if _, ok := c.Get("key"); !ok {
		t.Errorf("entry expired before its TTL")
	}

	now = now.Add(2 * time.Second)
	if _, ok := c.Get("key"); ok {
		t.Errorf("entry survived past its TTL")
	}
}

func TestTTLCacheMissAndRemove(t *testing.T) {
	c := NewTTLCache[int](time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Errorf("unexpected hit for absent key")
	}

	c.Set("n", 42)
	c.Remove("n")
	if _, ok := c.Get("n"); ok {
		t.Errorf("removed entry still present")
	}
}

func TestTTLCacheCachesNilValues(t *testing.T) {
	c := NewTTLCache[*int](time.Minute)

	c.Set("miss", nil)
	v, ok := c.Get("miss")
	if !ok {
		t.Fatalf("nil value should still count as a cached entry")
	}
	if v != nil {
		t.Errorf("expected nil value, got %v", v)
	}
}
