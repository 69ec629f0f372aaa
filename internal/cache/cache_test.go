package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	key := Key("https://example.org/ult/psa.html")

	if !strings.HasPrefix(key, "tnw:v1:") {
		t.Errorf("Expected versioned key prefix, got %q", key)
	}
	if key != Key("https://example.org/ult/psa.html") {
		t.Error("Expected key generation to be deterministic")
	}
	if key == Key("https://example.org/ust/psa.html") {
		t.Error("Expected different URLs to produce different keys")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	val, found := c.Get("k")
	if !found {
		t.Fatal("Expected to find cached value")
	}
	if !bytes.Equal(val, []byte("v")) {
		t.Errorf("Expected 'v', got %q", val)
	}

	if _, found := c.Get("absent"); found {
		t.Error("Expected miss for absent key")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set(Key("https://example.org/a"), []byte("body"), time.Hour); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	val, found := c.Get(Key("https://example.org/a"))
	if !found {
		t.Fatal("Expected to find cached value")
	}
	if !bytes.Equal(val, []byte("body")) {
		t.Errorf("Expected 'body', got %q", val)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestDiskCache_ZeroTTLPinsForever(t *testing.T) {
	// A zero default TTL and a zero per-call TTL produce an entry with no
	// expiry at all. The pinned headword index relies on this.
	c := NewDiskCache(t.TempDir(), 0)

	if err := c.Set("pinned", []byte("v"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, found := c.Get("pinned"); !found {
		t.Error("Expected pinned entry to be readable")
	}
}

func TestDiskCache_Delete(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	_ = c.Set("k", []byte("v"), time.Hour)
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected deleted entry to miss")
	}
}

func TestLayeredCache_SurvivesMemoryLoss(t *testing.T) {
	dir := t.TempDir()

	first := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := first.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A fresh instance has an empty memory layer; the read must come from
	// disk and be promoted.
	second := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := second.Get("k")
	if !found {
		t.Fatal("Expected disk hit through a fresh layered cache")
	}
	if !bytes.Equal(val, []byte("v")) {
		t.Errorf("Expected 'v', got %q", val)
	}

	// Promoted: a second read hits memory.
	if _, found := second.Get("k"); !found {
		t.Error("Expected promoted entry to remain readable")
	}
}

func TestLayeredCache_Clear(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)

	_ = c.Set("k", []byte("v"), time.Hour)
	if err := c.Clear(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected cleared cache to miss")
	}
}
