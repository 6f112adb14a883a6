package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResultKey(t *testing.T) {
	a := ResultKey("heuristic", "v1", "some text")
	b := ResultKey("heuristic", "v1", "some text")
	if a != b {
		t.Errorf("Expected stable key, got %s and %s", a, b)
	}
	if !strings.HasPrefix(a, "authorscope:v1:heuristic:") {
		t.Errorf("Unexpected key prefix: %s", a)
	}

	variants := []string{
		ResultKey("remote", "v1", "some text"),
		ResultKey("heuristic", "v2", "some text"),
		ResultKey("heuristic", "v1", "some text!"),
		// Field boundaries must not collide
		ResultKey("heuristic", "v1s", "ome text"),
	}
	for _, v := range variants {
		if v == a {
			t.Errorf("Expected distinct key, got collision %s", v)
		}
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss on empty cache")
	}
	if err := c.Set("k", []byte(`{"a":1}`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != `{"a":1}` {
		t.Errorf("Expected stored value, got %q (found=%v)", val, found)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
	_ = c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte(`1`), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("Expected entry to expire")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	key := ResultKey("heuristic", "fp", "text")
	if err := c.Set(key, []byte(`{"ai_probability":0.5}`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != `{"ai_probability":0.5}` {
		t.Errorf("Expected stored value, got %q (found=%v)", val, found)
	}

	files, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(files) != 0 {
		t.Errorf("Expected no leftover temp files, got %v", files)
	}
}

func TestDiskCache_RejectsNonJSON(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Set("k", []byte("not json"), 0); err == nil {
		t.Error("Expected error for non-JSON value")
	}
}

func TestDiskCache_Expired(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", []byte(`1`), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("Expected expired entry to be removed")
	}
}

func TestDiskCache_ClearKeepsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	_ = c.Set("a", []byte(`1`), 0)
	foreign := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(foreign, []byte("keep"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected entry removed by Clear")
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("Expected foreign file kept, got %v", err)
	}
	if err := c.Delete("a"); err != nil {
		t.Errorf("Expected deleting a missing entry to succeed, got %v", err)
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	// Written by an earlier process
	if err := NewDiskCache(dir, time.Hour).Set("k", []byte(`"v"`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := c.Get("k"); !found {
		t.Fatal("Expected disk hit")
	}
	if _, found := c.memory.Get("k"); !found {
		t.Error("Expected disk hit promoted to memory")
	}
	if _, found := c.Get("other"); found {
		t.Error("Expected miss")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %+v", stats)
	}
}
