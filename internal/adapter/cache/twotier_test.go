package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func newTestCache(t *testing.T) (*TwoTier, string) {
	t.Helper()
	dir := t.TempDir()
	disk, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	c := NewTwoTier(NewMemory(16, 0), disk)
	t.Cleanup(func() { c.Close() })
	return c, dir
}

func TestTwoTierPutGet(t *testing.T) {
	c, _ := newTestCache(t)

	c.Put("some note text", []float32{0.1, 0.2, 0.3})

	vec, ok := c.Get("some note text")
	if !ok {
		t.Fatal("expected hit after put")
	}
	if len(vec) != 3 || vec[1] != 0.2 {
		t.Errorf("unexpected vector: %v", vec)
	}
}

func TestTwoTierNormalizedKeySharing(t *testing.T) {
	c, _ := newTestCache(t)

	c.Put("hello   world", []float32{1})

	if _, ok := c.Get("  hello world  "); !ok {
		t.Error("texts with identical normalized form should share one entry")
	}
}

func TestTwoTierDiskPromotion(t *testing.T) {
	c, _ := newTestCache(t)

	c.Put("persisted text", []float32{1, 2})
	c.Flush()
	c.memory.Clear() // simulate memory-tier eviction

	vec, ok := c.Get("persisted text")
	if !ok {
		t.Fatal("expected disk hit after memory clear")
	}
	if vec[0] != 1 || vec[1] != 2 {
		t.Errorf("unexpected vector: %v", vec)
	}
	if c.memory.Len() != 1 {
		t.Error("disk hit should be promoted into the memory tier")
	}
}

func TestTwoTierPersistedLayout(t *testing.T) {
	c, dir := newTestCache(t)

	c.Put("layout check", []float32{0.5, -0.5})
	c.Flush()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one cache file, got %d", len(entries))
	}

	name := entries[0].Name()
	if raw, err := hex.DecodeString(name); err != nil || len(raw) != 32 {
		t.Errorf("filename is not a hex sha256 hash: %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		t.Fatalf("file content is not a JSON numeric array: %v", err)
	}
	if len(vector) != 2 || vector[0] != 0.5 {
		t.Errorf("unexpected persisted vector: %v", vector)
	}
}

func TestTwoTierEventualPersistence(t *testing.T) {
	c, dir := newTestCache(t)

	// The write-back is asynchronous: immediately after Put the entry may
	// not be durable yet, but after Flush it must be.
	c.Put("eventually durable", []float32{1})
	c.Flush()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected entry on disk after flush, found %d files", len(entries))
	}
}

func TestTwoTierClear(t *testing.T) {
	c, dir := newTestCache(t)

	c.Put("first", []float32{1})
	c.Put("second", []float32{2})
	c.Flush()

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}

	if c.Len() != 0 {
		t.Errorf("memory tier not empty after clear: %d", c.Len())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache directory should be recreated after clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("persistent tier not empty after clear: %d files", len(entries))
	}
	if _, ok := c.Get("first"); ok {
		t.Error("expected miss after clear")
	}

	// The cleared cache must remain usable.
	c.Put("after clear", []float32{3})
	if _, ok := c.Get("after clear"); !ok {
		t.Error("cache unusable after clear")
	}
}

func TestTwoTierCacheDegradesWithoutDisk(t *testing.T) {
	dir := t.TempDir()
	disk, err := NewFileStore(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	c := NewTwoTier(NewMemory(16, 0), disk)
	defer c.Close()

	// Remove the directory out from under the store: writes start failing,
	// but the memory tier keeps serving.
	os.RemoveAll(filepath.Join(dir, "cache"))

	c.Put("degraded", []float32{1})
	if _, ok := c.Get("degraded"); !ok {
		t.Error("memory tier should serve entries despite persistent-tier failure")
	}
}
