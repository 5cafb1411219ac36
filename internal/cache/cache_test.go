package cache

import (
	"testing"
	"time"

	"github.com/yash-makwana/ipo/internal/model"
)

func TestKey(t *testing.T) {
	content := []byte("document body")

	k1 := Key(content, "abc123")
	k2 := Key(content, "abc123")
	if k1 != k2 {
		t.Error("expected deterministic keys for identical input")
	}

	if Key(content, "other") == k1 {
		t.Error("expected a changed ontology fingerprint to change the key")
	}
	if Key([]byte("different body"), "abc123") == k1 {
		t.Error("expected changed content to change the key")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected a miss for an unknown key")
	}

	if err := c.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("key")
	if !found || string(val) != "value" {
		t.Errorf("expected a hit with the stored value, got %q found=%v", val, found)
	}

	if err := c.Delete("key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("expected a miss after delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("key")
	if !found || string(val) != "value" {
		t.Errorf("expected a hit with the stored value, got %q found=%v", val, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get("key"); found {
		t.Error("expected an expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	// Seed only the disk layer, as if left by a previous process
	if err := c.disk.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("disk Set failed: %v", err)
	}

	val, found := c.Get("key")
	if !found || string(val) != "value" {
		t.Fatalf("expected a disk hit, got %q found=%v", val, found)
	}

	// The hit should now be served from memory
	if _, found := c.memory.Get("key"); !found {
		t.Error("expected the disk hit promoted into memory")
	}
}

func TestReportStore_RoundTrip(t *testing.T) {
	store := NewReportStore(NewMemoryCache(time.Minute, time.Minute), time.Minute)

	content := []byte("document body")
	fingerprint := "abc123"

	if _, found := store.Get(content, fingerprint); found {
		t.Error("expected a miss before Put")
	}

	report := &model.Report{
		Subject:   "acme-drhp",
		PageCount: 12,
		Detection: model.DetectionReport{
			Triggered: []model.Kind{model.KindSuperlativeClaimsSource},
			Emitted: []model.EmittedQuestion{
				{Kind: model.KindSuperlativeClaimsSource, Question: "What is the source?"},
			},
		},
	}
	if err := store.Put(content, fingerprint, report); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, found := store.Get(content, fingerprint)
	if !found {
		t.Fatal("expected a hit after Put")
	}
	if got.Subject != "acme-drhp" || got.PageCount != 12 {
		t.Errorf("unexpected report: %+v", got)
	}
	if len(got.Detection.Emitted) != 1 || got.Detection.Emitted[0].Question != "What is the source?" {
		t.Errorf("unexpected detection payload: %+v", got.Detection)
	}

	// A different ontology fingerprint must miss
	if _, found := store.Get(content, "other"); found {
		t.Error("expected a changed fingerprint to invalidate the entry")
	}
}

func TestReportStore_CorruptEntryIsMiss(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	store := NewReportStore(c, time.Minute)

	content := []byte("document body")
	if err := c.Set(Key(content, "fp"), []byte("not json"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := store.Get(content, "fp"); found {
		t.Error("expected a corrupt entry to be treated as a miss")
	}
}
