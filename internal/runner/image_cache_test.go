package runner

import (
	"errors"
	"testing"
)

func TestImageCacheEvictsLeastRecentlyUsed(t *testing.T) {
	reads := map[string]int{}
	cache, err := newImageCache(2, func(path string) ([]byte, error) {
		reads[path]++
		return []byte(path), nil
	})
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	for _, path := range []string{"a", "b", "a", "c", "a", "b"} {
		data, err := cache.Load(path)
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		if string(data) != path {
			t.Fatalf("unexpected data for %s: %q", path, data)
		}
	}
	if reads["a"] != 1 || reads["b"] != 2 || reads["c"] != 1 {
		t.Fatalf("unexpected reads: %v", reads)
	}
}

func TestImageCacheDoesNotCacheErrors(t *testing.T) {
	calls := 0
	cache, err := newImageCache(1, func(path string) ([]byte, error) {
		calls++
		return nil, errors.New("missing")
	})
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := cache.Load("x"); err == nil {
			t.Fatalf("expected error")
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 reads, got %d", calls)
	}
}
