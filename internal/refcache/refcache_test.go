package refcache

import (
	"context"
	"errors"
	"testing"
	"time"
)

// countingFetch returns a fetch func that counts its calls.
func countingFetch(entries []string, calls *int) FetchFunc[string] {
	return func(ctx context.Context) ([]string, error) {
		*calls++
		return entries, nil
	}
}

func TestGetAllCachesWithinTTL(t *testing.T) {
	calls := 0
	cache := New(5*time.Minute, countingFetch([]string{"a", "b"}, &calls))
	ctx := context.Background()

	first, err := cache.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	second, err := cache.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected exactly 1 fetch, got %d", calls)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("expected 2 entries from both calls, got %d and %d", len(first), len(second))
	}
}

func TestGetAllRefetchesAfterTTL(t *testing.T) {
	calls := 0
	cache := New(5*time.Minute, countingFetch([]string{"a"}, &calls))
	ctx := context.Background()

	now := time.Now()
	cache.now = func() time.Time { return now }

	cache.GetAll(ctx)
	now = now.Add(6 * time.Minute)
	cache.GetAll(ctx)

	if calls != 2 {
		t.Errorf("expected 2 fetches after TTL expiry, got %d", calls)
	}
}

func TestNoTTLNeverExpires(t *testing.T) {
	calls := 0
	cache := New(0, countingFetch([]string{"a"}, &calls))
	ctx := context.Background()

	now := time.Now()
	cache.now = func() time.Time { return now }

	cache.GetAll(ctx)
	now = now.Add(24 * time.Hour)
	cache.GetAll(ctx)

	if calls != 1 {
		t.Errorf("expected 1 fetch with manual-only invalidation, got %d", calls)
	}
}

func TestInvalidateForcesFreshFetch(t *testing.T) {
	calls := 0
	cache := New(5*time.Minute, countingFetch([]string{"a"}, &calls))
	ctx := context.Background()

	cache.GetAll(ctx)
	cache.Invalidate()
	cache.GetAll(ctx)

	if calls != 2 {
		t.Errorf("expected fresh fetch after invalidate, got %d fetches", calls)
	}
}

func TestEmptyCollectionIsStillCached(t *testing.T) {
	calls := 0
	cache := New(5*time.Minute, countingFetch(nil, &calls))
	ctx := context.Background()

	cache.GetAll(ctx)
	cache.GetAll(ctx)

	if calls != 1 {
		t.Errorf("expected an empty result to be cached, got %d fetches", calls)
	}
}

func TestFetchErrorNotCached(t *testing.T) {
	calls := 0
	fail := true
	cache := New(5*time.Minute, func(ctx context.Context) ([]string, error) {
		calls++
		if fail {
			return nil, errors.New("store down")
		}
		return []string{"a"}, nil
	})
	ctx := context.Background()

	if _, err := cache.GetAll(ctx); err == nil {
		t.Fatal("expected fetch error")
	}

	fail = false
	entries, err := cache.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after recovery, got %d", len(entries))
	}
	if calls != 2 {
		t.Errorf("expected 2 fetches, got %d", calls)
	}
}

func TestGetFiltered(t *testing.T) {
	calls := 0
	cache := New(5*time.Minute, countingFetch([]string{"apple", "pear", "avocado"}, &calls))
	ctx := context.Background()

	filtered, err := cache.GetFiltered(ctx, func(s string) bool { return s[0] == 'a' })
	if err != nil {
		t.Fatalf("GetFiltered: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("expected 2 matches, got %d", len(filtered))
	}
	if calls != 1 {
		t.Errorf("expected filtering in memory with 1 fetch, got %d", calls)
	}
}
