package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "group-table", nil
	}

	const workers = 32
	var started, wg sync.WaitGroup
	started.Add(workers)
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			started.Done()
			v, err := store.GetOrLoad(context.Background(), "standings:group-a", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "group-table" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("db down")
		}
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if v.(int) != 7 {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(30 * time.Second)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "tournament:cup", "cached")
	if _, ok := store.Get(context.Background(), "tournament:cup"); !ok {
		t.Fatalf("expected fresh entry to be served")
	}

	now = now.Add(31 * time.Second)
	if _, ok := store.Get(context.Background(), "tournament:cup"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "groups:cup:list", 1)
	store.Set(ctx, "groups:cup:A", 2)
	store.Set(ctx, "groups:other:list", 3)

	store.DeletePrefix(ctx, "groups:cup:")
	if _, ok := store.Get(ctx, "groups:cup:A"); ok {
		t.Fatalf("expected prefixed key to be deleted")
	}
	if _, ok := store.Get(ctx, "groups:other:list"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}

	store.Delete(ctx, "groups:other:list")
	if store.Len() != 0 {
		t.Fatalf("expected empty store, len=%d", store.Len())
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
