package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

type cachedValue struct {
	Name string `json:"name"`
}

func TestCacheHelper_SetGetDelete(t *testing.T) {
	client := newTestClient(t)
	helper := NewCacheHelper(client, "student:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", &cachedValue{Name: "Asha"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got cachedValue
	if err := helper.Get(ctx, "id:1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Asha" {
		t.Errorf("Name = %q, want Asha", got.Name)
	}

	if err := helper.Delete(ctx, "id:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := helper.Get(ctx, "id:1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	client := newTestClient(t)
	helper := NewCacheHelper(client, "student:")
	ctx := context.Background()

	for _, key := range []string{"list:all", "list:class:5", "id:1"} {
		if err := helper.Set(ctx, key, &cachedValue{Name: key}, time.Minute); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	var got cachedValue
	if err := helper.Get(ctx, "list:all", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("list:all should be gone, got %v", err)
	}
	if err := helper.Get(ctx, "id:1", &got); err != nil {
		t.Errorf("id:1 should survive, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	client := newTestClient(t)
	helper := NewCacheHelper(client, "news:")
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return &cachedValue{Name: "fresh"}, nil
	}

	var got cachedValue
	if err := helper.CacheOrExecute(ctx, "list:active", &got, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if got.Name != "fresh" || calls != 1 {
		t.Errorf("first call: got %q after %d fetches", got.Name, calls)
	}

	// The async set needs a moment to land before the second read.
	deadline := time.Now().Add(time.Second)
	for {
		if exists, _ := helper.Exists(ctx, "list:active"); exists || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	var second cachedValue
	if err := helper.CacheOrExecute(ctx, "list:active", &second, time.Minute, fetch); err != nil {
		t.Fatalf("second CacheOrExecute() error = %v", err)
	}
	if second.Name != "fresh" {
		t.Errorf("second read = %q, want fresh", second.Name)
	}
	if calls != 1 {
		t.Errorf("fetches = %d, want 1 (second read served from cache)", calls)
	}
}

// A nil client disables caching without breaking callers.
func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "")
	ctx := context.Background()

	if err := helper.Set(ctx, "key", &cachedValue{}, time.Minute); err != nil {
		t.Errorf("Set() error = %v, want nil", err)
	}
	if err := helper.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v, want nil", err)
	}

	var got cachedValue
	if err := helper.Get(ctx, "key", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() error = %v, want ErrCacheNotAvailable", err)
	}

	calls := 0
	err := helper.CacheOrExecute(ctx, "key", &got, time.Minute, func() (interface{}, error) {
		calls++
		return &cachedValue{Name: "direct"}, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if got.Name != "direct" || calls != 1 {
		t.Errorf("fetch not executed: %q after %d calls", got.Name, calls)
	}
}

func TestCacheManager_HealthCheck(t *testing.T) {
	client := newTestClient(t)

	cm := NewCacheManager(client)
	if err := cm.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	disabled := NewCacheManager(nil)
	if err := disabled.HealthCheck(context.Background()); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("disabled HealthCheck() error = %v, want ErrCacheNotAvailable", err)
	}
}
