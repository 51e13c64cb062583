package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) *RedisStore {
	t.Helper()
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis cache: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func runStoreTests(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
			t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := store.Set(ctx, "review:1", []byte(`{"id":"1"}`), 0, DomainField); err != nil {
			t.Fatalf("set: %v", err)
		}
		value, ok, err := store.Get(ctx, "review:1")
		if err != nil || !ok {
			t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
		}
		if string(value) != `{"id":"1"}` {
			t.Fatalf("unexpected value %s", value)
		}
	})

	t.Run("invalidate drops only tagged domain", func(t *testing.T) {
		if err := store.Set(ctx, "stats:1", []byte("2/4"), 0, DomainStats); err != nil {
			t.Fatalf("set stats: %v", err)
		}
		if err := store.Set(ctx, "chat:f1", []byte("[]"), 0, DomainChat); err != nil {
			t.Fatalf("set chat: %v", err)
		}

		if err := store.Invalidate(ctx, DomainStats); err != nil {
			t.Fatalf("invalidate: %v", err)
		}

		if _, ok, _ := store.Get(ctx, "stats:1"); ok {
			t.Fatalf("expected stats entry to be dropped")
		}
		if _, ok, _ := store.Get(ctx, "chat:f1"); !ok {
			t.Fatalf("expected chat entry to survive stats invalidation")
		}
	})

	t.Run("entry tagged with two domains dies with either", func(t *testing.T) {
		if err := store.Set(ctx, "field:f1", []byte("{}"), 0, DomainField, DomainStats); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := store.Invalidate(ctx, DomainStats); err != nil {
			t.Fatalf("invalidate: %v", err)
		}
		if _, ok, _ := store.Get(ctx, "field:f1"); ok {
			t.Fatalf("expected doubly tagged entry to be dropped")
		}
	})

	t.Run("untagged set lands in default domain", func(t *testing.T) {
		if err := store.Set(ctx, "open:1", []byte("[]"), 0); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := store.Invalidate(ctx, DomainDefault); err != nil {
			t.Fatalf("invalidate: %v", err)
		}
		if _, ok, _ := store.Get(ctx, "open:1"); ok {
			t.Fatalf("expected default-domain entry to be dropped")
		}
	})
}

func TestRedisStore(t *testing.T) {
	runStoreTests(t, setupTestRedis(t))
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, NewMemoryStore())
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Set(ctx, "short", []byte("x"), time.Millisecond, DomainDefault); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := store.Get(ctx, "short"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis cache: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Set(ctx, "short", []byte("x"), time.Second, DomainDefault); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.FastForward(2 * time.Second)
	if _, ok, _ := store.Get(ctx, "short"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}
