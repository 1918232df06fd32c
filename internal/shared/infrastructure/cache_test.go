package infrastructure

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestInMemoryCache_SetGet(t *testing.T) {
	cache := NewInMemoryCache()

	cache.Set("k", 42, time.Minute)

	got, found := cache.Get("k")
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.(int) != 42 {
		t.Errorf("Get = %v, want 42", got)
	}
}

func TestInMemoryCache_Expiration(t *testing.T) {
	cache := NewInMemoryCache()

	cache.Set("k", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, found := cache.Get("k"); found {
		t.Error("expected entry to be expired")
	}
}

func TestInMemoryCache_DeleteAndClear(t *testing.T) {
	cache := NewInMemoryCache()

	cache.Set("a", 1, time.Minute)
	cache.Set("b", 2, time.Minute)

	cache.Delete("a")
	if cache.Has("a") {
		t.Error("expected 'a' to be deleted")
	}

	cache.Clear()
	if cache.Has("b") {
		t.Error("expected cache to be empty after Clear")
	}
}

func TestShardedCache_Concurrent(t *testing.T) {
	cache := NewShardedCache(16)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			cache.Set(key, i, time.Minute)
			if v, found := cache.Get(key); !found || v.(int) != i {
				t.Errorf("shard roundtrip failed for %s", key)
			}
		}(i)
	}
	wg.Wait()
}

func TestShardedCache_StopIsIdempotent(t *testing.T) {
	cache := NewShardedCache(4)

	cache.Set("k", 1, time.Minute)
	cache.Stop()
	cache.Stop()

	// Le cache reste lisible et inscriptible sans purge d'arrière-plan.
	if v, found := cache.Get("k"); !found || v.(int) != 1 {
		t.Errorf("Get after Stop = %v/%v, want 1/true", v, found)
	}
	cache.Set("k2", 2, time.Minute)
	if !cache.Has("k2") {
		t.Error("Set after Stop should still store entries")
	}
}

func TestShardedCache_InvalidShardCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non power-of-2 shard count")
		}
	}()
	NewShardedCache(3)
}

func TestCacheKeyBuilder(t *testing.T) {
	key := NewCacheKeyBuilder().
		Add("reports").
		Add("profitability").
		AddInt(30).
		AddFloat(27).
		Build()

	want := "reports:profitability:30:27.00"
	if key != want {
		t.Errorf("Build() = %q, want %q", key, want)
	}
}

func BenchmarkCacheKeyBuilder(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = NewCacheKeyBuilder().Add("reports").Add("sim").AddFloat(27).AddFloat(6).Build()
	}
}

func BenchmarkShardedCache_Get(b *testing.B) {
	cache := NewShardedCache(16)
	cache.Set("hot", 1, time.Hour)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cache.Get("hot")
	}
}
