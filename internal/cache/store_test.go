package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"postly/internal/model"
)

// testClock lets tests move cache time forward without sleeping.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(defaultTTL time.Duration) (*Store, *testClock) {
	clock := &testClock{now: time.Unix(1700000000, 0)}
	s := NewStore(defaultTTL)
	s.now = clock.Now
	return s, clock
}

func TestStore_SetGet(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	s.Set("k", "v", time.Minute)
	got, ok := s.Get("k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.(string) != "v" {
		t.Fatalf("expected v, got %v", got)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	if _, ok := s.Get("absent"); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestStore_ExpiryEvictsLazily(t *testing.T) {
	s, clock := newTestStore(time.Minute)

	s.Set("k", "v", 10*time.Second)
	clock.Advance(11 * time.Second)

	if _, ok := s.Get("k"); ok {
		t.Fatal("expected miss after expiry")
	}
	if s.Len() != 0 {
		t.Fatalf("expected expired entry removed, %d entries remain", s.Len())
	}
}

func TestStore_OverwriteResetsExpiry(t *testing.T) {
	s, clock := newTestStore(time.Minute)

	s.Set("k", "v1", 10*time.Second)
	clock.Advance(8 * time.Second)
	s.Set("k", "v2", 10*time.Second)
	clock.Advance(8 * time.Second)

	got, ok := s.Get("k")
	if !ok {
		t.Fatal("expected hit after overwrite refreshed expiry")
	}
	if got.(string) != "v2" {
		t.Fatalf("expected v2, got %v", got)
	}
}

func TestStore_DefaultTTL(t *testing.T) {
	s, clock := newTestStore(30 * time.Second)

	s.Set("k", "v", 0)
	clock.Advance(29 * time.Second)
	if _, ok := s.Get("k"); !ok {
		t.Fatal("expected hit inside default ttl")
	}
	clock.Advance(2 * time.Second)
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected miss past default ttl")
	}
}

func TestStore_Delete(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	s.Set("k", "v", time.Minute)
	if !s.Delete("k") {
		t.Fatal("expected Delete to report presence")
	}
	if s.Delete("k") {
		t.Fatal("expected Delete to report absence on second call")
	}
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_Clear(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	s.Set("a", 1, time.Minute)
	s.Set("b", 2, time.Minute)
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", s.Len())
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", j%10)
				s.Set(key, n, time.Minute)
				s.Get(key)
				s.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}

func TestPostListCache_RoundTripAndInvalidate(t *testing.T) {
	store, _ := newTestStore(time.Minute)
	c := NewPostListCache(store, time.Minute)

	posts := []model.Post{{ID: 1, Text: "hello", UserID: 7}}
	c.Set(7, posts)

	got, ok := c.Get(7)
	if !ok {
		t.Fatal("expected hit for user 7")
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected cached posts: %+v", got)
	}

	if _, ok := c.Get(8); ok {
		t.Fatal("expected miss for user 8")
	}

	c.Invalidate(7)
	if _, ok := c.Get(7); ok {
		t.Fatal("expected miss after invalidation")
	}
}
