package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "github.com/abhimit04/hotel-agent/internal/adapters/redis"
)

type payload struct {
	Name  string `json:"name"`
	Score float64
}

func newTestCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got payload
	ok, err := c.Get(ctx, "search:paris:2025-09-20:2025-09-21", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty store")
	}

	want := payload{Name: "Hotel Lumiere", Score: 9.1}
	if err := c.Set(ctx, "search:paris:2025-09-20:2025-09-21", want, 600); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, err = c.Get(ctx, "search:paris:2025-09-20:2025-09-21", &got)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "x"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(59 * time.Second)
	var got payload
	if ok, _ := c.Get(ctx, "k", &got); !ok {
		t.Fatal("entry expired before TTL")
	}

	mr.FastForward(2 * time.Second)
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatal("entry served past TTL")
	}
}

func TestCache_Del(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "k", payload{Name: "x"}, 60)
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var got payload
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatal("expected miss after delete")
	}
}
