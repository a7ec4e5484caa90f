package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}
	if err := m.Set(ctx, "k", payload{Name: "x", Score: 7}, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got payload
	ok, err := m.Get(ctx, "k", &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Name != "x" || got.Score != 7 {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	base := time.Now()
	m.now = func() time.Time { return base }
	if err := m.Set(ctx, "k", "v", 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var s string
	m.now = func() time.Time { return base.Add(59 * time.Second) }
	if ok, _ := m.Get(ctx, "k", &s); !ok {
		t.Fatalf("entry expired early")
	}
	m.now = func() time.Time { return base.Add(61 * time.Second) }
	if ok, _ := m.Get(ctx, "k", &s); ok {
		t.Fatalf("entry survived past its TTL")
	}
}

func TestMemoryDel(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	_ = m.Set(ctx, "k", 1, 60)
	_ = m.Del(ctx, "k")
	var n int
	if ok, _ := m.Get(ctx, "k", &n); ok {
		t.Fatalf("deleted entry still readable")
	}
}

func TestMemoryStoresACopy(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	v := []string{"a", "b"}
	_ = m.Set(ctx, "k", v, 60)
	v[0] = "mutated"

	var got []string
	if ok, _ := m.Get(ctx, "k", &got); !ok {
		t.Fatalf("missing entry")
	}
	if got[0] != "a" {
		t.Errorf("cache aliased the caller's slice: %v", got)
	}
}
