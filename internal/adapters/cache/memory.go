// Package cache provides the fast in-process tier and the two-tier
// composition in front of the durable store.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/abhimit04/hotel-agent/internal/adapters/observability"
)

type memEntry struct {
	body      []byte
	expiresAt time.Time
}

// Memory is a TTL map guarded by an RWMutex. Values are stored as JSON
// so reads never alias a caller's slice or map. A janitor goroutine
// sweeps expired entries once a minute.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
	done    chan struct{}
}

func NewMemory() *Memory {
	m := &Memory{
		entries: make(map[string]memEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Close stops the janitor goroutine.
func (m *Memory) Close() { close(m.done) }

func (m *Memory) Get(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || m.now().After(e.expiresAt) {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(e.body, dst)
}

func (m *Memory) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("memory", "set")
	m.mu.Lock()
	m.entries[key] = memEntry{body: b, expiresAt: m.now().Add(time.Duration(ttlSec) * time.Second)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Del(ctx context.Context, key string) error {
	observability.ObserveCache("memory", "del")
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := m.now()
			m.mu.Lock()
			for k, e := range m.entries {
				if now.After(e.expiresAt) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}
