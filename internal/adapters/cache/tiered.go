package cache

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/abhimit04/hotel-agent/internal/domain"
)

// Tiered checks the fast tier first and falls through to the slow one,
// refilling the fast tier on a slow-tier hit. Writes go to both. Errors
// from either tier are logged and treated as misses or no-ops; the cache
// must never take down the request path.
type Tiered struct {
	fast    domain.Cache
	slow    domain.Cache
	fillTTL int // seconds for fast-tier refills
}

func NewTiered(fast, slow domain.Cache, fillTTLSec int) *Tiered {
	return &Tiered{fast: fast, slow: slow, fillTTL: fillTTLSec}
}

func (t *Tiered) Get(ctx context.Context, key string, dst any) (bool, error) {
	if ok, err := t.fast.Get(ctx, key, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("fast cache read failed")
	} else if ok {
		return true, nil
	}

	ok, err := t.slow.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("slow cache read failed")
		return false, nil
	}
	if !ok {
		return false, nil
	}
	// refill the fast tier; dst already carries the decoded value
	if raw, err := json.Marshal(dst); err == nil {
		var v json.RawMessage = raw
		if err := t.fast.Set(ctx, key, v, t.fillTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("fast cache refill failed")
		}
	}
	return true, nil
}

func (t *Tiered) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if err := t.fast.Set(ctx, key, v, ttlSec); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("fast cache write failed")
	}
	if err := t.slow.Set(ctx, key, v, ttlSec); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("slow cache write failed")
	}
	return nil
}

func (t *Tiered) Del(ctx context.Context, key string) error {
	if err := t.fast.Del(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("fast cache delete failed")
	}
	if err := t.slow.Del(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("slow cache delete failed")
	}
	return nil
}
