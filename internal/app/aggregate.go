package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/abhimit04/hotel-agent/internal/adapters/observability"
	"github.com/abhimit04/hotel-agent/internal/domain"
)

// Aggregator fans a query out to every configured provider concurrently
// and collects whatever settles in time. A slow or broken provider only
// costs its own candidates, never the request.
type Aggregator struct {
	providers []domain.Provider
	timeout   time.Duration
	sem       *semaphore.Weighted
}

func NewAggregator(providers []domain.Provider, timeout time.Duration, maxInFlight int64) *Aggregator {
	if maxInFlight <= 0 {
		maxInFlight = int64(len(providers))
		if maxInFlight == 0 {
			maxInFlight = 1
		}
	}
	return &Aggregator{
		providers: providers,
		timeout:   timeout,
		sem:       semaphore.NewWeighted(maxInFlight),
	}
}

// Collect waits for all providers to settle and concatenates the
// successes. It only errors when the parent context is done, in which
// case partial results are discarded.
func (a *Aggregator) Collect(ctx context.Context, q domain.SearchQuery) ([]domain.Candidate, error) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		all       []domain.Candidate
		succeeded int
		failed    int
	)

	for _, p := range a.providers {
		if err := a.sem.Acquire(ctx, 1); err != nil {
			break // ctx done; already-launched fetches unwind via ctx
		}
		wg.Add(1)
		go func(p domain.Provider) {
			defer wg.Done()
			defer a.sem.Release(1)

			fctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			start := time.Now()
			cands, err := p.Fetch(fctx, q)
			observability.ObserveProvider(string(p.Name()), err, time.Since(start))
			if err != nil {
				log.Warn().Str("provider", string(p.Name())).Err(err).Msg("provider fetch failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			succeeded++
			all = append(all, cands...)
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug().
		Int("succeeded", succeeded).
		Int("failed", failed).
		Int("candidates", len(all)).
		Str("place", q.Place.Name).
		Msg("provider fan-out settled")
	return all, nil
}
