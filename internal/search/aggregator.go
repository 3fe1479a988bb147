package search

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

// Aggregator fans a query out to the registered fetchers, merges their
// output into one pool, ranks it and truncates to the requested limit.
// It holds no state between calls; concurrent searches are independent.
type Aggregator struct {
	registry *Registry
	logger   *log.Logger
}

// NewAggregator creates an aggregator over the given registry.
func NewAggregator(registry *Registry) *Aggregator {
	return &Aggregator{
		registry: registry,
		logger:   log.New(log.Writer(), "[SEARCH] ", log.LstdFlags),
	}
}

// UnifiedSearch performs one search across the named sources.
//
// An empty sources slice means every registered provider. Names with
// no registered fetcher are silently ignored, duplicates are invoked
// once. Every fetcher receives the full limit, so the pre-sort pool
// may oversupply; the pool is stable-sorted by RelevanceScore
// descending and cut to limit. Ties keep the order the sources were
// invoked in.
//
// Fetchers run concurrently but the pool is only ranked once all of
// them have finished. A fetcher error is logged and counted, then
// treated as an empty contribution: one provider's outage never aborts
// the overall search.
func (a *Aggregator) UnifiedSearch(ctx context.Context, query string, sources []string, limit int) []Result {
	if limit <= 0 {
		return []Result{}
	}
	if len(sources) == 0 {
		sources = a.registry.Names()
	}

	var fetchers []Fetcher
	seen := make(map[string]struct{}, len(sources))
	for _, name := range sources {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		f, ok := a.registry.Lookup(name)
		if !ok {
			continue
		}
		fetchers = append(fetchers, f)
	}

	// One slot per fetcher, indexed by invocation order, so the
	// concatenation order is deterministic regardless of which
	// goroutine finishes first.
	slots := make([][]Result, len(fetchers))
	var wg sync.WaitGroup
	for i, f := range fetchers {
		wg.Add(1)
		go func(i int, f Fetcher) {
			defer wg.Done()
			start := time.Now()
			results, err := f.Fetch(ctx, query, limit)
			fetchDuration.WithLabelValues(f.Name()).Observe(time.Since(start).Seconds())
			if err != nil {
				a.logger.Printf("%s fetch failed for %q: %v", f.Name(), query, err)
				fetchesTotal.WithLabelValues(f.Name(), "error").Inc()
				return
			}
			fetchesTotal.WithLabelValues(f.Name(), "ok").Inc()
			slots[i] = results
		}(i, f)
	}
	wg.Wait()

	pool := make([]Result, 0, limit)
	for _, rs := range slots {
		pool = append(pool, rs...)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].RelevanceScore > pool[j].RelevanceScore
	})
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}
