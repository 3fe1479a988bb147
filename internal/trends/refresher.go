package trends

import (
	"context"
	"log"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/redis/go-redis/v9"
)

// Refresher keeps the trending cache warm on a cron-style schedule.
// A redis SetNX lock ensures only one replica refreshes per window.
type Refresher struct {
	Cache    *Cache
	Rdb      *redis.Client
	Schedule string
	Regions  []string
	Limit    int
	Stop     chan struct{}
	logger   *log.Logger
}

// NewRefresher builds a refresher for the given regions.
func NewRefresher(cache *Cache, rdb *redis.Client, schedule string, regions []string, limit int) *Refresher {
	return &Refresher{
		Cache:    cache,
		Rdb:      rdb,
		Schedule: schedule,
		Regions:  regions,
		Limit:    limit,
		Stop:     make(chan struct{}),
		logger:   log.New(log.Writer(), "[TRENDS-REFRESH] ", log.LstdFlags),
	}
}

// Start launches the refresh loop.
func (r *Refresher) Start() {
	ticker := time.NewTicker(time.Minute)
	go func() {
		for {
			select {
			case <-r.Stop:
				ticker.Stop()
				return
			case <-ticker.C:
				r.tick()
			}
		}
	}()
}

func (r *Refresher) tick() {
	ctx := context.Background()
	for _, region := range r.Regions {
		last := r.lastRefresh(ctx, region)
		if !isDue(r.Schedule, last) {
			continue
		}
		// distributed lock to avoid duplicate refreshes
		if r.Rdb != nil {
			ok, _ := r.Rdb.SetNX(ctx, "trending:lock:"+region, "1", 2*time.Minute).Result()
			if !ok {
				continue
			}
		}
		if results := r.Cache.Refresh(ctx, region, r.Limit); len(results) > 0 {
			r.markRefreshed(ctx, region)
			r.logger.Printf("refreshed %s with %d results", region, len(results))
		}
	}
}

func (r *Refresher) lastRefresh(ctx context.Context, region string) *time.Time {
	if r.Rdb == nil {
		return nil
	}
	raw, err := r.Rdb.Get(ctx, "trending:last:"+region).Result()
	if err != nil {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &ts
}

func (r *Refresher) markRefreshed(ctx context.Context, region string) {
	if r.Rdb == nil {
		return
	}
	_ = r.Rdb.Set(ctx, "trending:last:"+region, time.Now().UTC().Format(time.RFC3339), 0).Err()
}

// isDue determines whether a schedule should fire now given the last
// run time. Supports "@daily", "@hourly" and 5-field cron expressions;
// an invalid expression falls back to @daily.
func isDue(spec string, last *time.Time) bool {
	now := time.Now()
	switch spec {
	case "@daily":
		return last == nil || now.Sub(*last) >= 24*time.Hour
	case "@hourly":
		return last == nil || now.Sub(*last) >= time.Hour
	default:
		expr, err := cronexpr.Parse(spec)
		if err != nil {
			return last == nil || now.Sub(*last) >= 24*time.Hour
		}
		if last == nil {
			return true
		}
		return !expr.Next(*last).After(now)
	}
}
