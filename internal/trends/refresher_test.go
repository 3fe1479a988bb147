package trends

import (
	"context"
	"testing"
	"time"

	"github.com/omnimind-research/omnimind/internal/search"
)

type stubFetcher struct {
	results []search.Result
	err     error
	queries []string
}

func (s *stubFetcher) Name() string { return search.ProviderNews }

func (s *stubFetcher) Fetch(ctx context.Context, query string, limit int) ([]search.Result, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.results) > limit {
		return s.results[:limit], nil
	}
	return s.results, nil
}

func TestIsDueNeverRefreshed(t *testing.T) {
	for _, spec := range []string{"@daily", "@hourly", "0 * * * *", "not a schedule"} {
		if !isDue(spec, nil) {
			t.Fatalf("spec %q should be due when never refreshed", spec)
		}
	}
}

func TestIsDueHourly(t *testing.T) {
	recent := time.Now().Add(-10 * time.Minute)
	if isDue("@hourly", &recent) {
		t.Fatal("should not be due 10 minutes after refresh")
	}
	stale := time.Now().Add(-90 * time.Minute)
	if !isDue("@hourly", &stale) {
		t.Fatal("should be due 90 minutes after refresh")
	}
}

func TestIsDueDaily(t *testing.T) {
	recent := time.Now().Add(-6 * time.Hour)
	if isDue("@daily", &recent) {
		t.Fatal("should not be due 6 hours after refresh")
	}
	stale := time.Now().Add(-25 * time.Hour)
	if !isDue("@daily", &stale) {
		t.Fatal("should be due 25 hours after refresh")
	}
}

func TestIsDueCronExpression(t *testing.T) {
	// top of every hour: due once a full boundary has passed since last
	stale := time.Now().Add(-2 * time.Hour)
	if !isDue("0 * * * *", &stale) {
		t.Fatal("hourly cron should be due after two hours")
	}
}

func TestIsDueInvalidSpecFallsBackToDaily(t *testing.T) {
	recent := time.Now().Add(-6 * time.Hour)
	if isDue("every so often", &recent) {
		t.Fatal("invalid spec should follow the daily fallback")
	}
	stale := time.Now().Add(-25 * time.Hour)
	if !isDue("every so often", &stale) {
		t.Fatal("invalid spec should be due after a day")
	}
}

func TestTrendingWithoutRedisFetchesDirectly(t *testing.T) {
	f := &stubFetcher{results: []search.Result{
		{Title: "A", URL: "https://a", Source: search.ProviderNews, RelevanceScore: 0.8},
		{Title: "B", URL: "https://b", Source: search.ProviderNews, RelevanceScore: 0.8},
	}}
	c := NewCache(nil, f, 0)

	got := c.Trending(context.Background(), "", 1)
	if len(got) != 1 || got[0].Title != "A" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if len(f.queries) != 1 || f.queries[0] != "trending" {
		t.Fatalf("unexpected queries: %v", f.queries)
	}
}

func TestTrendingRegionalQuery(t *testing.T) {
	f := &stubFetcher{results: []search.Result{{Title: "A", URL: "https://a"}}}
	c := NewCache(nil, f, 0)

	c.Trending(context.Background(), "europe", 5)
	if len(f.queries) != 1 || f.queries[0] != "trending europe" {
		t.Fatalf("unexpected queries: %v", f.queries)
	}
}

func TestRefreshFetchFailureReturnsNil(t *testing.T) {
	f := &stubFetcher{err: context.DeadlineExceeded}
	c := NewCache(nil, f, 0)

	if got := c.Refresh(context.Background(), "global", 5); got != nil {
		t.Fatalf("expected nil on fetch failure, got %+v", got)
	}
}
