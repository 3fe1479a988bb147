package search

import "github.com/prometheus/client_golang/prometheus"

var (
	fetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "omnimind",
		Subsystem: "search",
		Name:      "fetches_total",
		Help:      "Fetcher invocations by provider and outcome.",
	}, []string{"provider", "outcome"})

	fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "omnimind",
		Subsystem: "search",
		Name:      "fetch_duration_seconds",
		Help:      "Wall time of a single fetcher invocation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
)

func init() {
	prometheus.MustRegister(fetchesTotal, fetchDuration)
}
