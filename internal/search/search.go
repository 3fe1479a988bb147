package search

import "context"

// Provider names recognised by the default registry.
const (
	ProviderNews     = "news"
	ProviderWeb      = "web"
	ProviderAcademic = "academic"
)

// Result is the normalized output unit produced by every fetcher.
// A Result is immutable once constructed; the aggregator only reorders
// and truncates collections, it never rewrites fields.
type Result struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Source         string  `json:"source"`
	Snippet        string  `json:"snippet"`
	RelevanceScore float64 `json:"relevance_score"`
	PublishedDate  string  `json:"published_date,omitempty"`
	Author         string  `json:"author,omitempty"`
	Citations      *int    `json:"citations,omitempty"`
}

// Fetcher translates a free-text query into a normalized result
// sequence for one provider. Implementations return at most limit
// results. RelevanceScore is fetcher-local: there is no cross-source
// calibration, so ranking across providers is best effort only.
//
// A fetcher with no configured credential returns (nil, nil) without
// touching the network. Transport and payload errors are returned to
// the caller; the aggregator is the fail-open boundary that converts
// them into empty sequences.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, query string, limit int) ([]Result, error)
}

// Registry maps provider names to fetchers and remembers registration
// order so the aggregator's fan-out is deterministic.
type Registry struct {
	names    []string
	fetchers map[string]Fetcher
}

// NewRegistry builds a registry from the given fetchers. A later
// fetcher with a duplicate name replaces the earlier one.
func NewRegistry(fetchers ...Fetcher) *Registry {
	r := &Registry{fetchers: make(map[string]Fetcher, len(fetchers))}
	for _, f := range fetchers {
		if _, ok := r.fetchers[f.Name()]; !ok {
			r.names = append(r.names, f.Name())
		}
		r.fetchers[f.Name()] = f
	}
	return r
}

// Lookup returns the fetcher registered under name.
func (r *Registry) Lookup(name string) (Fetcher, bool) {
	f, ok := r.fetchers[name]
	return f, ok
}

// Names returns provider names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
