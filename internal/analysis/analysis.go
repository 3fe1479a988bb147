// Package analysis synthesizes search results into a structured
// research digest. The synthesis is deterministic templating over the
// supplied results; it performs no model inference.
package analysis

import (
	"fmt"
	"strings"

	"github.com/omnimind-research/omnimind/internal/search"
)

// Analysis is the structured output of a synthesis pass.
type Analysis struct {
	Summary                string   `json:"summary"`
	KeyInsights            []string `json:"key_insights"`
	PotentialGaps          []string `json:"potential_gaps"`
	NextResearchDirections []string `json:"next_research_directions"`
	BiasAnalysis           string   `json:"bias_analysis,omitempty"`
	SourcesCited           []string `json:"sources_cited"`
}

const (
	maxSummaryTitles = 3
	maxInsights      = 3
	maxCitedSources  = 5
	titleClip        = 80
	insightClip      = 100
)

// AnalyzeResults builds a digest for the query from the given results.
func AnalyzeResults(query string, results []search.Result) Analysis {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on %d sources, here's what was found about %q:", len(results), query)
	for i, r := range results {
		if i >= maxSummaryTitles {
			break
		}
		b.WriteString("\n- " + clip(r.Title, titleClip))
	}

	var insights []string
	for i, r := range results {
		if i >= maxInsights {
			break
		}
		if snippet := strings.TrimSpace(r.Snippet); snippet != "" {
			insights = append(insights, fmt.Sprintf("Result %d: %s", i+1, clip(snippet, insightClip)))
		}
	}
	if len(insights) == 0 {
		insights = []string{"No insights available from the supplied results"}
	}

	var cited []string
	seen := make(map[string]struct{})
	for _, r := range results {
		if len(cited) >= maxCitedSources {
			break
		}
		src := strings.TrimSpace(r.Source)
		if src == "" {
			continue
		}
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		cited = append(cited, src)
	}

	return Analysis{
		Summary:     b.String(),
		KeyInsights: insights,
		PotentialGaps: []string{
			"Quantitative data on this topic",
			"Recent developments in the field",
			"International perspectives",
			"Academic consensus vs. current practice",
		},
		NextResearchDirections: []string{
			fmt.Sprintf("Deeper dive into %s impact analysis", query),
			fmt.Sprintf("Comparative study: %s across regions", query),
			fmt.Sprintf("Historical timeline of %s evolution", query),
			fmt.Sprintf("Expert interviews on %s", query),
		},
		BiasAnalysis: DetectBias(results),
		SourcesCited: cited,
	}
}

// DetectBias reports a coarse bias profile over the result mix.
func DetectBias(results []search.Result) string {
	var news, academic, other int
	for _, r := range results {
		switch {
		case r.Citations != nil:
			academic++
		case r.RelevanceScore >= 0.8:
			news++
		default:
			other++
		}
	}
	var lines []string
	lines = append(lines, "Bias analysis:")
	switch {
	case len(results) == 0:
		lines = append(lines, "- No sources supplied; nothing to assess")
	case academic == 0 && news > 0:
		lines = append(lines, "- Source type bias: news-dominated mix; academic depth is missing")
	case news == 0 && academic > 0:
		lines = append(lines, "- Source type bias: academic-only mix may trail current events")
	default:
		lines = append(lines, "- Source type bias: mix of news and academic maintains balance")
	}
	if len(results) > 0 {
		lines = append(lines, "- Temporal bias: recent sources may lack historical context")
	}
	return strings.Join(lines, "\n")
}

// clip truncates to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
