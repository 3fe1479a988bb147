package analysis

import (
	"strings"
	"testing"

	"github.com/omnimind-research/omnimind/internal/search"
)

func intPtr(n int) *int { return &n }

func TestAnalyzeResults(t *testing.T) {
	results := []search.Result{
		{Title: "Climate report", Source: "BBC", Snippet: "Temperatures rose again.", RelevanceScore: 0.8},
		{Title: "Ocean warming study", Source: "Semantic Scholar", Snippet: "We measure heat uptake.", RelevanceScore: 0.9, Citations: intPtr(12)},
		{Title: "Policy roundup", Source: "BBC", Snippet: "New targets announced.", RelevanceScore: 0.8},
		{Title: "Fourth result", Source: "CNN", Snippet: "Not summarised.", RelevanceScore: 0.8},
	}

	a := AnalyzeResults("climate change", results)

	if !strings.Contains(a.Summary, "Based on 4 sources") {
		t.Fatalf("summary missing source count: %q", a.Summary)
	}
	if !strings.Contains(a.Summary, "Climate report") || strings.Contains(a.Summary, "Fourth result") {
		t.Fatalf("summary should list only the top titles: %q", a.Summary)
	}
	if len(a.KeyInsights) != 3 {
		t.Fatalf("expected 3 insights, got %d", len(a.KeyInsights))
	}
	if !strings.HasPrefix(a.KeyInsights[0], "Result 1: Temperatures") {
		t.Fatalf("unexpected first insight: %q", a.KeyInsights[0])
	}
	// sources are deduplicated, capped at five
	if len(a.SourcesCited) != 3 {
		t.Fatalf("expected 3 distinct sources, got %v", a.SourcesCited)
	}
	if len(a.PotentialGaps) == 0 || len(a.NextResearchDirections) == 0 {
		t.Fatalf("gaps and directions must be populated")
	}
	for _, d := range a.NextResearchDirections {
		if strings.Contains(d, "climate change") {
			return
		}
	}
	t.Fatalf("directions should reference the query: %v", a.NextResearchDirections)
}

func TestAnalyzeResultsEmpty(t *testing.T) {
	a := AnalyzeResults("anything", nil)
	if !strings.Contains(a.Summary, "Based on 0 sources") {
		t.Fatalf("unexpected summary: %q", a.Summary)
	}
	if len(a.KeyInsights) != 1 || !strings.Contains(a.KeyInsights[0], "No insights") {
		t.Fatalf("expected insight fallback, got %v", a.KeyInsights)
	}
	if len(a.SourcesCited) != 0 {
		t.Fatalf("expected no cited sources, got %v", a.SourcesCited)
	}
	if !strings.Contains(a.BiasAnalysis, "No sources supplied") {
		t.Fatalf("unexpected bias analysis: %q", a.BiasAnalysis)
	}
}

func TestAnalyzeResultsClipsLongText(t *testing.T) {
	long := strings.Repeat("x", 300)
	a := AnalyzeResults("q", []search.Result{{Title: long, Source: "S", Snippet: long}})
	for _, line := range strings.Split(a.Summary, "\n")[1:] {
		if len([]rune(line)) > len("- ")+80 {
			t.Fatalf("summary title not clipped: %d runes", len([]rune(line)))
		}
	}
	if got := len([]rune(a.KeyInsights[0])); got > len("Result 1: ")+100 {
		t.Fatalf("insight not clipped: %d runes", got)
	}
}

func TestDetectBiasProfiles(t *testing.T) {
	newsOnly := []search.Result{{Source: "BBC", RelevanceScore: 0.8}}
	if got := DetectBias(newsOnly); !strings.Contains(got, "news-dominated") {
		t.Fatalf("unexpected news-only report: %q", got)
	}
	academicOnly := []search.Result{{Source: "SS", RelevanceScore: 0.9, Citations: intPtr(3)}}
	if got := DetectBias(academicOnly); !strings.Contains(got, "academic-only") {
		t.Fatalf("unexpected academic-only report: %q", got)
	}
	mixed := append(newsOnly, academicOnly...)
	if got := DetectBias(mixed); !strings.Contains(got, "maintains balance") {
		t.Fatalf("unexpected mixed report: %q", got)
	}
}
