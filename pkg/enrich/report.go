package enrich

import (
	"sort"
	"time"

	"github.com/matzehuels/landscaper/pkg/observability"
)

// Provider names used in reports, logs and hooks.
const (
	ProviderCrunchbase = "crunchbase"
	ProviderGitHub     = "github"
)

// Report describes what one collector run did with each reference.
type Report struct {
	Provider string
	Reused   []string         // Fresh cached entries, sorted
	Fetched  []string         // Entries fetched from upstream, sorted
	Skipped  map[string]error // Unresolved references and why
	Duration time.Duration
}

func newReport(provider string) *Report {
	return &Report{Provider: provider, Skipped: make(map[string]error)}
}

// Stats returns the report's counters.
func (r *Report) Stats() observability.CollectStats {
	if r == nil {
		return observability.CollectStats{}
	}
	return observability.CollectStats{
		Reused:  len(r.Reused),
		Fetched: len(r.Fetched),
		Skipped: len(r.Skipped),
	}
}

// SkippedURLs returns the unresolved references in sorted order.
func (r *Report) SkippedURLs() []string {
	if r == nil {
		return nil
	}
	urls := make([]string, 0, len(r.Skipped))
	for u := range r.Skipped {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
