package enrich

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/landscaper/pkg/landscape"
)

// Enricher runs both collectors over a catalog and merges the results.
type Enricher struct {
	Organizations *OrganizationCollector
	Repositories  *RepositoryCollector
	Logger        *log.Logger
}

// Summary describes one enrichment run.
type Summary struct {
	Items         int
	Organizations *Report
	Repositories  *Report
	Duration      time.Duration
}

// Run collects organization and repository snapshots concurrently and
// returns enriched copies of items.
//
// A collector error (the cache could not be written) cancels the other
// collector through the shared context and is returned; per-reference
// failures only show up in the Summary.
func (e *Enricher) Run(ctx context.Context, items []landscape.Item) ([]landscape.Item, *Summary, error) {
	start := time.Now()
	logger := loggerOr(e.Logger)
	orgURLs, repoURLs := References(items)
	logger.Debug("references", "items", len(items), "organizations", len(orgURLs), "repositories", len(repoURLs))

	var (
		orgs    map[string]landscape.Organization
		repos   map[string]landscape.Repository
		summary = &Summary{Items: len(items)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c := e.Organizations
		if c == nil {
			c = NewOrganizationCollector(nil, nil, nil)
		}
		var err error
		orgs, summary.Organizations, err = c.Collect(gctx, orgURLs)
		return err
	})
	g.Go(func() error {
		c := e.Repositories
		if c == nil {
			c = NewRepositoryCollector(nil, nil)
		}
		var err error
		repos, summary.Repositories, err = c.Collect(gctx, repoURLs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, summary, err
	}

	enriched := Merge(items, orgs, repos)
	summary.Duration = time.Since(start)
	return enriched, summary, nil
}
