package enrich

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/landscaper/pkg/cache"
	"github.com/matzehuels/landscaper/pkg/integrations/crunchbase"
	"github.com/matzehuels/landscaper/pkg/landscape"
)

// DefaultOrganizationWorkers keeps organization fetches serialized; the
// Crunchbase quota is per key, not per connection.
const DefaultOrganizationWorkers = 1

// OrganizationCollector resolves Crunchbase profile URLs to organization
// snapshots.
type OrganizationCollector struct {
	Provider OrganizationProvider // Nil when no API key is configured
	Limiter  Limiter              // Optional; applied before every fetch
	Cache    cache.Cache
	TTL      time.Duration
	Workers  int
	Logger   *log.Logger
	Now      func() time.Time
}

// NewOrganizationCollector creates a collector with default TTL and worker
// count. A nil provider yields a collector that only serves the cache.
func NewOrganizationCollector(p OrganizationProvider, c cache.Cache, l Limiter) *OrganizationCollector {
	return &OrganizationCollector{
		Provider: p,
		Limiter:  l,
		Cache:    c,
		TTL:      DefaultTTL,
		Workers:  DefaultOrganizationWorkers,
	}
}

// Collect returns a snapshot for every profile URL that is fresh in the
// cache or could be fetched. The full mapping is written back to the cache
// before Collect returns.
func (c *OrganizationCollector) Collect(ctx context.Context, urls []string) (map[string]landscape.Organization, *Report, error) {
	col := &collection[landscape.Organization]{
		provider: ProviderCrunchbase,
		cacheKey: OrganizationsCacheKey,
		cache:    cacheOr(c.Cache),
		ttl:      ttlOr(c.TTL),
		now:      nowOr(c.Now),
		workers:  c.Workers,
		logger:   loggerOr(c.Logger),
		stamp:    func(o *landscape.Organization) *time.Time { return &o.GeneratedAt },
	}
	if c.Provider != nil {
		col.fetch = c.fetch
	}
	return col.run(ctx, urls)
}

func (c *OrganizationCollector) fetch(ctx context.Context, profileURL string) (*landscape.Organization, error) {
	permalink, err := crunchbase.ParsePermalink(profileURL)
	if err != nil {
		return nil, err
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return c.Provider.FetchOrganization(ctx, permalink)
}

func cacheOr(c cache.Cache) cache.Cache {
	if c != nil {
		return c
	}
	return cache.NewNullCache()
}
