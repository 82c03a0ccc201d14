package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/landscaper/pkg/cache"
	"github.com/matzehuels/landscaper/pkg/errors"
	"github.com/matzehuels/landscaper/pkg/integrations/github"
	"github.com/matzehuels/landscaper/pkg/landscape"
)

// RepositoryCollector resolves GitHub repository URLs to repository
// snapshots. Concurrency equals the pool size: one in-flight repository per
// token.
type RepositoryCollector struct {
	Pool   *Pool[RepositoryProvider] // Nil or empty when no tokens are configured
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
	Now    func() time.Time
}

// NewRepositoryCollector creates a collector with the default TTL.
func NewRepositoryCollector(pool *Pool[RepositoryProvider], c cache.Cache) *RepositoryCollector {
	return &RepositoryCollector{Pool: pool, Cache: c, TTL: DefaultTTL}
}

// Collect returns a snapshot for every repository URL that is fresh in the
// cache or could be fetched, and writes the full mapping back to the cache.
func (c *RepositoryCollector) Collect(ctx context.Context, urls []string) (map[string]landscape.Repository, *Report, error) {
	col := &collection[landscape.Repository]{
		provider: ProviderGitHub,
		cacheKey: RepositoriesCacheKey,
		cache:    cacheOr(c.Cache),
		ttl:      ttlOr(c.TTL),
		now:      nowOr(c.Now),
		workers:  c.Pool.Size(),
		logger:   loggerOr(c.Logger),
		stamp:    func(r *landscape.Repository) *time.Time { return &r.GeneratedAt },
	}
	if c.Pool.Size() > 0 {
		col.fetch = c.fetch
	}
	return col.run(ctx, urls)
}

func (c *RepositoryCollector) fetch(ctx context.Context, repoURL string) (*landscape.Repository, error) {
	owner, repo, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	p, err := c.Pool.Get(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Pool.Put(p)
	return fetchRepository(ctx, p, repoURL, owner, repo)
}

// fetchRepository runs the per-repository call sequence on one provider.
// The first failing call abandons the repository.
func fetchRepository(ctx context.Context, p RepositoryProvider, repoURL, owner, repo string) (*landscape.Repository, error) {
	info, err := p.Repository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	contributors, err := p.ContributorsCount(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	first, err := p.FirstCommit(ctx, owner, repo, info.DefaultBranch)
	if err != nil {
		return nil, err
	}
	latest, err := p.LatestCommit(ctx, owner, repo, info.DefaultBranch)
	if err != nil {
		return nil, err
	}
	release, err := p.LatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	languages, err := p.Languages(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	participation, err := p.Participation(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	if first == nil || latest == nil {
		return nil, errors.New(errors.ErrCodeUpstream, "no commits in %s/%s", owner, repo)
	}

	if len(languages) == 0 {
		languages = nil
	}

	url := info.URL
	if url == "" {
		url = repoURL
	}
	return &landscape.Repository{
		Contributors: landscape.Contributors{
			Count: contributors,
			URL:   fmt.Sprintf("https://github.com/%s/%s/graphs/contributors", owner, repo),
		},
		Description:        info.Description,
		FirstCommit:        *first,
		LatestCommit:       *latest,
		LatestRelease:      release,
		Languages:          languages,
		License:            landscape.NormalizeLicense(info.License),
		ParticipationStats: participation,
		Stars:              info.Stars,
		URL:                url,
	}, nil
}
