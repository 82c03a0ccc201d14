package enrich

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/landscaper/pkg/cache"
	"github.com/matzehuels/landscaper/pkg/errors"
	"github.com/matzehuels/landscaper/pkg/observability"
)

// DefaultTTL is how long a snapshot is reused before it is fetched again.
const DefaultTTL = 7 * 24 * time.Hour

// Cache keys of the two collector snapshots.
const (
	OrganizationsCacheKey = "crunchbase.json"
	RepositoriesCacheKey  = "github.json"
)

// collection is the provider-independent part of a collector run: load the
// cached mapping, reuse fresh entries, fetch the rest, persist the result.
type collection[T any] struct {
	provider string
	cacheKey string
	cache    cache.Cache
	ttl      time.Duration
	now      func() time.Time
	workers  int
	logger   *log.Logger

	// stamp points at the snapshot's GeneratedAt field.
	stamp func(*T) *time.Time
	// fetch resolves one reference. Nil when the provider is not configured.
	fetch func(ctx context.Context, url string) (*T, error)
}

func (c *collection[T]) run(ctx context.Context, urls []string) (map[string]T, *Report, error) {
	start := time.Now()
	urls = distinct(urls)
	hooks := observability.Collector()
	hooks.OnCollectStart(ctx, c.provider, len(urls))

	report := newReport(c.provider)
	cached := c.load(ctx)
	now := c.now()

	result := make(map[string]T, len(urls))
	var pending []string
	for _, u := range urls {
		if v, ok := cached[u]; ok && fresh(*c.stamp(&v), now, c.ttl) {
			result[u] = v
			report.Reused = append(report.Reused, u)
			continue
		}
		pending = append(pending, u)
	}

	switch {
	case len(pending) == 0:
	case c.fetch == nil:
		c.logger.Warn("credentials not configured, skipping fetch", "provider", c.provider, "pending", len(pending))
		for _, u := range pending {
			report.Skipped[u] = errors.New(errors.ErrCodeConfigMissing, "%s credentials not configured", c.provider)
		}
	default:
		c.fetchAll(ctx, pending, result, report)
	}

	if err := c.persist(ctx, result); err != nil {
		return result, report, err
	}

	report.Duration = time.Since(start)
	hooks.OnCollectComplete(ctx, c.provider, report.Stats(), report.Duration)
	c.logger.Info("collected",
		"provider", c.provider,
		"cached", len(report.Reused),
		"fetched", len(report.Fetched),
		"skipped", len(report.Skipped))
	return result, report, nil
}

// fetchAll resolves pending references with at most c.workers in flight.
// Individual failures are recorded in report and never stop the batch.
func (c *collection[T]) fetchAll(ctx context.Context, pending []string, result map[string]T, report *Report) {
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(max(c.workers, 1))

	for _, u := range pending {
		g.Go(func() error {
			began := time.Now()
			v, err := c.fetch(ctx, u)
			observability.Collector().OnFetch(ctx, c.provider, u, time.Since(began), err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Skipped[u] = err
				c.logger.Warn("fetch failed", "provider", c.provider, "url", u, "err", err)
				return nil
			}
			*c.stamp(v) = c.now()
			result[u] = *v
			report.Fetched = append(report.Fetched, u)
			c.logger.Debug("fetched", "provider", c.provider, "url", u)
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(report.Fetched)
}

// load reads the previous snapshot. Any failure counts as an empty cache.
func (c *collection[T]) load(ctx context.Context) map[string]T {
	entry, ok, err := c.cache.Read(ctx, c.cacheKey)
	if err != nil {
		c.logger.Warn("cache unreadable, fetching everything", "key", c.cacheKey, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	var m map[string]T
	if err := json.Unmarshal(entry.Data, &m); err != nil {
		err = errors.Wrap(errors.ErrCodeCacheRead, err, "decode %s", c.cacheKey)
		c.logger.Warn("cache corrupt, fetching everything", "key", c.cacheKey, "err", err)
		return nil
	}
	return m
}

// persist replaces the cached snapshot with result.
func (c *collection[T]) persist(ctx context.Context, result map[string]T) error {
	data, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", c.cacheKey)
	}
	if err := c.cache.Write(ctx, c.cacheKey, data); err != nil {
		return errors.Wrap(errors.ErrCodeCacheSetup, err, "write %s", c.cacheKey)
	}
	return nil
}

// fresh reports whether a snapshot generated at g may still be reused at
// now. A snapshot stamped in the future is stale.
func fresh(g, now time.Time, ttl time.Duration) bool {
	return !g.After(now) && now.Sub(g) < ttl
}

// distinct returns the sorted non-empty unique values of urls.
func distinct(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

func loggerOr(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.Default()
}

func nowOr(now func() time.Time) func() time.Time {
	if now != nil {
		return now
	}
	return time.Now
}

func ttlOr(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return DefaultTTL
}
