// Package enrich attaches external metadata to landscape items.
//
// Two collectors gather snapshots for the distinct references found in a
// catalog: [OrganizationCollector] resolves Crunchbase profile URLs and
// [RepositoryCollector] resolves GitHub repository URLs. Each collector keeps
// its whole mapping in one cache blob and refreshes only the entries whose
// GeneratedAt is older than the collector's TTL.
//
// # Failure Model
//
// A reference that cannot be resolved (malformed URL, upstream error,
// missing credentials) is recorded in the collector's [Report] and left out
// of the mapping. Only a failure to persist the mapping is returned as an
// error.
//
// # Concurrency
//
// Organization fetches run through an injected [Limiter] with a small
// worker count. Repository fetches check a provider out of a [Pool], so the
// number of in-flight repositories never exceeds the number of tokens.
// [Enricher.Run] runs both collectors concurrently and then applies
// [Merge].
//
// # Example
//
//	orgs := enrich.NewOrganizationCollector(crunchbase.NewClient(key), c, rate.NewLimiter(rate.Every(300*time.Millisecond), 1))
//	repos := enrich.NewRepositoryCollector(enrich.NewPool(providers), c)
//	e := &enrich.Enricher{Organizations: orgs, Repositories: repos}
//	items, summary, err := e.Run(ctx, items)
package enrich
