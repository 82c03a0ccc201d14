package enrich

import (
	"context"

	"github.com/matzehuels/landscaper/pkg/integrations/crunchbase"
	"github.com/matzehuels/landscaper/pkg/integrations/github"
	"github.com/matzehuels/landscaper/pkg/landscape"
)

// OrganizationProvider looks up organization profiles.
//
// The returned snapshot's GeneratedAt is ignored; collectors stamp it.
type OrganizationProvider interface {
	FetchOrganization(ctx context.Context, permalink string) (*landscape.Organization, error)
}

// RepositoryProvider answers the per-repository questions a
// [RepositoryCollector] asks, one upstream call each.
//
// Implementations must be safe for use by one goroutine at a time; the
// collector never shares a checked-out provider.
type RepositoryProvider interface {
	Repository(ctx context.Context, owner, repo string) (*github.RepoInfo, error)
	ContributorsCount(ctx context.Context, owner, repo string) (int, error)
	FirstCommit(ctx context.Context, owner, repo, branch string) (*landscape.Commit, error)
	LatestCommit(ctx context.Context, owner, repo, branch string) (*landscape.Commit, error)
	LatestRelease(ctx context.Context, owner, repo string) (*landscape.Release, error)
	Languages(ctx context.Context, owner, repo string) (map[string]int64, error)
	Participation(ctx context.Context, owner, repo string) ([]int, error)
}

// Limiter throttles upstream requests. *rate.Limiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

var (
	_ OrganizationProvider = (*crunchbase.Client)(nil)
	_ RepositoryProvider   = (*github.Client)(nil)
)
