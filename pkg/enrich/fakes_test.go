package enrich

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matzehuels/landscaper/pkg/cache"
	"github.com/matzehuels/landscaper/pkg/errors"
	"github.com/matzehuels/landscaper/pkg/integrations/github"
	"github.com/matzehuels/landscaper/pkg/landscape"
)

var testNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// fakeOrgs serves organizations by permalink.
type fakeOrgs struct {
	orgs  map[string]landscape.Organization
	calls atomic.Int32
}

func (f *fakeOrgs) FetchOrganization(ctx context.Context, permalink string) (*landscape.Organization, error) {
	f.calls.Add(1)
	org, ok := f.orgs[permalink]
	if !ok {
		return nil, errors.New(errors.ErrCodeUpstream, "crunchbase returned 404 for %s", permalink)
	}
	return &org, nil
}

// fakeRepo is the canned upstream state of one repository.
type fakeRepo struct {
	info          github.RepoInfo
	contributors  int
	first, latest landscape.Commit
	release       *landscape.Release
	languages     map[string]int64
	participation []int
	failStep      string // Name of the call that fails, if any
}

// fakeRepos serves repositories keyed by "owner/repo" and records calls.
type fakeRepos struct {
	repos map[string]fakeRepo
	delay time.Duration

	calls    atomic.Int32
	inflight atomic.Int32
	peak     atomic.Int32
	mu       sync.Mutex
	branches []string
}

func (f *fakeRepos) step(ctx context.Context, name, owner, repo string) (fakeRepo, error) {
	f.calls.Add(1)
	r, ok := f.repos[owner+"/"+repo]
	if !ok {
		return r, errors.New(errors.ErrCodeUpstream, "%s/%s not found", owner, repo)
	}
	if r.failStep == name {
		return r, errors.New(errors.ErrCodeUpstream, "%s failed for %s/%s", name, owner, repo)
	}
	return r, nil
}

func (f *fakeRepos) Repository(ctx context.Context, owner, repo string) (*github.RepoInfo, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	r, err := f.step(ctx, "repository", owner, repo)
	if err != nil {
		return nil, err
	}
	return &r.info, nil
}

func (f *fakeRepos) ContributorsCount(ctx context.Context, owner, repo string) (int, error) {
	r, err := f.step(ctx, "contributors", owner, repo)
	return r.contributors, err
}

func (f *fakeRepos) FirstCommit(ctx context.Context, owner, repo, branch string) (*landscape.Commit, error) {
	f.mu.Lock()
	f.branches = append(f.branches, branch)
	f.mu.Unlock()
	r, err := f.step(ctx, "first_commit", owner, repo)
	if err != nil {
		return nil, err
	}
	return &r.first, nil
}

func (f *fakeRepos) LatestCommit(ctx context.Context, owner, repo, branch string) (*landscape.Commit, error) {
	r, err := f.step(ctx, "latest_commit", owner, repo)
	if err != nil {
		return nil, err
	}
	return &r.latest, nil
}

func (f *fakeRepos) LatestRelease(ctx context.Context, owner, repo string) (*landscape.Release, error) {
	r, err := f.step(ctx, "latest_release", owner, repo)
	return r.release, err
}

func (f *fakeRepos) Languages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	r, err := f.step(ctx, "languages", owner, repo)
	return r.languages, err
}

func (f *fakeRepos) Participation(ctx context.Context, owner, repo string) ([]int, error) {
	r, err := f.step(ctx, "participation", owner, repo)
	return r.participation, err
}

// countingLimiter records how often it was waited on.
type countingLimiter struct{ waits atomic.Int32 }

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.waits.Add(1)
	return ctx.Err()
}

// memCache is an in-memory cache.Cache.
type memCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	writes   int
	writeErr error
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) Read(ctx context.Context, key string) (cache.Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	if !ok {
		return cache.Entry{}, false, nil
	}
	return cache.Entry{Data: append([]byte(nil), d...)}, true, nil
}

func (m *memCache) Write(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func widgetRepo() fakeRepo {
	first := time.Date(2019, 1, 2, 3, 4, 5, 0, time.UTC)
	latest := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	stats := make([]int, landscape.ParticipationWeeks)
	stats[51] = 7
	return fakeRepo{
		info: github.RepoInfo{
			DefaultBranch: "main",
			Description:   "A widget",
			License:       "Apache-2.0",
			Stars:         42,
			URL:           "https://github.com/acme/widget",
		},
		contributors:  17,
		first:         landscape.Commit{TS: &first, URL: "https://github.com/acme/widget/commit/first"},
		latest:        landscape.Commit{TS: &latest, URL: "https://github.com/acme/widget/commit/latest"},
		languages:     map[string]int64{"Go": 1000},
		participation: stats,
	}
}

func newRepoCollector(f *fakeRepos, c cache.Cache, size int) *RepositoryCollector {
	providers := make([]RepositoryProvider, size)
	for i := range providers {
		providers[i] = f
	}
	rc := NewRepositoryCollector(NewPool(providers), c)
	rc.Now = fixedNow
	return rc
}

func newOrgCollector(f *fakeOrgs, c cache.Cache, l Limiter) *OrganizationCollector {
	var p OrganizationProvider
	if f != nil {
		p = f
	}
	oc := NewOrganizationCollector(p, c, l)
	oc.Now = fixedNow
	return oc
}
