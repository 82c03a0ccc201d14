package enrich

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/landscaper/pkg/cache"
	"github.com/matzehuels/landscaper/pkg/errors"
	"github.com/matzehuels/landscaper/pkg/landscape"
)

func acmeItems() []landscape.Item {
	return []landscape.Item{{
		Name:        "Acme Widget",
		Category:    "Runtime",
		Subcategory: "Container Runtime",
		Crunchbase:  acmeProfile,
		Repositories: []landscape.RepositoryRef{
			{URL: widgetURL, Primary: true},
		},
	}}
}

func TestEnricher_AcmeScenario(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	orgs := acmeOrgs()
	repos := &fakeRepos{repos: map[string]fakeRepo{"acme/widget": widgetRepo()}}
	ctx := context.Background()

	// Run 1: valid credentials.
	e1 := &Enricher{
		Organizations: newOrgCollector(orgs, fc, &countingLimiter{}),
		Repositories:  newRepoCollector(repos, fc, 1),
	}
	first, summary, err := e1.Run(ctx, acmeItems())
	if err != nil {
		t.Fatalf("run 1: %v", err)
	}
	it := first[0]
	if it.Organization == nil || it.Organization.Name != "Acme" ||
		*it.Organization.NumEmployeesMin != 11 || *it.Organization.NumEmployeesMax != 50 {
		t.Errorf("run 1 organization = %+v", it.Organization)
	}
	data := it.Repositories[0].Data
	if data == nil || data.Stars != 42 || data.License != "Apache-2.0" {
		t.Errorf("run 1 repository = %+v", data)
	}
	if !it.OSS {
		t.Error("run 1 should derive oss=true")
	}
	if summary.Organizations.Stats().Fetched != 1 || summary.Repositories.Stats().Fetched != 1 {
		t.Errorf("run 1 summary = %+v / %+v", summary.Organizations, summary.Repositories)
	}
	for _, key := range []string{OrganizationsCacheKey, RepositoriesCacheKey} {
		if _, ok, _ := fc.Read(ctx, key); !ok {
			t.Errorf("run 1 did not write %s", key)
		}
	}

	// Run 2: credentials revoked, within TTL.
	orgCalls, repoCalls := orgs.calls.Load(), repos.calls.Load()
	e2 := &Enricher{
		Organizations: newOrgCollector(nil, fc, nil),
		Repositories:  newRepoCollector(repos, fc, 0),
	}
	second, summary, err := e2.Run(ctx, acmeItems())
	if err != nil {
		t.Fatalf("run 2: %v", err)
	}
	if orgs.calls.Load() != orgCalls || repos.calls.Load() != repoCalls {
		t.Error("run 2 made upstream calls")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("run 2 item differs:\n run 1: %+v\n run 2: %+v", first[0], second[0])
	}
	if summary.Organizations.Stats().Reused != 1 || summary.Repositories.Stats().Reused != 1 {
		t.Errorf("run 2 summary = %+v / %+v", summary.Organizations, summary.Repositories)
	}
}

func TestEnricher_NoCollectors(t *testing.T) {
	e := &Enricher{Logger: log.New(io.Discard)}
	got, summary, err := e.Run(context.Background(), acmeItems())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got[0].Organization != nil || got[0].Repositories[0].Data != nil {
		t.Errorf("item = %+v, want unenriched", got[0])
	}
	if summary.Items != 1 || summary.Organizations.Stats().Skipped != 1 || summary.Repositories.Stats().Skipped != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestEnricher_CacheWriteFailure(t *testing.T) {
	mc := newMemCache()
	mc.writeErr = errors.New(errors.ErrCodeInternal, "read-only file system")
	e := &Enricher{
		Organizations: newOrgCollector(acmeOrgs(), mc, nil),
		Repositories:  newRepoCollector(&fakeRepos{}, mc, 1),
	}
	_, _, err := e.Run(context.Background(), acmeItems())
	if !errors.Is(err, errors.ErrCodeCacheSetup) {
		t.Errorf("Run() error = %v, want cache setup error", err)
	}
}
