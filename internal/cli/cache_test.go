package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/landscaper/pkg/cache"
	"github.com/matzehuels/landscaper/pkg/enrich"
	"github.com/matzehuels/landscaper/pkg/landscape"
)

func TestCachePathCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()

	out, err := execute(t, c, "cache", "path", "--cache-dir", dir)
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	t.Setenv("LANDSCAPER_CACHE_DIR", "/from/env")
	out, err = execute(t, c, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "/from/env" {
		t.Errorf("cache path = %q, want env value", out)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	for _, name := range []string{enrich.OrganizationsCacheKey, enrich.RepositoriesCacheKey} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := execute(t, c, "cache", "clear", "--cache-dir", dir); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d files left after clear", len(entries))
	}
}

func TestClearDirMissing(t *testing.T) {
	n, err := clearDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil || n != 0 {
		t.Errorf("clearDir(absent) = %d, %v", n, err)
	}
}

func TestSnapshotStatus(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	now := time.Now()
	ttl := 7 * 24 * time.Hour

	st, err := snapshotStatus(ctx, fc, enrich.RepositoriesCacheKey, ttl, now)
	if err != nil || st.exists {
		t.Fatalf("status of missing snapshot = %+v, %v", st, err)
	}
	if st.String() != "not cached" {
		t.Errorf("String() = %q", st.String())
	}

	data, _ := json.Marshal(map[string]landscape.Repository{
		"https://github.com/acme/fresh": {GeneratedAt: now.Add(-time.Hour)},
		"https://github.com/acme/old":   {GeneratedAt: now.Add(-ttl)},
	})
	if err := fc.Write(ctx, enrich.RepositoriesCacheKey, data); err != nil {
		t.Fatal(err)
	}

	st, err = snapshotStatus(ctx, fc, enrich.RepositoriesCacheKey, ttl, now)
	if err != nil {
		t.Fatal(err)
	}
	if st.entries != 2 || st.stale != 1 || st.fileExpiry {
		t.Errorf("status = %+v", st)
	}
}
