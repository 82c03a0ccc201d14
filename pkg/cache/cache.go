// Package cache persists named byte blobs for the enrichment pipeline.
//
// A [Cache] knows nothing about freshness: [Cache.Read] hands back the
// stored bytes together with the blob's modification time and lets the
// caller decide. The collectors embed a generated_at timestamp in every
// entry of their snapshot and ignore the modification time; callers that
// treat a whole blob as one unit can use [Stale] on [Entry.ModTime].
//
// [FileCache] stores each key as one file under a cache root directory.
// [NullCache] discards writes and always misses; it backs --no-cache runs.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/landscaper/pkg/errors"
)

// appName names the default cache subdirectory.
const appName = "landscaper"

// Cache reads and writes named blobs.
//
// Implementations must be safe for concurrent Read calls. Writes to the same
// key are expected to come from a single goroutine.
type Cache interface {
	// Read returns the blob stored under key. ok is false when the key has
	// never been written.
	Read(ctx context.Context, key string) (e Entry, ok bool, err error)

	// Write replaces the whole blob stored under key.
	Write(ctx context.Context, key string, data []byte) error
}

// Entry is a stored blob.
type Entry struct {
	Data    []byte
	ModTime *time.Time // nil when the backend does not track it
}

// Stale reports whether an entry last modified at modTime has reached ttl
// at now. A nil modTime is always stale.
func Stale(modTime *time.Time, ttl time.Duration, now time.Time) bool {
	if modTime == nil {
		return true
	}
	return now.Sub(*modTime) >= ttl
}

// DefaultDir returns the platform cache location for landscaper,
// e.g. ~/.cache/landscaper on Linux. XDG_CACHE_HOME is honored.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeCacheSetup, err, "no platform cache directory")
	}
	return filepath.Join(base, appName), nil
}
