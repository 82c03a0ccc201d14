package cache

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/landscaper/pkg/errors"
	"github.com/matzehuels/landscaper/pkg/observability"
)

// FileCache implements a file-based cache for CLI usage.
// Each key is stored verbatim as one file in the cache directory.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in dir. An empty dir resolves to
// [DefaultDir]. The directory is created if it doesn't exist.
//
// Failing to resolve or create the directory is a CACHE_SETUP error; the
// caller should abort, since nothing the run collects could be persisted.
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheSetup, err, "create cache directory %s", dir)
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Read retrieves the blob stored under key along with its modification time.
func (c *FileCache) Read(ctx context.Context, key string) (Entry, bool, error) {
	path, err := c.path(key)
	if err != nil {
		return Entry{}, false, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		observability.Cache().OnCacheMiss(ctx, key)
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.Wrap(errors.ErrCodeCacheRead, err, "stat %s", key)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, false, errors.Wrap(errors.ErrCodeCacheRead, err, "read %s", key)
	}

	observability.Cache().OnCacheHit(ctx, key)
	mod := info.ModTime()
	return Entry{Data: data, ModTime: &mod}, true, nil
}

// Write stores data under key, replacing any previous content. The blob is
// written to a temporary file first and renamed into place so a reader never
// sees a partial file.
func (c *FileCache) Write(ctx context.Context, key string, data []byte) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, "."+key+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	observability.Cache().OnCacheSet(ctx, key, len(data))
	return nil
}

func (c *FileCache) path(key string) (string, error) {
	if err := errors.ValidateCacheKey(key); err != nil {
		return "", err
	}
	return filepath.Join(c.dir, key), nil
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
