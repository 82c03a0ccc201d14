package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/landscaper/pkg/cache"
	"github.com/matzehuels/landscaper/pkg/enrich"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the snapshot cache",
	}

	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheStatusCommand())

	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	var flags settingsFlags
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			dir, err := resolveCacheDir(cfg.Cache.Dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var flags settingsFlags
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			dir, err := resolveCacheDir(cfg.Cache.Dir)
			if err != nil {
				return err
			}

			count, err := clearDir(dir)
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached snapshots", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// clearDir removes the regular files in dir and reports how many went.
// A missing directory counts as empty.
func clearDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
			count++
		}
	}
	return count, nil
}

// cacheStatusCommand creates the "cache status" subcommand.
func (c *CLI) cacheStatusCommand() *cobra.Command {
	var flags settingsFlags
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show how many cached snapshots are fresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			dir, err := resolveCacheDir(cfg.Cache.Dir)
			if err != nil {
				return err
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}

			printKeyValue("directory", dir)
			now := time.Now()
			for _, s := range []struct {
				key string
				ttl time.Duration
			}{
				{enrich.OrganizationsCacheKey, cfg.Crunchbase.TTL.Duration},
				{enrich.RepositoriesCacheKey, cfg.GitHub.TTL.Duration},
			} {
				st, err := snapshotStatus(cmd.Context(), fc, s.key, s.ttl, now)
				if err != nil {
					printWarning("%s: %v", s.key, err)
					continue
				}
				printKeyValue(s.key, st.String())
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// cacheStatus counts the entries of one snapshot file.
type cacheStatus struct {
	exists     bool
	entries    int
	stale      int
	fileExpiry bool // Whole file older than the TTL
}

func (s cacheStatus) String() string {
	if !s.exists {
		return "not cached"
	}
	out := fmt.Sprintf("%d entries, %d stale", s.entries, s.stale)
	if s.fileExpiry {
		out += " (not written within ttl)"
	}
	return out
}

func snapshotStatus(ctx context.Context, c cache.Cache, key string, ttl time.Duration, now time.Time) (cacheStatus, error) {
	entry, ok, err := c.Read(ctx, key)
	if err != nil || !ok {
		return cacheStatus{}, err
	}
	var snapshots map[string]struct {
		GeneratedAt time.Time `json:"generated_at"`
	}
	if err := json.Unmarshal(entry.Data, &snapshots); err != nil {
		return cacheStatus{}, fmt.Errorf("decode: %w", err)
	}
	st := cacheStatus{
		exists:     true,
		entries:    len(snapshots),
		fileExpiry: cache.Stale(entry.ModTime, ttl, now),
	}
	for _, s := range snapshots {
		if now.Sub(s.GeneratedAt) >= ttl {
			st.stale++
		}
	}
	return st, nil
}
