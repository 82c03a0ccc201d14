package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/landscaper/pkg/buildinfo"
	"github.com/matzehuels/landscaper/pkg/cache"
	"github.com/matzehuels/landscaper/pkg/config"
)

// appName is the application name used for display.
const appName = "landscaper"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Landscaper enriches landscape items with Crunchbase and GitHub data",
		Long:         `Landscaper collects organization profiles and repository statistics for the items of a landscape file, caching snapshots on disk so repeated runs only fetch what went stale.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.enrichCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Settings and Cache
// =============================================================================

// settingsFlags are the flags shared by commands that read settings.
type settingsFlags struct {
	configPath string
	cacheDir   string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "settings file (TOML, default $"+config.EnvConfig+")")
	cmd.Flags().StringVar(&f.cacheDir, "cache-dir", "", "cache directory (default $"+config.EnvCacheDir+" or the platform cache dir)")
}

// load resolves settings with the flags applied last.
func (f *settingsFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.cacheDir != "" {
		cfg.Cache.Dir = f.cacheDir
	}
	return cfg, nil
}

// resolveCacheDir returns dir, or the platform cache directory when dir is
// empty.
func resolveCacheDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}

// openCache opens the snapshot cache. With noCache set, nothing is read or
// persisted.
func openCache(dir string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := resolveCacheDir(dir)
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}
