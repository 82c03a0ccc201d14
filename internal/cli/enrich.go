package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/matzehuels/landscaper/pkg/cache"
	"github.com/matzehuels/landscaper/pkg/config"
	"github.com/matzehuels/landscaper/pkg/enrich"
	"github.com/matzehuels/landscaper/pkg/integrations/crunchbase"
	"github.com/matzehuels/landscaper/pkg/integrations/github"
	"github.com/matzehuels/landscaper/pkg/landscape"
)

// enrichOptions holds the enrich command's flags.
type enrichOptions struct {
	settingsFlags
	landscape string
	output    string
	noCache   bool
}

// enrichCommand creates the enrich command.
func (c *CLI) enrichCommand() *cobra.Command {
	var opts enrichOptions

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Attach Crunchbase and GitHub data to landscape items",
		Long: `Enrich loads the items of a landscape file, collects an organization profile
for every Crunchbase URL and repository statistics for every GitHub URL, and
writes the enriched items as JSON.

Credentials are read from CRUNCHBASE_API_KEY and GITHUB_TOKENS (comma
separated, one concurrent request per token). Without credentials only
cached snapshots are used.`,
		Example: `  landscaper enrich -l landscape.yml -o enriched.json
  GITHUB_TOKENS=t1,t2 landscaper enrich -l landscape.yml --cache-dir ./cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEnrich(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.landscape, "landscape", "l", "", "landscape file (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "neither read nor write cached snapshots")
	opts.settingsFlags.register(cmd)
	_ = cmd.MarkFlagRequired("landscape")

	return cmd
}

func (c *CLI) runEnrich(ctx context.Context, opts enrichOptions) error {
	runID := uuid.NewString()
	logger := c.Logger.With("run", runID[:8])
	ctx = withLogger(ctx, logger)

	cfg, err := opts.load()
	if err != nil {
		return err
	}

	items, err := landscape.Load(opts.landscape)
	if err != nil {
		return err
	}
	logger.Info("Loaded landscape", "file", opts.landscape, "items", len(items))

	store, err := openCache(cfg.Cache.Dir, opts.noCache)
	if err != nil {
		return err
	}
	if fc, ok := store.(*cache.FileCache); ok {
		logger.Debug("Using cache", "dir", fc.Dir())
	}

	prog := newProgress(logger)
	enriched, summary, err := newEnricher(ctx, cfg, store).Run(ctx, items)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Enriched %d items", len(enriched)))

	if err := writeItems(opts.output, enriched); err != nil {
		return err
	}
	printSummary(summary, c.Logger.GetLevel() <= log.DebugLevel)
	if opts.output != "-" {
		printFile(opts.output)
	}
	return nil
}

// newEnricher wires the collectors for one run: a rate limited Crunchbase
// client when an API key is set and a pool with one GitHub client per token.
func newEnricher(ctx context.Context, cfg config.Config, store cache.Cache) *enrich.Enricher {
	logger := loggerFromContext(ctx)

	var orgProvider enrich.OrganizationProvider
	if cfg.Crunchbase.APIKey != "" {
		orgProvider = crunchbase.NewClient(cfg.Crunchbase.APIKey)
	} else {
		logger.Warn("No Crunchbase API key, organizations are served from cache only", "env", config.EnvCrunchbaseAPIKey)
	}
	limiter := rate.NewLimiter(rate.Every(cfg.Crunchbase.RequestInterval.Duration), 1)
	orgs := enrich.NewOrganizationCollector(orgProvider, store, limiter)
	orgs.TTL = cfg.Crunchbase.TTL.Duration
	orgs.Workers = cfg.Crunchbase.Workers
	orgs.Logger = logger

	var providers []enrich.RepositoryProvider
	for _, gc := range github.NewClients(ctx, cfg.GitHub.Tokens) {
		providers = append(providers, gc)
	}
	if len(providers) == 0 {
		logger.Warn("No GitHub tokens, repositories are served from cache only", "env", config.EnvGitHubTokens)
	}
	repos := enrich.NewRepositoryCollector(enrich.NewPool(providers), store)
	repos.TTL = cfg.GitHub.TTL.Duration
	repos.Logger = logger

	return &enrich.Enricher{Organizations: orgs, Repositories: repos, Logger: logger}
}

// writeItems writes items as indented JSON to path, or stdout for "-".
func writeItems(path string, items []landscape.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	data = append(data, '\n')
	if path == "-" || path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
