package github

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"

	gh "github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/matzehuels/landscaper/pkg/errors"
	"github.com/matzehuels/landscaper/pkg/integrations"
	"github.com/matzehuels/landscaper/pkg/landscape"
)

// Client provides access to the GitHub API with a single token.
//
// Client is safe for concurrent use, but callers that share a token's rate
// limit usually check one Client out per in-flight repository.
type Client struct {
	gh *gh.Client
}

// RepoInfo holds the repository-level fields of a GitHub repository.
type RepoInfo struct {
	DefaultBranch string
	Description   string
	License       string // SPDX id, NOASSERTION already normalized to ""
	Stars         int
	URL           string // Canonical html URL
}

// NewClient creates a GitHub client authenticated with token.
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, ts)
	hc.Transport = integrations.HookTransport(hc.Transport)
	hc.Timeout = integrations.NewHTTPClient().Timeout
	return &Client{gh: gh.NewClient(hc)}
}

// NewClients creates one client per token, skipping empty tokens.
func NewClients(ctx context.Context, tokens []string) []*Client {
	var clients []*Client
	for _, t := range tokens {
		if t == "" {
			continue
		}
		clients = append(clients, NewClient(ctx, t))
	}
	return clients
}

// newTestClient points a client at a test server.
func newTestClient(httpClient *http.Client, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return nil, err
	}
	httpClient.Transport = integrations.HookTransport(httpClient.Transport)
	c := gh.NewClient(httpClient)
	c.BaseURL = u
	return &Client{gh: c}, nil
}

// Repository fetches repository metadata.
func (c *Client) Repository(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, wrap(err, "get repository %s/%s", owner, repo)
	}
	return &RepoInfo{
		DefaultBranch: r.GetDefaultBranch(),
		Description:   r.GetDescription(),
		License:       landscape.NormalizeLicense(r.GetLicense().GetSPDXID()),
		Stars:         r.GetStargazersCount(),
		URL:           r.GetHTMLURL(),
	}, nil
}

// ContributorsCount approximates the number of contributors, anonymous
// ones included, from the last page of a one-per-page listing.
func (c *Client) ContributorsCount(ctx context.Context, owner, repo string) (int, error) {
	opts := &gh.ListContributorsOptions{
		Anon:        "true",
		ListOptions: gh.ListOptions{PerPage: 1},
	}
	contributors, resp, err := c.gh.Repositories.ListContributors(ctx, owner, repo, opts)
	if err != nil {
		return 0, wrap(err, "list contributors %s/%s", owner, repo)
	}
	if resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(contributors), nil
}

// FirstCommit returns the oldest commit reachable from branch.
func (c *Client) FirstCommit(ctx context.Context, owner, repo, branch string) (*landscape.Commit, error) {
	opts := &gh.CommitsListOptions{SHA: branch, ListOptions: gh.ListOptions{PerPage: 1}}
	commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, wrap(err, "list commits %s/%s", owner, repo)
	}
	if resp.LastPage > 1 {
		opts.Page = resp.LastPage
		commits, _, err = c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return nil, wrap(err, "list commits %s/%s page %d", owner, repo, opts.Page)
		}
	}
	return firstOf(commits, owner, repo)
}

// LatestCommit returns the newest commit on branch.
func (c *Client) LatestCommit(ctx context.Context, owner, repo, branch string) (*landscape.Commit, error) {
	opts := &gh.CommitsListOptions{SHA: branch, ListOptions: gh.ListOptions{PerPage: 1}}
	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, wrap(err, "list commits %s/%s", owner, repo)
	}
	return firstOf(commits, owner, repo)
}

// LatestRelease returns the latest published release, or nil when the
// repository has none.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (*landscape.Release, error) {
	rel, resp, err := c.gh.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, wrap(err, "get latest release %s/%s", owner, repo)
	}
	r := &landscape.Release{URL: rel.GetHTMLURL()}
	if ts := rel.GetPublishedAt(); !ts.IsZero() {
		t := ts.Time
		r.TS = &t
	}
	return r, nil
}

// Languages returns the number of bytes of code per language.
func (c *Client) Languages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	langs, _, err := c.gh.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, wrap(err, "list languages %s/%s", owner, repo)
	}
	out := make(map[string]int64, len(langs))
	for lang, n := range langs {
		out[lang] = int64(n)
	}
	return out, nil
}

// Participation returns the weekly commit counts for the last year, oldest
// week first. GitHub answers 202 while it computes the statistics; that is
// reported as an error so the repository is retried on the next run.
func (c *Client) Participation(ctx context.Context, owner, repo string) ([]int, error) {
	p, _, err := c.gh.Repositories.ListParticipation(ctx, owner, repo)
	if err != nil {
		return nil, wrap(err, "participation stats %s/%s", owner, repo)
	}
	return p.All, nil
}

func firstOf(commits []*gh.RepositoryCommit, owner, repo string) (*landscape.Commit, error) {
	if len(commits) == 0 {
		return nil, errors.New(errors.ErrCodeUpstream, "no commits in %s/%s", owner, repo)
	}
	rc := commits[0]
	c := &landscape.Commit{URL: rc.GetHTMLURL()}
	if ts := rc.GetCommit().GetAuthor().GetDate(); !ts.IsZero() {
		t := ts.Time
		c.TS = &t
	}
	return c, nil
}

func wrap(err error, format string, args ...any) error {
	var rle *gh.RateLimitError
	var are *gh.AbuseRateLimitError
	code := errors.ErrCodeUpstream
	if stderrors.As(err, &rle) || stderrors.As(err, &are) {
		code = errors.ErrCodeRateLimited
	}
	return errors.Wrap(code, err, format, args...)
}
