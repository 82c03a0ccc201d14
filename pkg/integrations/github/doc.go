// Package github provides a client for the GitHub REST API.
//
// # Overview
//
// This package fetches the repository facts the enrichment pipeline stores
// on a [landscape.Repository]: repository metadata, contributor count,
// first and latest commit, latest release, language byte counts and the
// weekly commit participation series.
//
// It wraps github.com/google/go-github, one [Client] per API token. Each
// call is a single request except [Client.FirstCommit], which needs two.
//
// # Usage
//
//	client := github.NewClient(ctx, token)
//	info, err := client.Repository(ctx, "acme", "widget")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	count, err := client.ContributorsCount(ctx, "acme", "widget")
//
// # Pagination
//
// Contributor counts and the oldest commit are found without walking every
// page: listing with one item per page makes the last page number in the
// Link header equal to the item count, and that page holds the oldest item.
//
// # URL Parsing
//
// [ParseRepoURL] turns https://github.com/<owner>/<repo> into its parts and
// rejects anything else.
//
// [landscape.Repository]: github.com/matzehuels/landscaper/pkg/landscape.Repository
package github
