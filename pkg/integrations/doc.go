// Package integrations provides HTTP clients for the upstream directories
// the enrichment pipeline reads from.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [crunchbase]: organization profiles, keyed by permalink
//   - [github]: repository metadata, keyed by owner and name
//
// # Shared Infrastructure
//
// The [Client] type provides the plain JSON-over-HTTP plumbing shared by
// clients that do not have an SDK: default headers, status mapping to
// [ErrNotFound] and [ErrNetwork], and [observability] HTTP hooks.
//
// Clients never retry and never cache. Caching and freshness belong to the
// collectors in [enrich]; a failed request simply fails that reference for
// the current run.
//
// [crunchbase]: github.com/matzehuels/landscaper/pkg/integrations/crunchbase
// [github]: github.com/matzehuels/landscaper/pkg/integrations/github
// [observability]: github.com/matzehuels/landscaper/pkg/observability
// [enrich]: github.com/matzehuels/landscaper/pkg/enrich
package integrations
