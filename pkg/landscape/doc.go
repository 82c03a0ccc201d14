// Package landscape defines the landscape item model and the snapshots the
// enrichment pipeline attaches to it.
//
// An [Item] may reference one organization profile (a Crunchbase URL) and
// zero or more source repositories. After enrichment an item carries an
// [Organization] snapshot, a [Repository] snapshot per reference, and the
// derived OSS flag.
//
// Snapshots are immutable values stamped with GeneratedAt when they are
// created. They are replaced wholesale by a later snapshot for the same key,
// never edited in place.
//
// [Load] reads a landscape YAML file into items. It performs no validation
// beyond decoding; a full catalog validator lives outside this module.
package landscape
