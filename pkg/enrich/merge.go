package enrich

import "github.com/matzehuels/landscaper/pkg/landscape"

// References returns the distinct organization profile URLs and repository
// URLs carried by items, each sorted.
func References(items []landscape.Item) (orgURLs, repoURLs []string) {
	for _, it := range items {
		orgURLs = append(orgURLs, it.Crunchbase)
		for _, ref := range it.Repositories {
			repoURLs = append(repoURLs, ref.URL)
		}
	}
	return distinct(orgURLs), distinct(repoURLs)
}

// Merge returns copies of items with the collected snapshots attached.
//
// An item's Organization and each reference's Data are replaced with the
// mapping's entry, or cleared when the mapping has none. OSS is set when a
// primary repository resolved to a non-empty license. Merge does not modify
// its arguments, so applying it twice yields the same result.
func Merge(items []landscape.Item, orgs map[string]landscape.Organization, repos map[string]landscape.Repository) []landscape.Item {
	out := make([]landscape.Item, len(items))
	for i, it := range items {
		it.Organization = nil
		if org, ok := orgs[it.Crunchbase]; ok && it.Crunchbase != "" {
			it.Organization = &org
		}

		it.OSS = false
		if it.Repositories != nil {
			refs := make([]landscape.RepositoryRef, len(it.Repositories))
			for j, ref := range it.Repositories {
				ref.Data = nil
				if r, ok := repos[ref.URL]; ok {
					ref.Data = &r
				}
				if ref.Primary && ref.Data != nil && ref.Data.License != "" {
					it.OSS = true
				}
				refs[j] = ref
			}
			it.Repositories = refs
		}
		out[i] = it
	}
	return out
}
