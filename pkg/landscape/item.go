package landscape

// Item is a cataloged landscape entity.
type Item struct {
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Subcategory  string          `json:"subcategory,omitempty"`
	HomepageURL  string          `json:"homepage_url,omitempty"`
	Crunchbase   string          `json:"crunchbase_url,omitempty"` // Organization profile URL
	Repositories []RepositoryRef `json:"repositories,omitempty"`

	// Set by enrichment.
	Organization *Organization `json:"crunchbase_data,omitempty"`
	OSS          bool          `json:"oss,omitempty"`
}

// RepositoryRef is a reference from an item to a source repository.
type RepositoryRef struct {
	URL     string `json:"url"`
	Branch  string `json:"branch,omitempty"`
	Primary bool   `json:"primary,omitempty"`

	// Set by enrichment.
	Data *Repository `json:"github_data,omitempty"`
}

// PrimaryRepository returns the first reference marked primary, or nil.
func (it *Item) PrimaryRepository() *RepositoryRef {
	for i := range it.Repositories {
		if it.Repositories[i].Primary {
			return &it.Repositories[i]
		}
	}
	return nil
}
