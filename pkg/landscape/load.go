package landscape

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// file mirrors the parts of a landscape.yml the enrichment pipeline reads.
type file struct {
	Categories []struct {
		Name          string `yaml:"name"`
		Subcategories []struct {
			Name  string `yaml:"name"`
			Items []struct {
				Name            string `yaml:"name"`
				HomepageURL     string `yaml:"homepage_url"`
				Crunchbase      string `yaml:"crunchbase"`
				RepoURL         string `yaml:"repo_url"`
				Branch          string `yaml:"branch"`
				AdditionalRepos []struct {
					RepoURL string `yaml:"repo_url"`
					Branch  string `yaml:"branch"`
				} `yaml:"additional_repos"`
			} `yaml:"items"`
		} `yaml:"subcategories"`
	} `yaml:"landscape"`
}

// Load reads a landscape YAML file and returns its items in file order.
func Load(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read landscape file: %w", err)
	}
	return Parse(data)
}

// Parse decodes landscape YAML. The item's repo_url becomes its primary
// repository; additional_repos become non-primary references.
func Parse(data []byte) ([]Item, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse landscape file: %w", err)
	}

	var items []Item
	for _, cat := range f.Categories {
		for _, sub := range cat.Subcategories {
			for _, raw := range sub.Items {
				it := Item{
					Name:        raw.Name,
					Category:    cat.Name,
					Subcategory: sub.Name,
					HomepageURL: strings.TrimSpace(raw.HomepageURL),
					Crunchbase:  strings.TrimSpace(raw.Crunchbase),
				}
				if u := strings.TrimSpace(raw.RepoURL); u != "" {
					it.Repositories = append(it.Repositories, RepositoryRef{
						URL:     u,
						Branch:  raw.Branch,
						Primary: true,
					})
				}
				for _, r := range raw.AdditionalRepos {
					if u := strings.TrimSpace(r.RepoURL); u != "" {
						it.Repositories = append(it.Repositories, RepositoryRef{URL: u, Branch: r.Branch})
					}
				}
				items = append(items, it)
			}
		}
	}
	return items, nil
}
