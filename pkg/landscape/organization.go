package landscape

import "time"

// Organization is a snapshot of an organization profile.
type Organization struct {
	GeneratedAt     time.Time      `json:"generated_at"`
	Name            string         `json:"name,omitempty"`
	Description     string         `json:"description,omitempty"`
	City            string         `json:"city,omitempty"`
	Region          string         `json:"region,omitempty"`
	Country         string         `json:"country,omitempty"`
	HomepageURL     string         `json:"homepage_url,omitempty"`
	NumEmployeesMin *int64         `json:"num_employees_min,omitempty"`
	NumEmployeesMax *int64         `json:"num_employees_max,omitempty"`
	Funding         *int64         `json:"funding,omitempty"` // Total funding in USD
	LinkedInURL     string         `json:"linkedin_url,omitempty"`
	TwitterURL      string         `json:"twitter_url,omitempty"`
	FacebookURL     string         `json:"facebook_url,omitempty"`
	Categories      []string       `json:"categories,omitempty"`
	Acquisitions    []Acquisition  `json:"acquisitions,omitempty"`
	FundingRounds   []FundingRound `json:"funding_rounds,omitempty"`
}

// Acquisition is an organization acquired by the profile's organization.
type Acquisition struct {
	AcquireeName        string     `json:"acquiree_name,omitempty"`
	AcquireeCBPermalink string     `json:"acquiree_cb_permalink,omitempty"`
	AnnouncedOn         *time.Time `json:"announced_on,omitempty"`
	PriceUSD            *int64     `json:"price,omitempty"`
}

// FundingRound is a funding event raised by the organization.
type FundingRound struct {
	AnnouncedOn *time.Time `json:"announced_on,omitempty"`
	Kind        string     `json:"kind,omitempty"`
	AmountUSD   *int64     `json:"amount,omitempty"`
}
