package crunchbase

import (
	"math"
	"time"

	"github.com/matzehuels/landscaper/pkg/landscape"
)

// recentYears bounds the acquisitions and funding rounds kept on a snapshot.
const recentYears = 5

// employeeRanges maps num_employees_enum buckets to employee counts.
// A zero max means the bucket is open ended.
var employeeRanges = map[string]struct{ min, max int64 }{
	"c_00001_00010": {1, 10},
	"c_00011_00050": {11, 50},
	"c_00051_00100": {51, 100},
	"c_00101_00250": {101, 250},
	"c_00251_00500": {251, 500},
	"c_00501_01000": {501, 1000},
	"c_01001_05000": {1001, 5000},
	"c_05001_10000": {5001, 10000},
	"c_10001_max":   {10001, 0},
}

type orgResponse struct {
	Properties struct {
		Identifier          identifier      `json:"identifier"`
		ShortDescription    string          `json:"short_description"`
		Description         string          `json:"description"`
		Categories          []identifier    `json:"categories"`
		LocationIdentifiers []location      `json:"location_identifiers"`
		WebsiteURL          string          `json:"website_url"`
		NumEmployeesEnum    string          `json:"num_employees_enum"`
		FundingTotal        *money          `json:"funding_total"`
		LinkedIn            *valueContainer `json:"linkedin"`
		Twitter             *valueContainer `json:"twitter"`
		Facebook            *valueContainer `json:"facebook"`
	} `json:"properties"`
	Cards struct {
		Acquisitions  []acquisition  `json:"acquiree_acquisitions"`
		FundingRounds []fundingRound `json:"raised_funding_rounds"`
	} `json:"cards"`
}

type identifier struct {
	Value     string `json:"value"`
	Permalink string `json:"permalink"`
}

type location struct {
	Value        string `json:"value"`
	LocationType string `json:"location_type"`
}

type money struct {
	ValueUSD *float64 `json:"value_usd"`
}

type valueContainer struct {
	Value string `json:"value"`
}

type dateContainer struct {
	Value string `json:"value"` // YYYY-MM-DD
}

type acquisition struct {
	AcquireeIdentifier identifier     `json:"acquiree_identifier"`
	AnnouncedOn        *dateContainer `json:"announced_on"`
	Price              *money         `json:"price"`
}

type fundingRound struct {
	AnnouncedOn    *dateContainer `json:"announced_on"`
	InvestmentType string         `json:"investment_type"`
	MoneyRaised    *money         `json:"money_raised"`
}

// toOrganization projects the nested API response into the normalized
// snapshot. Acquisitions and funding rounds older than recentYears before
// now are dropped.
func (r *orgResponse) toOrganization(now time.Time) *landscape.Organization {
	p := r.Properties
	org := &landscape.Organization{
		Name:        p.Identifier.Value,
		Description: p.ShortDescription,
		HomepageURL: p.WebsiteURL,
		Funding:     p.FundingTotal.usd(),
		LinkedInURL: p.LinkedIn.value(),
		TwitterURL:  p.Twitter.value(),
		FacebookURL: p.Facebook.value(),
	}
	if org.Description == "" {
		org.Description = p.Description
	}

	for _, loc := range p.LocationIdentifiers {
		switch loc.LocationType {
		case "city":
			org.City = loc.Value
		case "region":
			org.Region = loc.Value
		case "country":
			org.Country = loc.Value
		}
	}

	if rng, ok := employeeRanges[p.NumEmployeesEnum]; ok {
		org.NumEmployeesMin = i64(rng.min)
		if rng.max > 0 {
			org.NumEmployeesMax = i64(rng.max)
		}
	}

	for _, c := range p.Categories {
		org.Categories = append(org.Categories, c.Value)
	}

	cutoff := now.AddDate(-recentYears, 0, 0)
	for _, a := range r.Cards.Acquisitions {
		on := a.AnnouncedOn.date()
		if on == nil || on.Before(cutoff) {
			continue
		}
		org.Acquisitions = append(org.Acquisitions, landscape.Acquisition{
			AcquireeName:        a.AcquireeIdentifier.Value,
			AcquireeCBPermalink: a.AcquireeIdentifier.Permalink,
			AnnouncedOn:         on,
			PriceUSD:            a.Price.usd(),
		})
	}
	for _, f := range r.Cards.FundingRounds {
		on := f.AnnouncedOn.date()
		if on == nil || on.Before(cutoff) {
			continue
		}
		org.FundingRounds = append(org.FundingRounds, landscape.FundingRound{
			AnnouncedOn: on,
			Kind:        f.InvestmentType,
			AmountUSD:   f.MoneyRaised.usd(),
		})
	}
	return org
}

func (m *money) usd() *int64 {
	if m == nil || m.ValueUSD == nil {
		return nil
	}
	return i64(int64(math.Round(*m.ValueUSD)))
}

func (v *valueContainer) value() string {
	if v == nil {
		return ""
	}
	return v.Value
}

func (d *dateContainer) date() *time.Time {
	if d == nil || d.Value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", d.Value)
	if err != nil {
		return nil
	}
	return &t
}

func i64(v int64) *int64 { return &v }
