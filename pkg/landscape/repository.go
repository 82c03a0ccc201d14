package landscape

import "time"

// NoAssertion is the license identifier GitHub reports when it cannot
// determine a repository's license. It is stored as an empty license.
const NoAssertion = "NOASSERTION"

// ParticipationWeeks is the length of Repository.ParticipationStats.
const ParticipationWeeks = 52

// Repository is a snapshot of a source repository's metadata.
type Repository struct {
	GeneratedAt        time.Time        `json:"generated_at"`
	Contributors       Contributors     `json:"contributors"`
	Description        string           `json:"description,omitempty"`
	FirstCommit        Commit           `json:"first_commit"`
	LatestCommit       Commit           `json:"latest_commit"`
	LatestRelease      *Release         `json:"latest_release,omitempty"`
	Languages          map[string]int64 `json:"languages,omitempty"` // Bytes of code per language
	License            string           `json:"license,omitempty"`
	ParticipationStats []int            `json:"participation_stats"` // Weekly commit counts, oldest first
	Stars              int              `json:"stars"`
	URL                string           `json:"url"`
}

// Contributors summarizes a repository's contributor list.
type Contributors struct {
	Count int    `json:"count"`
	URL   string `json:"url"`
}

// Commit points at a single commit.
type Commit struct {
	TS  *time.Time `json:"ts,omitempty"`
	URL string     `json:"url"`
}

// Release points at a published release.
type Release struct {
	TS  *time.Time `json:"ts,omitempty"`
	URL string     `json:"url"`
}

// NormalizeLicense maps GitHub's "no assertion" sentinel to the empty string.
func NormalizeLicense(spdxID string) string {
	if spdxID == NoAssertion {
		return ""
	}
	return spdxID
}
