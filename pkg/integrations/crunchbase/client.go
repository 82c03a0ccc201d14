package crunchbase

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/landscaper/pkg/errors"
	"github.com/matzehuels/landscaper/pkg/integrations"
	"github.com/matzehuels/landscaper/pkg/landscape"
)

const defaultBaseURL = "https://api.crunchbase.com/api/v4"

// fieldIDs and cardIDs select what the organization lookup returns.
var (
	fieldIDs = []string{
		"categories",
		"description",
		"facebook",
		"funding_total",
		"identifier",
		"linkedin",
		"location_identifiers",
		"num_employees_enum",
		"short_description",
		"twitter",
		"website_url",
	}
	cardIDs = []string{"acquiree_acquisitions", "raised_funding_rounds"}
)

var permalinkPattern = regexp.MustCompile(`^https?://[^/]+/organization/([^/?#]+)/?$`)

// Client provides access to the Crunchbase organizations API.
type Client struct {
	*integrations.Client
	baseURL string
	now     func() time.Time
}

// NewClient creates a Crunchbase client authenticated with apiKey.
func NewClient(apiKey string) *Client {
	return &Client{
		Client:  integrations.NewClient(map[string]string{"X-cb-user-key": apiKey}),
		baseURL: defaultBaseURL,
		now:     time.Now,
	}
}

// FetchOrganization looks up the organization identified by permalink.
// The returned snapshot has a zero GeneratedAt; the caller stamps it.
func (c *Client) FetchOrganization(ctx context.Context, permalink string) (*landscape.Organization, error) {
	q := url.Values{}
	q.Set("field_ids", strings.Join(fieldIDs, ","))
	q.Set("card_ids", strings.Join(cardIDs, ","))
	u := fmt.Sprintf("%s/entities/organizations/%s?%s", c.baseURL, url.PathEscape(permalink), q.Encode())

	var data orgResponse
	if err := c.Get(ctx, u, &data); err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeUpstream
		}
		return nil, errors.Wrap(code, err, "crunchbase organization %s", permalink)
	}
	return data.toOrganization(c.now()), nil
}

// ParsePermalink extracts the permalink from an organization profile URL
// of the form https://<host>/organization/<permalink>.
func ParsePermalink(profileURL string) (string, error) {
	m := permalinkPattern.FindStringSubmatch(profileURL)
	if m == nil {
		return "", errors.New(errors.ErrCodeInvalidReference, "invalid crunchbase url: %s", profileURL)
	}
	return m[1], nil
}
