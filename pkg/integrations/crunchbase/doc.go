// Package crunchbase fetches organization profiles from the Crunchbase v4 API.
//
// [Client.FetchOrganization] issues one request per permalink, asking for a
// fixed set of fields and the acquisitions and funding rounds cards, and
// projects the nested response into a [landscape.Organization].
//
// The client does not rate limit; callers share one limiter across all
// requests made with the same API key.
//
// [landscape.Organization]: github.com/matzehuels/landscaper/pkg/landscape.Organization
package crunchbase
