package mouser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/matzehuels/bomstock/pkg/distributor"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

// DefaultBaseURL is the production Mouser API host.
const DefaultBaseURL = "https://api.mouser.com"

// partSearchOptions is sent verbatim; Mouser treats unknown values as the
// default exact-or-begins-with search.
const partSearchOptions = "string"

// Client provides access to the Mouser Search API v1.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*distributor.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Mouser client authenticated with a static API key.
// An empty baseURL means [DefaultBaseURL]; a nil httpClient uses the
// default timeout client.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client: distributor.NewClient(httpClient, map[string]string{
			"Accept": "application/json",
		}),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// SearchPart runs a part number search for mpn.
//
// Exactly one request is made; there is no retry and no caching.
//
// Returns:
//   - SearchResponse on success; it may hold zero parts
//   - [distributor.ErrAPI] if Mouser lists errors in the response body
//   - [distributor.ErrUnauthorized], [distributor.ErrNetwork],
//     [distributor.ErrDecode] as for every distributor call
func (c *Client) SearchPart(ctx context.Context, mpn string) (*SearchResponse, error) {
	endpoint := fmt.Sprintf("%s/api/v1/search/partnumber?apiKey=%s", c.baseURL, url.QueryEscape(c.apiKey))
	body := SearchRequest{
		SearchByPartRequest: PartRequest{
			MouserPartNumber:  mpn,
			PartSearchOptions: partSearchOptions,
		},
	}

	var resp SearchResponse
	if err := c.PostJSON(ctx, endpoint, body, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, bserrors.Wrap(bserrors.ErrCodeAPI, distributor.ErrAPI, "mouser part %s: %s", mpn, joinErrors(resp.Errors))
	}
	return &resp, nil
}

func joinErrors(errs []APIError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch {
		case e.Message != "":
			msgs = append(msgs, e.Message)
		case e.Code != "":
			msgs = append(msgs, e.Code)
		default:
			msgs = append(msgs, fmt.Sprintf("error %d", e.ID))
		}
	}
	return strings.Join(msgs, "; ")
}
