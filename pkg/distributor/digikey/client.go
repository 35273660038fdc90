package digikey

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/matzehuels/bomstock/pkg/distributor"
)

// DefaultBaseURL is the production DigiKey API host.
const DefaultBaseURL = "https://api.digikey.com"

// Locale selects the storefront whose prices and stock are returned.
type Locale struct {
	Site     string // ISO country code of the storefront (e.g., "BE")
	Language string // Two-letter language code (e.g., "en")
	Currency string // ISO 4217 currency code (e.g., "EUR")
}

// DefaultLocale is the Belgian storefront in English, priced in euro.
var DefaultLocale = Locale{Site: "BE", Language: "en", Currency: "EUR"}

// Client provides access to the DigiKey Product Information v4 API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*distributor.Client
	baseURL string
	locale  Locale
}

// NewClient creates a DigiKey client.
//
// Parameters:
//   - baseURL: API host, normally [DefaultBaseURL]
//   - clientID: OAuth client id, also sent as X-DIGIKEY-Client-Id
//   - locale: storefront selection; zero fields fall back to [DefaultLocale]
//   - httpClient: transport to use, nil for the default timeout client
func NewClient(baseURL, clientID string, locale Locale, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if locale.Site == "" {
		locale.Site = DefaultLocale.Site
	}
	if locale.Language == "" {
		locale.Language = DefaultLocale.Language
	}
	if locale.Currency == "" {
		locale.Currency = DefaultLocale.Currency
	}
	headers := map[string]string{
		"Accept":                    "application/json",
		"X-DIGIKEY-Client-Id":       clientID,
		"X-DIGIKEY-Locale-Site":     locale.Site,
		"X-DIGIKEY-Locale-Language": locale.Language,
		"X-DIGIKEY-Locale-Currency": locale.Currency,
	}
	return &Client{
		Client:  distributor.NewClient(httpClient, headers),
		baseURL: baseURL,
		locale:  locale,
	}
}

// FetchProduct retrieves the product details for one manufacturer part number.
//
// Exactly one request is made; there is no retry and no caching.
//
// Returns:
//   - ProductDetails decoded from the response on success
//   - [distributor.ErrNotFound] if DigiKey does not know the part
//   - [distributor.ErrUnauthorized] if the token is rejected
//   - [distributor.ErrNetwork] for transport failures and other statuses
//   - [distributor.ErrDecode] if the body is not the expected JSON
func (c *Client) FetchProduct(ctx context.Context, token, mpn string) (*ProductDetails, error) {
	endpoint := fmt.Sprintf("%s/products/v4/search/%s/productdetails", c.baseURL, url.PathEscape(mpn))

	var details ProductDetails
	err := c.GetWithHeaders(ctx, endpoint, map[string]string{
		"Authorization": "Bearer " + token,
	}, &details)
	if err != nil {
		if errors.Is(err, distributor.ErrNotFound) {
			return nil, fmt.Errorf("digikey part %s: %w", mpn, err)
		}
		return nil, err
	}
	return &details, nil
}
