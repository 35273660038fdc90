package digikey

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/matzehuels/bomstock/pkg/cache"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
	"github.com/matzehuels/bomstock/pkg/observability"
)

const (
	tokenPath = "/v1/oauth2/token"

	// tokenSkew is subtracted from the token lifetime when caching so a
	// cached token is never handed out seconds before it expires.
	tokenSkew = time.Minute

	// MinTokenLife is the remaining lifetime a cached token needs to be
	// reused. A run started on a shorter-lived token would outlive it.
	MinTokenLife = 5 * time.Minute

	cacheKeyType = "token"
)

// TokenProvider exchanges a client id and secret for a bearer token using
// the OAuth2 client-credentials grant, and keeps the token in a cache so
// consecutive runs reuse it.
type TokenProvider struct {
	conf  clientcredentials.Config
	cache cache.Cache
	http  *http.Client
}

// NewTokenProvider creates a provider for the DigiKey API at baseURL.
// A nil backend disables token caching; a nil httpClient uses
// http.DefaultClient.
func NewTokenProvider(baseURL, clientID, clientSecret string, backend cache.Cache, httpClient *http.Client) *TokenProvider {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &TokenProvider{
		conf: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     baseURL + tokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		cache: cache.NewScoped(backend, "digikey:"),
		http:  httpClient,
	}
}

// cachedToken is the serialized form of a token in the cache.
type cachedToken struct {
	AccessToken string    `json:"access_token"`
	Expiry      time.Time `json:"expiry"`
}

// Token returns a valid access token, from the cache when possible. A cached
// token with less than [MinTokenLife] left is replaced by a fresh exchange.
// Cache failures are not fatal: the provider falls back to an exchange.
// Exchange failures are returned as UNAUTHORIZED errors.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	key := p.cacheKey()
	if data, hit, err := p.cache.Get(ctx, key); err == nil && hit {
		var tok cachedToken
		if json.Unmarshal(data, &tok) == nil && tok.AccessToken != "" && time.Until(tok.Expiry) >= MinTokenLife {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			return tok.AccessToken, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	tok, err := p.exchange(ctx)
	if err != nil {
		return "", err
	}

	if ttl := time.Until(tok.Expiry) - tokenSkew; !tok.Expiry.IsZero() && ttl > 0 {
		entry := cachedToken{AccessToken: tok.AccessToken, Expiry: tok.Expiry.Add(-tokenSkew)}
		if data, err := json.Marshal(entry); err == nil {
			if p.cache.Set(ctx, key, data, ttl) == nil {
				observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
			}
		}
	}
	return tok.AccessToken, nil
}

// Forget removes the cached token, forcing the next Token call to exchange.
func (p *TokenProvider) Forget(ctx context.Context) error {
	return p.cache.Delete(ctx, p.cacheKey())
}

func (p *TokenProvider) exchange(ctx context.Context) (*oauth2.Token, error) {
	if p.conf.ClientID == "" || p.conf.ClientSecret == "" {
		return nil, bserrors.New(bserrors.ErrCodeUnauthorized, "digikey client id or secret is empty")
	}
	if p.http != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.http)
	}
	tok, err := p.conf.Token(ctx)
	if err != nil {
		return nil, bserrors.Wrap(bserrors.ErrCodeUnauthorized, err, "digikey token exchange")
	}
	if tok.AccessToken == "" {
		return nil, bserrors.New(bserrors.ErrCodeUnauthorized, "digikey token response has no access_token")
	}
	return tok, nil
}

func (p *TokenProvider) cacheKey() string {
	return cache.Key("token", p.conf.ClientID, p.conf.TokenURL)
}
