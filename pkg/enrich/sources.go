package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bomstock/pkg/distributor"
	"github.com/matzehuels/bomstock/pkg/distributor/digikey"
	"github.com/matzehuels/bomstock/pkg/distributor/mouser"
)

// Distributor names as they appear in column headers.
const (
	NameMouser  = "Mouser"
	NameDigiKey = "DigiKey"
)

// MouserSource searches Mouser by part number.
type MouserSource struct {
	Client *mouser.Client
	Clock  distributor.Clock
}

// NewMouserSource creates a Mouser source using the wall clock.
func NewMouserSource(client *mouser.Client) *MouserSource {
	return &MouserSource{Client: client}
}

// Name implements Source.
func (s *MouserSource) Name() string { return NameMouser }

// Lookup implements Source.
func (s *MouserSource) Lookup(ctx context.Context, mpn string) (distributor.Result, error) {
	resp, err := s.Client.SearchPart(ctx, mpn)
	if err != nil {
		return distributor.Result{}, err
	}
	return mouser.Extract(resp, s.Clock.Now())
}

// TokenSource returns a DigiKey bearer token. Forget drops a cached token
// so the next Token call exchanges credentials again.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Forget(ctx context.Context) error
}

// DigiKeySource fetches DigiKey product details with a bearer token that
// is obtained once per run and replaced when the API rejects it.
type DigiKeySource struct {
	Client       *digikey.Client
	Tokens       TokenSource
	PackageTypes []int
	Clock        distributor.Clock
	Logger       *log.Logger

	mu       sync.Mutex
	prepared bool
	token    string
	err      error
}

// NewDigiKeySource creates a DigiKey source. A nil packageTypes selects
// [digikey.DefaultPackageTypes].
func NewDigiKeySource(client *digikey.Client, tokens TokenSource, packageTypes []int, logger *log.Logger) *DigiKeySource {
	if packageTypes == nil {
		packageTypes = digikey.DefaultPackageTypes
	}
	if logger == nil {
		logger = log.Default()
	}
	return &DigiKeySource{
		Client:       client,
		Tokens:       tokens,
		PackageTypes: packageTypes,
		Logger:       logger,
	}
}

// Name implements Source.
func (s *DigiKeySource) Name() string { return NameDigiKey }

// Prepare obtains the access token. Only the first call does any work;
// later calls return the same outcome.
func (s *DigiKeySource) Prepare(ctx context.Context) error {
	_, err := s.current(ctx)
	return err
}

func (s *DigiKeySource) current(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.prepared {
		s.prepared = true
		s.token, s.err = s.Tokens.Token(ctx)
		if s.err != nil {
			s.Logger.Error("failed to obtain DigiKey access token", "err", s.err)
		}
	}
	return s.token, s.err
}

// refresh replaces a rejected token. Workers that hit the same rejection
// share one exchange: if the token already changed, the new one is returned.
func (s *DigiKeySource) refresh(ctx context.Context, rejected string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil || s.token != rejected {
		return s.token, s.err
	}
	if err := s.Tokens.Forget(ctx); err != nil {
		s.Logger.Warn("failed to forget cached DigiKey access token", "err", err)
	}
	s.token, s.err = s.Tokens.Token(ctx)
	if s.err != nil {
		s.Logger.Error("failed to refresh DigiKey access token", "err", s.err)
	} else {
		s.Logger.Debug("refreshed DigiKey access token")
	}
	return s.token, s.err
}

// Lookup implements Source. It returns ErrUnavailable when no token could
// be obtained. A request rejected as unauthorized is retried once with a
// fresh token.
func (s *DigiKeySource) Lookup(ctx context.Context, mpn string) (distributor.Result, error) {
	token, err := s.current(ctx)
	if err != nil {
		return distributor.Result{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	details, err := s.Client.FetchProduct(ctx, token, mpn)
	if errors.Is(err, distributor.ErrUnauthorized) {
		fresh, rerr := s.refresh(ctx, token)
		if rerr != nil {
			return distributor.Result{}, err
		}
		details, err = s.Client.FetchProduct(ctx, fresh, mpn)
	}
	if err != nil {
		return distributor.Result{}, err
	}
	return digikey.Extract(details, s.PackageTypes, s.Clock.Now())
}
