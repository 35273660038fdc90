package enrich

import (
	"context"
	"errors"

	"github.com/matzehuels/bomstock/pkg/distributor"
)

// ErrUnavailable is returned by a source that cannot serve any lookup in
// this run, such as DigiKey without an access token.
var ErrUnavailable = errors.New("source unavailable")

// Source looks up one part number at one distributor.
type Source interface {
	// Name is the distributor name used in column headers and the review
	// list ("Mouser", "DigiKey").
	Name() string

	// Lookup fetches and extracts a part. Errors carry a bomstock error
	// code; ErrUnavailable means the source is disabled for the run.
	Lookup(ctx context.Context, mpn string) (distributor.Result, error)
}

// Preparer is implemented by sources that need one-time setup before the
// first lookup. A failed Prepare is not fatal: the source reports
// ErrUnavailable from then on.
type Preparer interface {
	Prepare(ctx context.Context) error
}
