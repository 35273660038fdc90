package enrich

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bomstock/pkg/bom"
	"github.com/matzehuels/bomstock/pkg/distributor"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
	"github.com/matzehuels/bomstock/pkg/observability"
)

// Runner looks up every row of a sheet at each source.
//
// Rows may be processed concurrently (Workers > 1), but results are kept
// in input order. Within a row, sources are queried one after another.
type Runner struct {
	Sources []Source
	Workers int
	Clock   distributor.Clock
	Logger  *log.Logger
}

// NewRunner creates a sequential runner over sources, in column order.
// If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger, sources ...Source) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Sources: sources,
		Workers: 1,
		Logger:  logger,
	}
}

// Prepare runs the one-time setup of every source that needs it. Failures
// are logged by the source and leave it unavailable; they never abort.
func (r *Runner) Prepare(ctx context.Context) {
	for _, s := range r.Sources {
		if p, ok := s.(Preparer); ok {
			_ = p.Prepare(ctx)
		}
	}
}

// Run looks up every row of sheet. It returns an error only when ctx is
// cancelled, in which case the partial report is discarded.
func (r *Runner) Run(ctx context.Context, sheet *bom.Sheet) (*Report, error) {
	start := time.Now()
	n := sheet.Len()
	observability.Enrich().OnRunStart(ctx, n)

	r.Prepare(ctx)

	report := &Report{
		Sources: r.names(),
		Rows:    make([]RowResult, n),
		Started: start,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Rows[i] = r.row(gctx, i+1, n, sheet.Reference(i), sheet.MPN(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Duration = time.Since(start)
	observability.Enrich().OnRunComplete(ctx, n, len(report.Issues()), report.Duration)
	return report, nil
}

// Lookup queries every source for a single part number, outside any sheet.
func (r *Runner) Lookup(ctx context.Context, mpn string) RowResult {
	r.Prepare(ctx)
	return r.row(ctx, 1, 1, "", mpn)
}

func (r *Runner) row(ctx context.Context, row, total int, reference, mpn string) RowResult {
	r.Logger.Info("processing row", "row", row, "of", total, "reference", reference, "mpn", mpn)
	observability.Enrich().OnRowStart(ctx, row, mpn)

	res := RowResult{
		Row:       row,
		Reference: reference,
		MPN:       mpn,
		Outcomes:  make([]Outcome, len(r.Sources)),
	}

	if err := bserrors.ValidatePartNumber(mpn); err != nil {
		r.Logger.Warn("part number is empty or invalid, filling with default values", "row", row, "mpn", mpn)
		res.Invalid = true
		for i, s := range r.Sources {
			res.Outcomes[i] = Outcome{Source: s.Name(), Result: distributor.Blank(), Err: err}
		}
		return res
	}

	part := strings.TrimSpace(mpn)
	for i, s := range r.Sources {
		res.Outcomes[i] = r.lookup(ctx, row, s, part)
	}
	return res
}

// lookup is the single place where a failed lookup becomes a sentinel tuple.
func (r *Runner) lookup(ctx context.Context, row int, s Source, mpn string) Outcome {
	start := time.Now()
	result, err := s.Lookup(ctx, mpn)
	observability.Enrich().OnLookupComplete(ctx, row, s.Name(), time.Since(start), err)

	out := Outcome{Source: s.Name(), Result: result, Err: err}
	switch {
	case err == nil:
	case errors.Is(err, ErrUnavailable):
		r.Logger.Debug("source unavailable", "source", s.Name(), "row", row)
		out.Result = distributor.Blank()
	case bserrors.IsExtraction(err):
		r.Logger.Warn("error processing details", "source", s.Name(), "mpn", mpn, "err", err)
		out.Result = distributor.Failed(r.Clock.Now())
	default:
		r.Logger.Warn("no details found", "source", s.Name(), "mpn", mpn, "err", err)
		out.Result = distributor.Failed(r.Clock.Now())
	}
	return out
}

func (r *Runner) names() []string {
	names := make([]string, len(r.Sources))
	for i, s := range r.Sources {
		names[i] = s.Name()
	}
	return names
}
