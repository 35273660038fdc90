// Package history records enrichment runs so prices can be compared over
// time.
//
// Each run gets a UUID. One [Lookup] document is stored per row and
// distributor. Recording is optional: [Open] with an empty location returns
// a [NullStore].
package history

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bomstock/pkg/distributor"
	"github.com/matzehuels/bomstock/pkg/enrich"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

// Store persists lookups.
type Store interface {
	// Save stores every lookup of one run.
	Save(ctx context.Context, lookups []Lookup) error

	// Latest returns up to limit stored lookups of mpn, newest first.
	Latest(ctx context.Context, mpn string, limit int64) ([]Lookup, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}

// Lookup is the stored outcome of one source for one row.
type Lookup struct {
	RunID      string             `bson:"run_id" json:"run_id"`
	Input      string             `bson:"input" json:"input"`
	Row        int                `bson:"row" json:"row"`
	Reference  string             `bson:"reference" json:"reference"`
	MPN        string             `bson:"mpn" json:"mpn"`
	Source     string             `bson:"source" json:"source"`
	Result     distributor.Result `bson:"result" json:"result"`
	Flagged    bool               `bson:"flagged" json:"flagged"`
	Code       string             `bson:"code,omitempty" json:"code,omitempty"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	RecordedAt time.Time          `bson:"recorded_at" json:"recorded_at"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Lookups flattens a report into one Lookup per row and source.
func Lookups(runID, input string, rep *enrich.Report) []Lookup {
	out := make([]Lookup, 0, len(rep.Rows)*len(rep.Sources))
	for _, row := range rep.Rows {
		for _, o := range row.Outcomes {
			l := Lookup{
				RunID:      runID,
				Input:      input,
				Row:        row.Row,
				Reference:  row.Reference,
				MPN:        row.MPN,
				Source:     o.Source,
				Result:     o.Result,
				Flagged:    o.Flagged(),
				RecordedAt: rep.Started,
			}
			if o.Err != nil {
				l.Code = string(bserrors.GetCode(o.Err))
				l.Error = o.Err.Error()
			}
			out = append(out, l)
		}
	}
	return out
}

// Open returns the store for location. An empty location disables history;
// mongodb:// and mongodb+srv:// URIs connect to MongoDB.
func Open(ctx context.Context, location string) (Store, error) {
	switch {
	case location == "" || location == "none":
		return NullStore{}, nil
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		s, err := NewMongoStore(ctx, location)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, bserrors.New(bserrors.ErrCodeInvalidConfig, "unsupported history location %q", location)
	}
}

// NullStore discards everything.
type NullStore struct{}

func (NullStore) Save(context.Context, []Lookup) error { return nil }
func (NullStore) Close(context.Context) error          { return nil }

func (NullStore) Latest(context.Context, string, int64) ([]Lookup, error) { return nil, nil }
