package enrich

import (
	"time"

	"github.com/matzehuels/bomstock/pkg/bom"
	"github.com/matzehuels/bomstock/pkg/distributor"
)

// ReasonInvalidMPN is the review reason for rows without a usable part number.
const ReasonInvalidMPN = "Invalid or missing MPN"

// Column header suffixes, in output order.
var fieldNames = []string{"Unit Price", "Package Type", "Quantity Available", "Last Updated"}

// Outcome is the result of one source for one row.
type Outcome struct {
	Source string
	Result distributor.Result
	Err    error // nil on success
}

// Flagged reports whether the outcome needs manual review.
func (o Outcome) Flagged() bool { return o.Err != nil }

// RowResult holds every source's outcome for one BOM row.
type RowResult struct {
	Row       int // 1-based
	Reference string
	MPN       string
	Invalid   bool
	Outcomes  []Outcome // in source order
}

// Issue is one entry of the manual-review list.
type Issue struct {
	Row        int    `json:"row" yaml:"row"`
	Reference  string `json:"reference" yaml:"reference"`
	PartNumber string `json:"part_number" yaml:"part_number"`
	Source     string `json:"source" yaml:"source"`
}

// Report is the outcome of a run.
type Report struct {
	Sources  []string
	Rows     []RowResult
	Started  time.Time
	Duration time.Duration
}

// Issues returns the manual-review list in row order. Within a row, an
// invalid part number yields one issue; otherwise each flagged source
// yields one issue in source order.
func (r *Report) Issues() []Issue {
	var issues []Issue
	for _, row := range r.Rows {
		if row.Invalid {
			issues = append(issues, Issue{Row: row.Row, Reference: row.Reference, PartNumber: row.MPN, Source: ReasonInvalidMPN})
			continue
		}
		for _, o := range row.Outcomes {
			if o.Flagged() {
				issues = append(issues, Issue{Row: row.Row, Reference: row.Reference, PartNumber: row.MPN, Source: o.Source})
			}
		}
	}
	return issues
}

// Columns returns the four columns per source, in source order, ready to
// append to the sheet.
func (r *Report) Columns() []bom.Column {
	cols := make([]bom.Column, 0, len(r.Sources)*len(fieldNames))
	for si, name := range r.Sources {
		for fi, field := range fieldNames {
			values := make([]string, len(r.Rows))
			for ri, row := range r.Rows {
				if si < len(row.Outcomes) {
					values[ri] = row.Outcomes[si].Result.Fields()[fi]
				}
			}
			cols = append(cols, bom.Column{Name: ColumnName(name, field), Values: values})
		}
	}
	return cols
}

// ColumnName formats a column header such as "Mouser - Unit Price".
func ColumnName(source, field string) string {
	return source + " - " + field
}
