package bom

import (
	"fmt"
	"strings"

	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

// Column is a named list of values to append to a sheet, one per row.
type Column struct {
	Name   string
	Values []string
}

// Append returns a copy of s with cols added on the right.
//
// Every column must hold exactly one value per row. Otherwise Append
// returns a COLUMN_MISMATCH error listing each column's length, and s is
// left unchanged.
func (s *Sheet) Append(cols []Column) (*Sheet, error) {
	if err := checkLengths(cols, s.Len()); err != nil {
		return nil, err
	}

	out := &Sheet{
		Header: make([]string, 0, len(s.Header)+len(cols)),
		Rows:   make([][]string, len(s.Rows)),
		mpn:    s.mpn,
		ref:    s.ref,
	}
	out.Header = append(out.Header, s.Header...)
	for _, c := range cols {
		out.Header = append(out.Header, c.Name)
	}
	for i, row := range s.Rows {
		r := make([]string, 0, len(row)+len(cols))
		r = append(r, row...)
		for _, c := range cols {
			r = append(r, c.Values[i])
		}
		out.Rows[i] = r
	}
	return out, nil
}

func checkLengths(cols []Column, rows int) error {
	ok := true
	for _, c := range cols {
		if len(c.Values) != rows {
			ok = false
			break
		}
	}
	if ok {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "mismatch in the length of new columns and BOM rows (%d rows)", rows)
	for _, c := range cols {
		fmt.Fprintf(&b, "\n  %s length: %d", c.Name, len(c.Values))
	}
	return bserrors.New(bserrors.ErrCodeColumnMismatch, "%s", b.String())
}
