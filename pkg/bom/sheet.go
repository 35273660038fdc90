package bom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

const (
	// ColumnMPN holds the manufacturer part number.
	ColumnMPN = "MPN"

	// ColumnReference holds the board designators of the line item.
	ColumnReference = "Reference"

	// DefaultPattern matches versioned BOM exports such as board_v3_BOM.csv.
	DefaultPattern = "*_v*_BOM.csv"

	// outputSuffix is inserted before the extension of the output file.
	outputSuffix = "_availability"
)

// utf8BOM is stripped from the first header cell; spreadsheet tools add it
// to CSV exports.
const utf8BOM = "\ufeff"

// Sheet is a BOM held in memory. Rows are padded to the header width.
type Sheet struct {
	Header []string
	Rows   [][]string

	mpn int
	ref int
}

// Discover returns the first file in dir matching pattern, in lexical order
// so repeated runs pick the same file.
func Discover(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", bserrors.Wrap(bserrors.ErrCodeInvalidInput, err, "bad pattern %q", pattern)
	}
	if len(matches) == 0 {
		return "", bserrors.New(bserrors.ErrCodeFileNotFound, "no files found matching the pattern: %s", pattern)
	}
	sort.Strings(matches)
	return matches[0], nil
}

// Load reads a BOM CSV. The MPN and Reference columns are required.
func Load(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, bserrors.Wrap(bserrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, bserrors.Wrap(bserrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a BOM from r. Short rows are padded; a row wider than the
// header is rejected since appended columns would land under the wrong names.
func Read(r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, bserrors.New(bserrors.ErrCodeInvalidInput, "BOM has no header row")
		}
		return nil, bserrors.Wrap(bserrors.ErrCodeInvalidInput, err, "read BOM header")
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	if err := bserrors.ValidateColumns(header, ColumnMPN, ColumnReference); err != nil {
		return nil, err
	}

	s := &Sheet{Header: header, mpn: -1, ref: -1}
	for i, h := range header {
		switch {
		case h == ColumnMPN && s.mpn < 0:
			s.mpn = i
		case h == ColumnReference && s.ref < 0:
			s.ref = i
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, bserrors.Wrap(bserrors.ErrCodeInvalidInput, err, "read BOM")
		}
		if len(rec) > len(header) {
			return nil, bserrors.New(bserrors.ErrCodeInvalidInput,
				"read BOM: row %d has %d fields, header has %d", len(s.Rows)+1, len(rec), len(header))
		}
		if len(rec) < len(header) {
			rec = append(rec, make([]string, len(header)-len(rec))...)
		}
		s.Rows = append(s.Rows, rec)
	}
	return s, nil
}

// Len returns the number of data rows.
func (s *Sheet) Len() int { return len(s.Rows) }

// MPN returns the part number of row i as written in the file.
func (s *Sheet) MPN(i int) string { return s.Rows[i][s.mpn] }

// Reference returns the designators of row i.
func (s *Sheet) Reference(i int) string { return s.Rows[i][s.ref] }

// OutputPath derives the output file name from the input path by inserting
// "_availability" before the extension and replacing it with ext.
// board_v3_BOM.csv becomes board_v3_BOM_availability.csv.
func OutputPath(input, ext string) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	return stem + outputSuffix + ext
}
