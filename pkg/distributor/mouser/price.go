package mouser

import (
	"strings"

	"github.com/shopspring/decimal"

	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

// FormatPrice parses a Mouser price string.
//
// The euro sign and surrounding spaces are removed and a comma is read as
// the decimal separator, so "0,41 €" parses as 0.41 and "1,23" as 1.23.
//
// Known limitation: thousands separators are not understood. "€1.500,75"
// becomes "1.500.75" and fails with PARSE_ERROR, and "€ 1,234" parses as
// 1.234. Other currency symbols are not stripped.
func FormatPrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "€", ""))
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, bserrors.Wrap(bserrors.ErrCodeParse, err, "price %q", raw)
	}
	return d, nil
}
