package errors

import (
	"strings"
	"unicode"
)

// maxPartNumberLen bounds the MPN sent to the distributors. Real part numbers
// are far shorter; anything longer is a spreadsheet accident.
const maxPartNumberLen = 128

// ValidatePartNumber checks that a manufacturer part number can be sent to a
// distributor. The BOM uses "/" as a placeholder for rows without a part
// (mechanical items, do-not-populate), so it is rejected together with the
// empty string.
//
// The rules:
//   - No empty or whitespace-only values
//   - Not the "/" placeholder
//   - No control characters
//   - Maximum length of 128 characters
func ValidatePartNumber(mpn string) error {
	mpn = strings.TrimSpace(mpn)
	if mpn == "" || mpn == "/" {
		return New(ErrCodeInvalidInput, "part number is empty or invalid (%q)", mpn)
	}

	if len(mpn) > maxPartNumberLen {
		return New(ErrCodeInvalidInput, "part number too long (max %d characters)", maxPartNumberLen)
	}

	for _, r := range mpn {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "part number contains invalid control characters")
		}
	}

	return nil
}

// ValidateColumns checks that header contains every required column name.
// Matching is exact; BOM exports are expected to use the canonical headers.
func ValidateColumns(header []string, required ...string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}

	var missing []string
	for _, r := range required {
		if !have[r] {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return New(ErrCodeInvalidInput, "missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
