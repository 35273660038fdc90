// Package distributor provides the shared HTTP client and the normalized
// result type for electronic-component distributor APIs.
//
// # Overview
//
// Each distributor has its own subpackage:
//
//   - [digikey]: DigiKey Product Information v4 (OAuth2 client credentials)
//   - [mouser]: Mouser Search API v1 (static API key)
//
// A subpackage owns three things: the typed records that mirror the API's
// JSON, a Client that performs exactly one request per part number, and an
// Extract function that turns a record into a [Result].
//
// # Result and sentinels
//
// [Result] is the four-column tuple written into the BOM. Every field is
// always populated:
//
//   - a value extracted from the record,
//   - [NotAvailable] ("N/A") when the record is valid but omits that field,
//   - [Sentinel] ("/") when the lookup failed.
//
// Extract functions never produce the sentinel themselves. They return a
// coded error from [errors] and the orchestrator substitutes [Failed] in one
// place.
//
// # Shared client
//
// [Client] handles default headers, JSON encode/decode, and maps HTTP
// status codes to [ErrNotFound], [ErrUnauthorized] and [ErrNetwork]. It does
// not retry: a failed call is reported once and the row is flagged for
// manual review.
//
// [digikey]: github.com/matzehuels/bomstock/pkg/distributor/digikey
// [mouser]: github.com/matzehuels/bomstock/pkg/distributor/mouser
// [errors]: github.com/matzehuels/bomstock/pkg/errors
package distributor
