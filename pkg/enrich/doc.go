// Package enrich walks the rows of a BOM and looks up every part number at
// each configured distributor.
//
// # Sources
//
// A [Source] fetches one part from one distributor and extracts a
// normalized [distributor.Result]. [MouserSource] and [DigiKeySource] adapt
// the distributor clients; tests substitute their own.
//
// # Failure policy
//
// The [Runner] is the only place where a failed lookup becomes a sentinel
// tuple:
//
//   - invalid part number: every source gets [distributor.Blank] and the
//     row is listed once with [ReasonInvalidMPN]
//   - unavailable source (no DigiKey token): [distributor.Blank], row
//     listed under the source name
//   - fetch or extraction error: [distributor.Failed], row listed under the
//     source name
//
// No error escapes a row; every input row yields exactly one [RowResult].
// Only context cancellation aborts a run.
package enrich
