// Package pkg provides the libraries behind bomstock, a tool that adds live
// distributor pricing and stock to a bill of materials.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [distributor] - Distributor clients and extractors (Mouser, DigiKey)
//  2. [enrich] - Row orchestration and the failure policy
//  3. [bom] - Spreadsheet input and output (CSV, XLSX)
//  4. Infrastructure - [config], [cache], [history], [report],
//     [observability], [errors]
//
// # Architecture
//
// The data flow of one run:
//
//	BOM CSV (MPN, Reference, ...)
//	         ↓
//	    [bom] package (discover + load)
//	         ↓
//	    [enrich] package (per row: Mouser, then DigiKey)
//	         ↓
//	    [distributor/mouser], [distributor/digikey] (fetch + extract)
//	         ↓
//	    [bom] package (append eight columns + write)
//	         ↓
//	    <stem>_availability.csv, review list
//
// # Quick Start
//
// Enrich a sheet with both distributors:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/bomstock/pkg/bom"
//	    "github.com/matzehuels/bomstock/pkg/distributor/digikey"
//	    "github.com/matzehuels/bomstock/pkg/distributor/mouser"
//	    "github.com/matzehuels/bomstock/pkg/enrich"
//	)
//
//	sheet, _ := bom.Load("board_v3_BOM.csv")
//	tokens := digikey.NewTokenProvider(digikey.DefaultBaseURL, id, secret, nil, nil)
//	runner := enrich.NewRunner(nil,
//	    enrich.NewMouserSource(mouser.NewClient("", apiKey, nil)),
//	    enrich.NewDigiKeySource(digikey.NewClient("", id, digikey.DefaultLocale, nil), tokens, nil, nil),
//	)
//	rep, _ := runner.Run(context.Background(), sheet)
//	out, _ := sheet.Append(rep.Columns())
//	bom.WriteCSV(bom.OutputPath("board_v3_BOM.csv", ".csv"), out)
//
// # Failure Handling
//
// Every input row yields one output row. A lookup that fails becomes the
// sentinel "/" in the unit price, package type and quantity columns, and the
// row is listed for manual review. A field that is merely absent from an
// otherwise good record is written as "N/A".
package pkg
