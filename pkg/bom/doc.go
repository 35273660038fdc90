// Package bom reads and writes bill-of-materials spreadsheets.
//
// A BOM is a CSV export with one row per line item. Only two columns are
// interpreted: MPN (manufacturer part number) and Reference (designators
// such as "R1, R2"). Every other column is carried through unchanged.
//
// # Flow
//
//	path, _ := bom.Discover(".", bom.DefaultPattern)
//	sheet, _ := bom.Load(path)
//	out, err := sheet.Append(columns) // COLUMN_MISMATCH on ragged columns
//	bom.WriteCSV(bom.OutputPath(path, ".csv"), out)
//
// Append never modifies its receiver, and nothing is written when the
// column check fails.
package bom
