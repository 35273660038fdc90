// Package mouser provides a client and extractor for the Mouser Search API.
//
// # Overview
//
// Mouser authenticates with a static API key passed in the query string.
// [Client.SearchPart] posts a part number search and returns the raw
// response envelope; [Extract] reads the first hit.
//
// # Usage
//
//	client := mouser.NewClient(mouser.DefaultBaseURL, apiKey, nil)
//	resp, err := client.SearchPart(ctx, "LM358DR")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := mouser.Extract(resp, time.Now())
//
// # Prices
//
// Price breaks carry localized strings such as "0,41 €". [FormatPrice]
// strips the euro sign and reads a comma as the decimal separator. Prices
// with thousands separators are not supported.
package mouser
