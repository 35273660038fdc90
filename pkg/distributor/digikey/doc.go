// Package digikey provides a client and extractor for the DigiKey Product
// Information v4 API.
//
// # Overview
//
// DigiKey authenticates with the OAuth2 client-credentials grant. A
// [TokenProvider] exchanges the client id and secret for a bearer token and
// keeps it in a cache backend between runs. [Client.FetchProduct] then
// requests the product details for one part number, with locale headers that
// select the storefront, language and currency.
//
// # Usage
//
//	tokens := digikey.NewTokenProvider(digikey.DefaultBaseURL, id, secret, backend, nil)
//	token, err := tokens.Token(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := digikey.NewClient(digikey.DefaultBaseURL, id, digikey.DefaultLocale, nil)
//	details, err := client.FetchProduct(ctx, token, "LM358DR")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := digikey.Extract(details, digikey.DefaultPackageTypes, time.Now())
//
// # Variation selection
//
// A DigiKey product lists one variation per packaging form. [Extract] keeps
// the variations whose package type id is accepted (2, 3 or 6 by default)
// and uses the first one in API order for the price, package name and stock.
//
// # Missing values
//
// A variation without a quantity-1 price break, or without a stock figure,
// yields "N/A" for that field. A record missing the keys needed to reach a
// value fails with MALFORMED_FIELD instead.
package digikey
