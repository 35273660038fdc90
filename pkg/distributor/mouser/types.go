package mouser

import "github.com/matzehuels/bomstock/pkg/distributor"

// SearchRequest is the body of the part number search.
type SearchRequest struct {
	SearchByPartRequest PartRequest `json:"SearchByPartRequest"`
}

// PartRequest names the part to search for.
type PartRequest struct {
	MouserPartNumber  string `json:"mouserPartNumber"`
	PartSearchOptions string `json:"partSearchOptions"`
}

// SearchResponse is the envelope returned by the search endpoints.
// Mouser reports request problems in Errors with an HTTP 200.
type SearchResponse struct {
	Errors        []APIError     `json:"Errors"`
	SearchResults *SearchResults `json:"SearchResults"`
}

// APIError is one entry of the response's Errors list.
type APIError struct {
	ID                    int    `json:"Id"`
	Code                  string `json:"Code"`
	Message               string `json:"Message"`
	PropertyName          string `json:"PropertyName"`
	ResourceKey           string `json:"ResourceKey"`
	ResourceFormatString  string `json:"ResourceFormatString"`
	ResourceFormatString2 string `json:"ResourceFormatString2"`
}

// SearchResults holds the matching parts.
type SearchResults struct {
	NumberOfResult int    `json:"NumberOfResult"`
	Parts          []Part `json:"Parts"`
}

// Part is one search hit. Optional scalars use pointers so the extractor can
// tell an absent key from an empty value.
type Part struct {
	MouserPartNumber       string           `json:"MouserPartNumber"`
	ManufacturerPartNumber string           `json:"ManufacturerPartNumber"`
	Manufacturer           string           `json:"Manufacturer"`
	Description            string           `json:"Description"`
	AvailabilityInStock    distributor.Text `json:"AvailabilityInStock"`
	ProductAttributes      []Attribute      `json:"ProductAttributes"`
	PriceBreaks            []PriceBreak     `json:"PriceBreaks"`
}

// Attribute is a name/value pair such as Packaging: Cut Tape.
type Attribute struct {
	AttributeName  *string `json:"AttributeName"`
	AttributeValue *string `json:"AttributeValue"`
}

// PriceBreak is a quantity threshold and its price as a localized string
// (for example "0,41 €" on the European storefronts).
type PriceBreak struct {
	Quantity *int    `json:"Quantity"`
	Price    *string `json:"Price"`
	Currency string  `json:"Currency"`
}
