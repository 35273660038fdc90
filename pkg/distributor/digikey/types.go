package digikey

import (
	"github.com/shopspring/decimal"

	"github.com/matzehuels/bomstock/pkg/distributor"
)

// ProductDetails is the response of the productdetails endpoint.
// Only the fields used by [Extract] are mapped; every one of them is
// optional so that a missing key is detected by the extractor rather than
// silently read as a zero value.
type ProductDetails struct {
	Product *Product `json:"Product"`
}

// Product is the catalog entry for one manufacturer part number.
type Product struct {
	ManufacturerProductNumber string           `json:"ManufacturerProductNumber"`
	Description               *Description     `json:"Description,omitempty"`
	ProductVariations         []Variation      `json:"ProductVariations"`
	QuantityAvailable         distributor.Text `json:"QuantityAvailable"`
}

// Description holds the product text blocks.
type Description struct {
	ProductDescription string `json:"ProductDescription"`
}

// Variation is one packaging option (reel, cut tape, tube, ...) of a product
// with its own DigiKey part number, pricing and stock.
type Variation struct {
	DigiKeyProductNumber            string           `json:"DigiKeyProductNumber"`
	PackageType                     *PackageType     `json:"PackageType"`
	StandardPricing                 []PriceBreak     `json:"StandardPricing"`
	QuantityAvailableforPackageType distributor.Text `json:"QuantityAvailableforPackageType"`
	MinimumOrderQuantity            *int             `json:"MinimumOrderQuantity,omitempty"`
}

// PackageType identifies the packaging form by id and display name.
type PackageType struct {
	ID   *int    `json:"Id"`
	Name *string `json:"Name"`
}

// PriceBreak is a quantity threshold and the unit price from that quantity on.
type PriceBreak struct {
	BreakQuantity *int             `json:"BreakQuantity"`
	UnitPrice     *decimal.Decimal `json:"UnitPrice"`
	TotalPrice    *decimal.Decimal `json:"TotalPrice,omitempty"`
}
