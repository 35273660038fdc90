package mouser

import (
	"time"

	"github.com/matzehuels/bomstock/pkg/distributor"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

// packagingAttribute is the attribute name carrying the package type.
const packagingAttribute = "Packaging"

// Extract converts a search response into a normalized result using the
// first part in the results.
//
// Availability, the Packaging attribute and the quantity-1 price each fall
// back to [distributor.NotAvailable] when absent.
//
// Errors:
//   - NO_RESULTS when the response has no parts
//   - MALFORMED_FIELD when an attribute or price break lacks a key needed
//     to scan it
//   - PARSE_ERROR when the quantity-1 price cannot be parsed
func Extract(resp *SearchResponse, now time.Time) (distributor.Result, error) {
	if resp == nil || resp.SearchResults == nil || len(resp.SearchResults.Parts) == 0 {
		return distributor.Result{}, bserrors.New(bserrors.ErrCodeNoResults, "search returned no parts")
	}
	part := &resp.SearchResults.Parts[0]

	pkg, err := packaging(part)
	if err != nil {
		return distributor.Result{}, err
	}

	price, err := unitPrice(part)
	if err != nil {
		return distributor.Result{}, err
	}

	return distributor.Result{
		UnitPrice:   price,
		PackageType: pkg,
		Quantity:    part.AvailabilityInStock.Or(distributor.NotAvailable),
		LastUpdated: distributor.Timestamp(now),
	}, nil
}

func packaging(p *Part) (string, error) {
	for i, attr := range p.ProductAttributes {
		if attr.AttributeName == nil {
			return "", bserrors.New(bserrors.ErrCodeMalformedField, "missing AttributeName on attribute %d of %s", i, p.MouserPartNumber)
		}
		if *attr.AttributeName != packagingAttribute {
			continue
		}
		if attr.AttributeValue == nil {
			return "", bserrors.New(bserrors.ErrCodeMalformedField, "missing AttributeValue on Packaging of %s", p.MouserPartNumber)
		}
		return *attr.AttributeValue, nil
	}
	return distributor.NotAvailable, nil
}

func unitPrice(p *Part) (string, error) {
	for i, pb := range p.PriceBreaks {
		if pb.Quantity == nil {
			return "", bserrors.New(bserrors.ErrCodeMalformedField, "missing Quantity on price break %d of %s", i, p.MouserPartNumber)
		}
		if *pb.Quantity != 1 {
			continue
		}
		if pb.Price == nil {
			return "", bserrors.New(bserrors.ErrCodeMalformedField, "missing Price on quantity 1 break of %s", p.MouserPartNumber)
		}
		d, err := FormatPrice(*pb.Price)
		if err != nil {
			return "", err
		}
		return d.String(), nil
	}
	return distributor.NotAvailable, nil
}
