package digikey

import (
	"slices"
	"time"

	"github.com/matzehuels/bomstock/pkg/distributor"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

// DefaultPackageTypes are the DigiKey package type ids accepted for pricing.
// Other packaging forms are ignored even when they are cheaper per unit.
var DefaultPackageTypes = []int{2, 3, 6}

// Extract converts a product record into a normalized result.
//
// The first variation (in API order) whose package type id is in accepted
// is authoritative. Its unit price is the standard pricing break for
// quantity 1, and its quantity is the stock for that package type. A field
// that is simply absent yields [distributor.NotAvailable].
//
// An empty accepted list means [DefaultPackageTypes].
//
// Errors:
//   - NO_QUALIFYING_VARIATION when no variation has an accepted package type
//   - MALFORMED_FIELD when a key needed to reach a value is missing
func Extract(details *ProductDetails, accepted []int, now time.Time) (distributor.Result, error) {
	if len(accepted) == 0 {
		accepted = DefaultPackageTypes
	}
	if details == nil || details.Product == nil {
		return distributor.Result{}, bserrors.New(bserrors.ErrCodeMalformedField, "missing Product")
	}
	variations := details.Product.ProductVariations
	if variations == nil {
		return distributor.Result{}, bserrors.New(bserrors.ErrCodeMalformedField, "missing Product.ProductVariations")
	}

	chosen, err := selectVariation(variations, accepted)
	if err != nil {
		return distributor.Result{}, err
	}

	if chosen.PackageType.Name == nil {
		return distributor.Result{}, bserrors.New(bserrors.ErrCodeMalformedField, "missing PackageType.Name on %s", variationLabel(chosen))
	}

	price, err := unitPrice(chosen)
	if err != nil {
		return distributor.Result{}, err
	}

	return distributor.Result{
		UnitPrice:   price,
		PackageType: *chosen.PackageType.Name,
		Quantity:    chosen.QuantityAvailableforPackageType.Or(distributor.NotAvailable),
		LastUpdated: distributor.Timestamp(now),
	}, nil
}

// selectVariation returns the first variation with an accepted package type.
// Every variation must carry a package type id, even those after the match.
func selectVariation(variations []Variation, accepted []int) (*Variation, error) {
	var chosen *Variation
	for i := range variations {
		v := &variations[i]
		if v.PackageType == nil || v.PackageType.ID == nil {
			return nil, bserrors.New(bserrors.ErrCodeMalformedField, "missing PackageType.Id on variation %d", i)
		}
		if chosen == nil && slices.Contains(accepted, *v.PackageType.ID) {
			chosen = v
		}
	}
	if chosen == nil {
		return nil, bserrors.New(bserrors.ErrCodeNoQualifyingVariation,
			"no variation with package type in %v among %d variations", accepted, len(variations))
	}
	return chosen, nil
}

// unitPrice returns the price of the quantity-1 break, or N/A if there is none.
func unitPrice(v *Variation) (string, error) {
	if v.StandardPricing == nil {
		return "", bserrors.New(bserrors.ErrCodeMalformedField, "missing StandardPricing on %s", variationLabel(v))
	}
	for i, pb := range v.StandardPricing {
		if pb.BreakQuantity == nil {
			return "", bserrors.New(bserrors.ErrCodeMalformedField, "missing BreakQuantity on price break %d of %s", i, variationLabel(v))
		}
		if *pb.BreakQuantity != 1 {
			continue
		}
		if pb.UnitPrice == nil {
			return "", bserrors.New(bserrors.ErrCodeMalformedField, "missing UnitPrice on quantity 1 break of %s", variationLabel(v))
		}
		return pb.UnitPrice.String(), nil
	}
	return distributor.NotAvailable, nil
}

func variationLabel(v *Variation) string {
	if v.DigiKeyProductNumber != "" {
		return v.DigiKeyProductNumber
	}
	return "variation"
}
