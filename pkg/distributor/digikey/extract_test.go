package digikey

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matzehuels/bomstock/pkg/distributor"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

var fixedNow = time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC)

func decode(t *testing.T, raw string) *ProductDetails {
	t.Helper()
	var d ProductDetails
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &d
}

const lm358 = `{
  "Product": {
    "ManufacturerProductNumber": "LM358DR",
    "ProductVariations": [
      {
        "DigiKeyProductNumber": "296-1014-2-ND",
        "PackageType": {"Id": 1, "Name": "Tape & Reel (TR)"},
        "StandardPricing": [{"BreakQuantity": 2500, "UnitPrice": 0.09}],
        "QuantityAvailableforPackageType": 50000
      },
      {
        "DigiKeyProductNumber": "296-1014-1-ND",
        "PackageType": {"Id": 2, "Name": "Cut Tape (CT)"},
        "StandardPricing": [
          {"BreakQuantity": 1, "UnitPrice": 0.41},
          {"BreakQuantity": 10, "UnitPrice": 0.305}
        ],
        "QuantityAvailableforPackageType": 18234
      },
      {
        "DigiKeyProductNumber": "296-1014-6-ND",
        "PackageType": {"Id": 243, "Name": "Digi-Reel®"},
        "StandardPricing": [{"BreakQuantity": 1, "UnitPrice": 0.41}],
        "QuantityAvailableforPackageType": 18234
      }
    ]
  }
}`

func TestExtract(t *testing.T) {
	got, err := Extract(decode(t, lm358), nil, fixedNow)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	want := distributor.Result{
		UnitPrice:   "0.41",
		PackageType: "Cut Tape (CT)",
		Quantity:    "18234",
		LastUpdated: "2024-06-12 09:30:00",
	}
	if got != want {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestExtractFirstAcceptedWins(t *testing.T) {
	raw := `{"Product":{"ProductVariations":[
		{"PackageType":{"Id":3,"Name":"Tube"},"StandardPricing":[{"BreakQuantity":1,"UnitPrice":1.2}],"QuantityAvailableforPackageType":5},
		{"PackageType":{"Id":2,"Name":"Cut Tape (CT)"},"StandardPricing":[{"BreakQuantity":1,"UnitPrice":0.8}],"QuantityAvailableforPackageType":900}
	]}}`

	got, err := Extract(decode(t, raw), nil, fixedNow)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if got.PackageType != "Tube" || got.UnitPrice != "1.2" || got.Quantity != "5" {
		t.Errorf("Extract() = %+v, want the Tube variation", got)
	}
}

func TestExtractCustomAcceptedSet(t *testing.T) {
	got, err := Extract(decode(t, lm358), []int{1}, fixedNow)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	// The reel has no quantity-1 break.
	if got.PackageType != "Tape & Reel (TR)" || got.UnitPrice != distributor.NotAvailable {
		t.Errorf("Extract() = %+v, want reel with N/A price", got)
	}
}

func TestExtractNotAvailable(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantPrice string
		wantQty   string
	}{
		{
			name:      "no quantity 1 break",
			raw:       `{"Product":{"ProductVariations":[{"PackageType":{"Id":2,"Name":"Cut Tape (CT)"},"StandardPricing":[{"BreakQuantity":10,"UnitPrice":0.3}],"QuantityAvailableforPackageType":7}]}}`,
			wantPrice: "N/A",
			wantQty:   "7",
		},
		{
			name:      "empty pricing",
			raw:       `{"Product":{"ProductVariations":[{"PackageType":{"Id":2,"Name":"Cut Tape (CT)"},"StandardPricing":[],"QuantityAvailableforPackageType":7}]}}`,
			wantPrice: "N/A",
			wantQty:   "7",
		},
		{
			name:      "no stock field",
			raw:       `{"Product":{"ProductVariations":[{"PackageType":{"Id":6,"Name":"Bulk"},"StandardPricing":[{"BreakQuantity":1,"UnitPrice":2}]}]}}`,
			wantPrice: "2",
			wantQty:   "N/A",
		},
		{
			name:      "null stock",
			raw:       `{"Product":{"ProductVariations":[{"PackageType":{"Id":6,"Name":"Bulk"},"StandardPricing":[{"BreakQuantity":1,"UnitPrice":2}],"QuantityAvailableforPackageType":null}]}}`,
			wantPrice: "2",
			wantQty:   "N/A",
		},
		{
			name:      "zero stock is a value",
			raw:       `{"Product":{"ProductVariations":[{"PackageType":{"Id":6,"Name":"Bulk"},"StandardPricing":[{"BreakQuantity":1,"UnitPrice":2}],"QuantityAvailableforPackageType":0}]}}`,
			wantPrice: "2",
			wantQty:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(decode(t, tt.raw), nil, fixedNow)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if got.UnitPrice != tt.wantPrice {
				t.Errorf("UnitPrice = %q, want %q", got.UnitPrice, tt.wantPrice)
			}
			if got.Quantity != tt.wantQty {
				t.Errorf("Quantity = %q, want %q", got.Quantity, tt.wantQty)
			}
		})
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code bserrors.Code
	}{
		{"empty object", `{}`, bserrors.ErrCodeMalformedField},
		{"null product", `{"Product":null}`, bserrors.ErrCodeMalformedField},
		{"no variations key", `{"Product":{}}`, bserrors.ErrCodeMalformedField},
		{"empty variations", `{"Product":{"ProductVariations":[]}}`, bserrors.ErrCodeNoQualifyingVariation},
		{
			"only rejected package types",
			`{"Product":{"ProductVariations":[{"PackageType":{"Id":1,"Name":"Tape & Reel (TR)"}},{"PackageType":{"Id":243,"Name":"Digi-Reel®"}}]}}`,
			bserrors.ErrCodeNoQualifyingVariation,
		},
		{
			"variation without package type",
			`{"Product":{"ProductVariations":[{"StandardPricing":[]}]}}`,
			bserrors.ErrCodeMalformedField,
		},
		{
			"later variation without id",
			`{"Product":{"ProductVariations":[{"PackageType":{"Id":2,"Name":"Cut Tape (CT)"},"StandardPricing":[]},{"PackageType":{"Name":"?"}}]}}`,
			bserrors.ErrCodeMalformedField,
		},
		{
			"chosen variation without name",
			`{"Product":{"ProductVariations":[{"PackageType":{"Id":2},"StandardPricing":[]}]}}`,
			bserrors.ErrCodeMalformedField,
		},
		{
			"chosen variation without pricing",
			`{"Product":{"ProductVariations":[{"PackageType":{"Id":2,"Name":"Cut Tape (CT)"}}]}}`,
			bserrors.ErrCodeMalformedField,
		},
		{
			"break before match without quantity",
			`{"Product":{"ProductVariations":[{"PackageType":{"Id":2,"Name":"Cut Tape (CT)"},"StandardPricing":[{"UnitPrice":1},{"BreakQuantity":1,"UnitPrice":1}]}]}}`,
			bserrors.ErrCodeMalformedField,
		},
		{
			"matching break without price",
			`{"Product":{"ProductVariations":[{"PackageType":{"Id":2,"Name":"Cut Tape (CT)"},"StandardPricing":[{"BreakQuantity":1}]}]}}`,
			bserrors.ErrCodeMalformedField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(decode(t, tt.raw), nil, fixedNow)
			if err == nil {
				t.Fatalf("Extract() = %+v, want error %s", got, tt.code)
			}
			if !bserrors.Is(err, tt.code) {
				t.Errorf("Extract() code = %s, want %s (%v)", bserrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestExtractNilDetails(t *testing.T) {
	if _, err := Extract(nil, nil, fixedNow); !bserrors.Is(err, bserrors.ErrCodeMalformedField) {
		t.Errorf("Extract(nil) error = %v, want MALFORMED_FIELD", err)
	}
}

func TestExtractIdempotent(t *testing.T) {
	details := decode(t, lm358)
	first, err1 := Extract(details, nil, fixedNow)
	second, err2 := Extract(details, nil, fixedNow)
	if err1 != nil || err2 != nil {
		t.Fatalf("Extract() errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("Extract() not idempotent: %+v vs %+v", first, second)
	}
}
