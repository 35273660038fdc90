package digikey

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/bomstock/pkg/distributor"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "id", Locale{Currency: "USD"}, nil)
	if c.Client == nil {
		t.Fatal("expected shared client to be initialized")
	}
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
	want := Locale{Site: "BE", Language: "en", Currency: "USD"}
	if c.locale != want {
		t.Errorf("locale = %+v, want %+v", c.locale, want)
	}
}

func TestClient_FetchProduct(t *testing.T) {
	var gotPath string
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotHeaders = r.Header.Clone()
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte(lm358))
	}))
	defer server.Close()

	c := NewClient(server.URL, "client-123", DefaultLocale, server.Client())

	details, err := c.FetchProduct(context.Background(), "tok", "LM358DR")
	if err != nil {
		t.Fatalf("FetchProduct failed: %v", err)
	}

	if gotPath != "/products/v4/search/LM358DR/productdetails" {
		t.Errorf("path = %q", gotPath)
	}
	wantHeaders := map[string]string{
		"Authorization":             "Bearer tok",
		"Accept":                    "application/json",
		"X-Digikey-Client-Id":       "client-123",
		"X-Digikey-Locale-Site":     "BE",
		"X-Digikey-Locale-Language": "en",
		"X-Digikey-Locale-Currency": "EUR",
	}
	for k, v := range wantHeaders {
		if got := gotHeaders.Get(k); got != v {
			t.Errorf("header %s = %q, want %q", k, got, v)
		}
	}

	if details.Product == nil || details.Product.ManufacturerProductNumber != "LM358DR" {
		t.Fatalf("unexpected product: %+v", details.Product)
	}
	if len(details.Product.ProductVariations) != 3 {
		t.Errorf("expected 3 variations, got %d", len(details.Product.ProductVariations))
	}
}

func TestClient_FetchProduct_EscapesPartNumber(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "id", DefaultLocale, server.Client())
	if _, err := c.FetchProduct(context.Background(), "tok", "BAT54S/T3 #1"); err != nil {
		t.Fatalf("FetchProduct failed: %v", err)
	}
	if gotPath != "/products/v4/search/BAT54S%2FT3%20%231/productdetails" {
		t.Errorf("path = %q, want escaped part number", gotPath)
	}
}

func TestClient_FetchProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, "id", DefaultLocale, server.Client())
	_, err := c.FetchProduct(context.Background(), "tok", "NOPE-123")
	if !errors.Is(err, distributor.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_FetchProduct_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(server.URL, "id", DefaultLocale, server.Client())
	_, err := c.FetchProduct(context.Background(), "expired", "LM358DR")
	if !errors.Is(err, distributor.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}
