package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Enrich hooks
	e := NoopEnrichHooks{}
	e.OnRunStart(ctx, 42)
	e.OnRowStart(ctx, 1, "LM358DR")
	e.OnLookupComplete(ctx, 1, "Mouser", time.Second, nil)
	e.OnRunComplete(ctx, 42, 3, time.Minute)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "token")
	c.OnCacheMiss(ctx, "token")
	c.OnCacheSet(ctx, "token", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.digikey.com", "/products/v4/search/LM358DR/productdetails")
	h.OnResponse(ctx, "GET", "api.digikey.com", "/products/v4/search/LM358DR/productdetails", 200, time.Second)
	h.OnError(ctx, "POST", "api.mouser.com", "/api/v1/search/partnumber", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Enrich().(NoopEnrichHooks); !ok {
		t.Error("Enrich() should return NoopEnrichHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customEnrich := &testEnrichHooks{}
	SetEnrichHooks(customEnrich)
	if Enrich() != customEnrich {
		t.Error("SetEnrichHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Enrich().(NoopEnrichHooks); !ok {
		t.Error("Reset() should restore NoopEnrichHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testEnrichHooks{}
	SetEnrichHooks(custom)

	// Setting nil should be ignored
	SetEnrichHooks(nil)

	if Enrich() != custom {
		t.Error("SetEnrichHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testEnrichHooks struct{ NoopEnrichHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
