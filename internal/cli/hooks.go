package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bomstock/pkg/observability"
)

// registerDebugHooks logs every distributor request, token cache access and
// lookup at debug level. Request paths never include the query string, so
// the Mouser API key stays out of the log.
func registerDebugHooks(l *log.Logger) {
	h := debugHooks{l: l}
	observability.SetHTTPHooks(h)
	observability.SetCacheHooks(h)
	observability.SetEnrichHooks(h)
}

type debugHooks struct {
	l *log.Logger
}

func (h debugHooks) OnRequest(_ context.Context, method, host, path string) {
	h.l.Debug("request", "method", method, "host", host, "path", path)
}

func (h debugHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.l.Debug("response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h debugHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.l.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.l.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.l.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.l.Debug("cache set", "type", keyType, "bytes", size)
}

func (h debugHooks) OnRunStart(_ context.Context, rows int) {
	h.l.Debug("run started", "rows", rows)
}

func (h debugHooks) OnRunComplete(_ context.Context, rows, flagged int, d time.Duration) {
	h.l.Debug("run complete", "rows", rows, "flagged", flagged, "duration", d.Round(time.Millisecond))
}

func (h debugHooks) OnRowStart(_ context.Context, row int, mpn string) {
	h.l.Debug("row started", "row", row, "mpn", mpn)
}

func (h debugHooks) OnLookupComplete(_ context.Context, row int, source string, d time.Duration, err error) {
	if err != nil {
		h.l.Debug("lookup failed", "row", row, "source", source, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.l.Debug("lookup ok", "row", row, "source", source, "duration", d.Round(time.Millisecond))
}
