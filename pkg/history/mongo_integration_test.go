//go:build integration

package history

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("BOMSTOCK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BOMSTOCK_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri)
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer s.Close(ctx)

	runID := NewRunID()
	lookups := Lookups(runID, "integration_v1_BOM.csv", sampleReport())
	mpn := "LM358DR-" + runID
	for i := range lookups {
		lookups[i].MPN = mpn
	}

	if err := s.Save(ctx, lookups); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Latest(ctx, mpn, 10)
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if len(got) != len(lookups) {
		t.Fatalf("Latest() returned %d lookups, want %d", len(got), len(lookups))
	}
	for _, l := range got {
		if l.RunID != runID {
			t.Errorf("RunID = %q, want %q", l.RunID, runID)
		}
	}
}
