package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/mcdev12/pitchside/go/internal/store/storetest"
)

// Set PITCHSIDE_TEST_DSN to a disposable database to run these tests.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("PITCHSIDE_TEST_DSN")
	if dsn == "" {
		t.Skip("PITCHSIDE_TEST_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()
		s, err := Open(ctx, dsn)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if err := Migrate(s.DB()); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		if err := s.Do(ctx, func(ctx context.Context, tx store.Tx) error { return tx.Purge(ctx) }); err != nil {
			t.Fatalf("purge: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}
