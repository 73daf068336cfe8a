package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/mcdev12/pitchside/go/internal/store/memstore"
)

var admin = models.Actor{UserID: "admin", IsAdmin: true}

func TestParse(t *testing.T) {
	s, err := Parse(map[string]string{
		"fixtures_channel":        "C1",
		"manager_role":            "MGR",
		"transaction_window_open": "true",
		"legacy_key":              "ignored",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.FixturesChannel != "C1" || s.ManagerRole != "MGR" || !s.TransactionWindowOpen {
		t.Errorf("unexpected settings: %+v", s)
	}

	_, err = Parse(map[string]string{"transaction_window_open": "maybe"})
	if !errors.Is(err, leagueerr.InvalidInput) {
		t.Errorf("malformed boolean: got %v, want InvalidInput", err)
	}
}

func TestSetRequiresAdminAndKnownKey(t *testing.T) {
	app := NewApp(memstore.New())
	ctx := context.Background()

	if _, err := app.Set(ctx, models.Actor{UserID: "u1"}, KeyLogChannel, "C9"); !errors.Is(err, leagueerr.Unauthorized) {
		t.Fatalf("non-admin: got %v, want Unauthorized", err)
	}
	if _, err := app.Set(ctx, admin, Key("nope"), "x"); !errors.Is(err, leagueerr.InvalidSetting) {
		t.Fatalf("unknown key: got %v, want InvalidSetting", err)
	}

	s, err := app.Set(ctx, admin, KeyLogChannel, " C9 ")
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s.LogChannel != "C9" {
		t.Errorf("LogChannel = %q, want C9", s.LogChannel)
	}

	got, err := app.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.LogChannel != "C9" {
		t.Errorf("persisted LogChannel = %q, want C9", got.LogChannel)
	}
}

func TestWindowToggle(t *testing.T) {
	st := memstore.New()
	w := NewWindow(st)
	ctx := context.Background()

	open, err := w.IsOpen(ctx)
	if err != nil || open {
		t.Fatalf("initial window = %v, %v; want closed", open, err)
	}
	if err := w.Open(ctx, models.Actor{UserID: "u1"}); !errors.Is(err, leagueerr.Unauthorized) {
		t.Fatalf("non-admin open: got %v", err)
	}
	if err := w.Open(ctx, admin); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if open, _ := w.IsOpen(ctx); !open {
		t.Fatalf("expected window open")
	}

	err = st.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		raw, err := tx.ListSettings(ctx)
		if err != nil {
			return err
		}
		if raw["transaction_window_open"] != "true" {
			t.Errorf("stored flag = %q, want true", raw["transaction_window_open"])
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Close(ctx, admin); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if open, _ := w.IsOpen(ctx); open {
		t.Fatalf("expected window closed")
	}
}
