package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/mcdev12/pitchside/go/internal/store/memstore"
)

var allConfirmed = [Confirmations]bool{true, true, true, true}

func TestReset(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	err := st.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		return tx.CreateTeam(ctx, models.Team{ID: uuid.New(), Name: "Alpha", RoleID: "R1"})
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := NewResetter(st, "owner")

	tests := []struct {
		name  string
		actor models.Actor
		conf  [Confirmations]bool
		want  error
	}{
		{"admin but not owner", models.Actor{UserID: "admin", IsAdmin: true}, allConfirmed, leagueerr.NotAuthorizedFor},
		{"missing confirmation", models.Actor{UserID: "owner"}, [Confirmations]bool{true, true, false, true}, leagueerr.MissingConfirmation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Reset(ctx, tt.actor, tt.conf); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if err := r.Reset(ctx, models.Actor{UserID: "owner"}, allConfirmed); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	teams, err := store.Run(ctx, st, func(ctx context.Context, tx store.Tx) ([]models.Team, error) {
		return tx.ListTeams(ctx)
	})
	if err != nil || len(teams) != 0 {
		t.Errorf("teams after reset = %d, %v", len(teams), err)
	}

	if err := NewResetter(st, "").Reset(ctx, models.Actor{UserID: ""}, allConfirmed); !errors.Is(err, leagueerr.Unauthorized) {
		t.Errorf("disabled reset: got %v, want Unauthorized", err)
	}
}
