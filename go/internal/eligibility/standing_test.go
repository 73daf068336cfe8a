package eligibility

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/mcdev12/pitchside/go/internal/store/memstore"
)

func TestLoadStanding(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	a := models.Team{ID: uuid.New(), Name: "Alpha", RoleID: "R1", ManagerID: strPtr("m1"), CreatedAt: now}
	b := models.Team{ID: uuid.New(), Name: "Bravo", RoleID: "R2", LegacyAssistantManagerID: strPtr("u1"), CreatedAt: now}

	err := s.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		for _, team := range []models.Team{a, b} {
			if err := tx.CreateTeam(ctx, team); err != nil {
				return err
			}
		}
		if err := tx.SavePlayer(ctx, models.Player{UserID: "u1", Name: "One", DemandUses: 1, CreatedAt: now}); err != nil {
			return err
		}
		return tx.CreateMembership(ctx, models.Membership{
			ID: uuid.New(), PlayerID: "u1", TeamID: b.ID, Role: models.MembershipRolePlayer, JoinedAt: now,
		})
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	var u1, m1 Standing
	err = s.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		var err error
		if u1, err = LoadStanding(ctx, tx, "u1", false); err != nil {
			return err
		}
		m1, err = LoadStanding(ctx, tx, "m1", false)
		return err
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !u1.PlaysFor(b.ID) || u1.PlayerMembership == nil || u1.DemandUses != 1 {
		t.Errorf("u1 player standing wrong: %+v", u1)
	}
	if !u1.Assists(b.ID) {
		t.Errorf("legacy assistant reference should count: %+v", u1)
	}
	if !m1.Manages(a.ID) || m1.IsPlayer() {
		t.Errorf("m1 manager standing wrong: %+v", m1)
	}
}
