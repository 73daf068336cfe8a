package teams

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/mcdev12/pitchside/go/internal/store/memstore"
)

var admin = models.Actor{UserID: "admin", IsAdmin: true}

func newApp() (*App, *memstore.Store) {
	st := memstore.New()
	return NewApp(st, clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))), st
}

func TestCreateTeamUniqueness(t *testing.T) {
	app, _ := newApp()
	ctx := context.Background()

	team, err := app.CreateTeam(ctx, admin, CreateTeamRequest{Name: " Lions ", ShortCode: "lio", RoleID: "R1"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if team.Name != "Lions" || team.ShortCode != "LIO" {
		t.Errorf("team = %+v, want trimmed name and upper short code", team)
	}

	tests := []struct {
		name string
		req  CreateTeamRequest
		want error
	}{
		{"same role", CreateTeamRequest{Name: "Tigers", ShortCode: "TIG", RoleID: "R1"}, leagueerr.DuplicateTeam},
		{"same name any case", CreateTeamRequest{Name: "LIONS", ShortCode: "LI2", RoleID: "R2"}, leagueerr.Conflict},
		{"missing role", CreateTeamRequest{Name: "Bears", ShortCode: "BEA"}, leagueerr.InvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := app.CreateTeam(ctx, admin, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := app.CreateTeam(ctx, models.Actor{UserID: "u1"}, CreateTeamRequest{Name: "X", ShortCode: "X", RoleID: "R9"}); !errors.Is(err, leagueerr.NotAdmin) {
		t.Errorf("non-admin: got %v, want NotAdmin", err)
	}
}

func TestListTeamsPagination(t *testing.T) {
	app, _ := newApp()
	ctx := context.Background()
	for i, name := range []string{"Delta", "Alpha", "Charlie", "Bravo"} {
		req := CreateTeamRequest{Name: name, ShortCode: name[:3], RoleID: string(rune('A' + i))}
		if _, err := app.CreateTeam(ctx, admin, req); err != nil {
			t.Fatalf("CreateTeam %s: %v", name, err)
		}
	}

	page, err := app.ListTeams(ctx, PaginationParams{Limit: 3})
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if page.Total != 4 || !page.HasMore || page.Teams[0].Name != "Alpha" || page.Teams[2].Name != "Charlie" {
		t.Errorf("first page = %+v", page)
	}
	page, err = app.ListTeams(ctx, PaginationParams{Limit: 3, Offset: 3})
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(page.Teams) != 1 || page.HasMore {
		t.Errorf("last page = %+v", page)
	}
}

func TestRosterAndDelete(t *testing.T) {
	app, st := newApp()
	ctx := context.Background()

	team, err := app.CreateTeam(ctx, admin, CreateTeamRequest{Name: "Lions", ShortCode: "LIO", RoleID: "R1"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	mgr := "m1"
	err = st.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		if err := tx.SavePlayer(ctx, models.Player{UserID: "p1", Name: "Pat"}); err != nil {
			return err
		}
		if err := tx.SetTeamManager(ctx, team.ID, &mgr); err != nil {
			return err
		}
		if err := tx.CreateMembership(ctx, models.Membership{ID: uuid.New(), PlayerID: "m1", TeamID: team.ID, Role: models.MembershipRoleManager}); err != nil {
			return err
		}
		if err := tx.AddAssistantManager(ctx, models.AssistantManager{UserID: "a1", TeamID: team.ID}); err != nil {
			return err
		}
		return tx.CreateMembership(ctx, models.Membership{
			ID: uuid.New(), PlayerID: "p1", TeamID: team.ID, Role: models.MembershipRolePlayer,
			Contract: &models.Contract{Salary: "5", Duration: "1"},
		})
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	r, err := app.Roster(ctx, team.ID)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if r.Manager == nil || r.Manager.UserID != "m1" {
		t.Errorf("manager = %+v, want m1", r.Manager)
	}
	if len(r.Assistants) != 1 || len(r.Players) != 1 || r.Players[0].Name != "Pat" || r.Players[0].Contract.Salary != "5" {
		t.Errorf("roster = %+v", r)
	}

	if _, err := app.DeleteTeam(ctx, admin, team.ID); err != nil {
		t.Fatalf("DeleteTeam: %v", err)
	}
	if _, err := app.Roster(ctx, team.ID); !errors.Is(err, leagueerr.NoTeam) {
		t.Errorf("roster after delete: got %v, want NoTeam", err)
	}
	if _, err := app.GetTeamByRole(ctx, "R1"); !errors.Is(err, leagueerr.NotFound) {
		t.Errorf("role lookup after delete: got %v, want NotFound", err)
	}
}

func TestResolveActingTeam(t *testing.T) {
	app, _ := newApp()
	ctx := context.Background()
	for _, req := range []CreateTeamRequest{
		{Name: "Lions", ShortCode: "LIO", RoleID: "R1"},
		{Name: "Tigers", ShortCode: "TIG", RoleID: "R2"},
	} {
		if _, err := app.CreateTeam(ctx, admin, req); err != nil {
			t.Fatalf("CreateTeam: %v", err)
		}
	}

	team, err := app.ResolveActingTeam(ctx, models.Actor{UserID: "u1", RoleIDs: []string{"X", "R2"}})
	if err != nil || team.Name != "Tigers" {
		t.Fatalf("single role: %+v, %v", team, err)
	}
	if _, err := app.ResolveActingTeam(ctx, models.Actor{UserID: "u1", RoleIDs: []string{"R1", "R2"}}); !errors.Is(err, leagueerr.AmbiguousTeam) {
		t.Errorf("two roles: got %v, want AmbiguousTeam", err)
	}
	if _, err := app.ResolveActingTeam(ctx, models.Actor{UserID: "u1"}); !errors.Is(err, leagueerr.NoTeam) {
		t.Errorf("no roles: got %v, want NoTeam", err)
	}
}
