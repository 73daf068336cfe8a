// Package storetest holds behaviour checks shared by every store.Store implementation.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
)

// Factory returns an empty store for one test.
type Factory func(t *testing.T) store.Store

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"TeamUniqueness", testTeamUniqueness},
		{"RollbackOnError", testRollbackOnError},
		{"MembershipPairUnique", testMembershipPairUnique},
		{"DeleteTeamCascades", testDeleteTeamCascades},
		{"MatchOrderingAndPosting", testMatchOrderingAndPosting},
		{"DemandExpirySweep", testDemandExpirySweep},
		{"TopPlayers", testTopPlayers},
		{"SerializedUnitsOfWork", testSerializedUnitsOfWork},
		{"Purge", testPurge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func do(t *testing.T, s store.Store, fn func(ctx context.Context, tx store.Tx) error) {
	t.Helper()
	if err := s.Do(context.Background(), fn); err != nil {
		t.Fatalf("unit of work failed: %v", err)
	}
}

func newTeam(name, role string) models.Team {
	return models.Team{ID: uuid.New(), Name: name, ShortCode: name[:1], RoleID: role, CreatedAt: epoch}
}

func testTeamUniqueness(t *testing.T, s store.Store) {
	a := newTeam("Alpha", "R1")
	do(t, s, func(ctx context.Context, tx store.Tx) error { return tx.CreateTeam(ctx, a) })

	err := s.Do(context.Background(), func(ctx context.Context, tx store.Tx) error {
		return tx.CreateTeam(ctx, newTeam("Other", "R1"))
	})
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("duplicate role: got %v, want ErrDuplicate", err)
	}
	err = s.Do(context.Background(), func(ctx context.Context, tx store.Tx) error {
		return tx.CreateTeam(ctx, newTeam("alpha", "R9"))
	})
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("duplicate name: got %v, want ErrDuplicate", err)
	}

	do(t, s, func(ctx context.Context, tx store.Tx) error {
		got, err := tx.GetTeamByRole(ctx, "R1")
		if err != nil {
			return err
		}
		if got.ID != a.ID {
			t.Errorf("GetTeamByRole = %s, want %s", got.ID, a.ID)
		}
		if _, err := tx.GetTeamByName(ctx, "ALPHA"); err != nil {
			t.Errorf("GetTeamByName should be case-insensitive: %v", err)
		}
		if _, err := tx.GetTeam(ctx, uuid.New()); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("GetTeam(unknown) = %v, want ErrNotFound", err)
		}
		return nil
	})
}

func testRollbackOnError(t *testing.T, s store.Store) {
	boom := errors.New("boom")
	err := s.Do(context.Background(), func(ctx context.Context, tx store.Tx) error {
		if err := tx.CreateTeam(ctx, newTeam("Alpha", "R1")); err != nil {
			return err
		}
		if err := tx.PutSetting(ctx, "log_channel", "C1"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		teams, err := tx.ListTeams(ctx)
		if err != nil {
			return err
		}
		if len(teams) != 0 {
			t.Errorf("expected rollback to discard team, found %d", len(teams))
		}
		settings, err := tx.ListSettings(ctx)
		if err != nil {
			return err
		}
		if len(settings) != 0 {
			t.Errorf("expected rollback to discard settings, found %v", settings)
		}
		return nil
	})
}

func testMembershipPairUnique(t *testing.T, s store.Store) {
	team := newTeam("Alpha", "R1")
	player := models.Player{UserID: "u1", Name: "One", CreatedAt: epoch}
	m := models.Membership{
		ID: uuid.New(), PlayerID: "u1", TeamID: team.ID, Role: models.MembershipRolePlayer,
		Contract: &models.Contract{Salary: "100", Duration: "1 season", Position: "ST"}, JoinedAt: epoch,
	}
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		if err := tx.CreateTeam(ctx, team); err != nil {
			return err
		}
		if err := tx.SavePlayer(ctx, player); err != nil {
			return err
		}
		return tx.CreateMembership(ctx, m)
	})

	err := s.Do(context.Background(), func(ctx context.Context, tx store.Tx) error {
		dup := m
		dup.ID = uuid.New()
		return tx.CreateMembership(ctx, dup)
	})
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("got %v, want ErrDuplicate", err)
	}

	do(t, s, func(ctx context.Context, tx store.Tx) error {
		got, err := tx.GetMembership(ctx, "u1", team.ID)
		if err != nil {
			return err
		}
		if got.Contract == nil || got.Contract.Position != "ST" {
			t.Errorf("contract did not round trip: %+v", got.Contract)
		}
		if err := tx.DeleteMembership(ctx, "u1", team.ID); err != nil {
			return err
		}
		if err := tx.DeleteMembership(ctx, "u1", team.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("second delete = %v, want ErrNotFound", err)
		}
		return nil
	})
}

func testDeleteTeamCascades(t *testing.T, s store.Store) {
	a, b := newTeam("Alpha", "R1"), newTeam("Bravo", "R2")
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		for _, team := range []models.Team{a, b} {
			if err := tx.CreateTeam(ctx, team); err != nil {
				return err
			}
		}
		if err := tx.SavePlayer(ctx, models.Player{UserID: "u1", Name: "One", CreatedAt: epoch}); err != nil {
			return err
		}
		if err := tx.CreateMembership(ctx, models.Membership{
			ID: uuid.New(), PlayerID: "u1", TeamID: a.ID, Role: models.MembershipRolePlayer, JoinedAt: epoch,
		}); err != nil {
			return err
		}
		if err := tx.AddAssistantManager(ctx, models.AssistantManager{UserID: "u2", TeamID: a.ID, AssignedAt: epoch}); err != nil {
			return err
		}
		return tx.CreateMatch(ctx, models.Match{
			ID: uuid.New(), HomeTeamID: a.ID, AwayTeamID: b.ID, Stadium: "X",
			KickoffAt: epoch, Status: models.MatchStatusScheduled, CreatedAt: epoch,
		})
	})
	do(t, s, func(ctx context.Context, tx store.Tx) error { return tx.DeleteTeam(ctx, a.ID) })
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		ms, err := tx.ListMembershipsByPlayer(ctx, "u1")
		if err != nil {
			return err
		}
		ams, err := tx.ListAssistantManagersByUser(ctx, "u2")
		if err != nil {
			return err
		}
		matches, err := tx.ListMatches(ctx, "")
		if err != nil {
			return err
		}
		if len(ms) != 0 || len(ams) != 0 || len(matches) != 0 {
			t.Errorf("cascade left memberships=%d assistants=%d matches=%d", len(ms), len(ams), len(matches))
		}
		if _, err := tx.GetPlayer(ctx, "u1"); err != nil {
			t.Errorf("player must survive team deletion: %v", err)
		}
		return nil
	})
}

func testMatchOrderingAndPosting(t *testing.T, s store.Store) {
	a, b := newTeam("Alpha", "R1"), newTeam("Bravo", "R2")
	late := models.Match{ID: uuid.New(), HomeTeamID: a.ID, AwayTeamID: b.ID, Stadium: "Late",
		KickoffAt: epoch.Add(48 * time.Hour), Status: models.MatchStatusScheduled, CreatedAt: epoch}
	early := models.Match{ID: uuid.New(), HomeTeamID: b.ID, AwayTeamID: a.ID, Stadium: "Early",
		KickoffAt: epoch, Status: models.MatchStatusScheduled, CreatedAt: epoch}
	reason := "weather"
	off := models.Match{ID: uuid.New(), HomeTeamID: a.ID, AwayTeamID: b.ID, Stadium: "Off",
		KickoffAt: epoch.Add(time.Hour), Status: models.MatchStatusCancelled, CancelReason: &reason, CreatedAt: epoch}

	do(t, s, func(ctx context.Context, tx store.Tx) error {
		for _, team := range []models.Team{a, b} {
			if err := tx.CreateTeam(ctx, team); err != nil {
				return err
			}
		}
		for _, m := range []models.Match{late, early, off} {
			if err := tx.CreateMatch(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		scheduled, err := tx.ListMatches(ctx, models.MatchStatusScheduled)
		if err != nil {
			return err
		}
		if len(scheduled) != 2 || scheduled[0].ID != early.ID || scheduled[1].ID != late.ID {
			t.Fatalf("scheduled order wrong: %+v", scheduled)
		}
		if !scheduled[0].KickoffAt.Equal(epoch) || scheduled[0].Stadium != "Early" {
			t.Errorf("match did not round trip: %+v", scheduled[0])
		}
		got, err := tx.GetMatch(ctx, off.ID)
		if err != nil {
			return err
		}
		if got.CancelReason == nil || *got.CancelReason != "weather" {
			t.Errorf("cancel reason did not round trip: %v", got.CancelReason)
		}

		if _, err := tx.GetFixturePosting(ctx); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("GetFixturePosting on empty store = %v, want ErrNotFound", err)
		}
		first := models.FixturePosting{Token: uuid.New(), ChannelID: "C1", AnchorMatchID: early.ID, PostedAt: epoch}
		second := models.FixturePosting{Token: uuid.New(), ChannelID: "C1", AnchorMatchID: early.ID, PostedAt: epoch}
		if err := tx.PutFixturePosting(ctx, first); err != nil {
			return err
		}
		if err := tx.PutFixturePosting(ctx, second); err != nil {
			return err
		}
		p, err := tx.GetFixturePosting(ctx)
		if err != nil {
			return err
		}
		if p.Token != second.Token {
			t.Errorf("posting token = %s, want %s", p.Token, second.Token)
		}
		n, err := tx.DeleteAllMatches(ctx)
		if err != nil {
			return err
		}
		if n != 3 {
			t.Errorf("DeleteAllMatches = %d, want 3", n)
		}
		return tx.ClearFixturePosting(ctx)
	})
}

func testDemandExpirySweep(t *testing.T, s store.Store) {
	team := newTeam("Alpha", "R1")
	fresh := models.PendingDemand{Token: uuid.New(), PlayerID: "u1", TeamID: team.ID,
		CreatedAt: epoch, ExpiresAt: epoch.Add(time.Hour)}
	stale := models.PendingDemand{Token: uuid.New(), PlayerID: "u2", TeamID: team.ID,
		CreatedAt: epoch, ExpiresAt: epoch.Add(-time.Minute)}
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		if err := tx.CreateTeam(ctx, team); err != nil {
			return err
		}
		if err := tx.CreateDemand(ctx, fresh); err != nil {
			return err
		}
		return tx.CreateDemand(ctx, stale)
	})
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		n, err := tx.DeleteExpiredDemands(ctx, epoch)
		if err != nil {
			return err
		}
		if n != 1 {
			t.Errorf("DeleteExpiredDemands = %d, want 1", n)
		}
		if _, err := tx.GetDemand(ctx, fresh.Token); err != nil {
			t.Errorf("fresh demand should survive: %v", err)
		}
		if _, err := tx.GetDemand(ctx, stale.Token); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("stale demand = %v, want ErrNotFound", err)
		}
		return nil
	})
}

func testTopPlayers(t *testing.T, s store.Store) {
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		for _, p := range []models.Player{
			{UserID: "u1", Name: "Cara", Goals: 3, CreatedAt: epoch},
			{UserID: "u2", Name: "Abe", Goals: 3, CreatedAt: epoch},
			{UserID: "u3", Name: "Bo", Goals: 7, CreatedAt: epoch},
			{UserID: "u4", Name: "Dee", Goals: 0, Assists: 2, CreatedAt: epoch},
		} {
			if err := tx.SavePlayer(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		top, err := tx.ListTopPlayers(ctx, models.StatGoals, 10)
		if err != nil {
			return err
		}
		var names []string
		for _, p := range top {
			names = append(names, p.Name)
		}
		want := []string{"Bo", "Abe", "Cara"}
		if len(names) != len(want) {
			t.Fatalf("top scorers = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Fatalf("top scorers = %v, want %v", names, want)
			}
		}
		return nil
	})
}

// Two concurrent check-then-insert units must not both observe "free".
func testSerializedUnitsOfWork(t *testing.T, s store.Store) {
	a, b := newTeam("Alpha", "R1"), newTeam("Bravo", "R2")
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		if err := tx.CreateTeam(ctx, a); err != nil {
			return err
		}
		if err := tx.CreateTeam(ctx, b); err != nil {
			return err
		}
		return tx.SavePlayer(ctx, models.Player{UserID: "u1", Name: "One", CreatedAt: epoch})
	})

	errSigned := errors.New("already signed")
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, team := range []models.Team{a, b} {
		wg.Add(1)
		go func(i int, team models.Team) {
			defer wg.Done()
			results[i] = s.Do(context.Background(), func(ctx context.Context, tx store.Tx) error {
				ms, err := tx.ListMembershipsByPlayer(ctx, "u1")
				if err != nil {
					return err
				}
				if len(ms) > 0 {
					return errSigned
				}
				return tx.CreateMembership(ctx, models.Membership{
					ID: uuid.New(), PlayerID: "u1", TeamID: team.ID, Role: models.MembershipRolePlayer, JoinedAt: epoch,
				})
			})
		}(i, team)
	}
	wg.Wait()

	signed := 0
	for _, err := range results {
		switch {
		case err == nil:
			signed++
		case errors.Is(err, errSigned):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if signed != 1 {
		t.Fatalf("expected exactly one signing, got %d", signed)
	}
}

func testPurge(t *testing.T, s store.Store) {
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		if err := tx.CreateTeam(ctx, newTeam("Alpha", "R1")); err != nil {
			return err
		}
		if err := tx.PutSetting(ctx, "manager_role", "M"); err != nil {
			return err
		}
		return tx.AddReferee(ctx, models.Referee{UserID: "r1", AssignedAt: epoch})
	})
	do(t, s, func(ctx context.Context, tx store.Tx) error { return tx.Purge(ctx) })
	do(t, s, func(ctx context.Context, tx store.Tx) error {
		teams, _ := tx.ListTeams(ctx)
		settings, _ := tx.ListSettings(ctx)
		refs, _ := tx.ListReferees(ctx)
		if len(teams)+len(settings)+len(refs) != 0 {
			t.Errorf("purge left teams=%d settings=%d referees=%d", len(teams), len(settings), len(refs))
		}
		return nil
	})
}
