package eligibility

import (
	"errors"
	"testing"

	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
)

func TestCanActForTeam(t *testing.T) {
	managed := teamA
	managed.ManagerID = strPtr("m1")

	tests := []struct {
		name        string
		actor       models.Actor
		managerRole string
		want        leagueerr.Reason
	}{
		{"admin with team role", models.Actor{UserID: "a1", IsAdmin: true, RoleIDs: []string{"R1"}}, "", leagueerr.ReasonNone},
		{"admin without team role, role unset", models.Actor{UserID: "a1", IsAdmin: true}, "", leagueerr.NotConfigured},
		{"manager", models.Actor{UserID: "m1", RoleIDs: []string{"R1", "MGR"}}, "MGR", leagueerr.ReasonNone},
		{"manager missing manager role", models.Actor{UserID: "m1", RoleIDs: []string{"R1"}}, "MGR", leagueerr.NotTeamAuthority},
		{"manager missing team role", models.Actor{UserID: "m1", RoleIDs: []string{"MGR"}}, "MGR", leagueerr.NotTeamAuthority},
		{"manager role holder of other team", models.Actor{UserID: "m2", RoleIDs: []string{"R1", "MGR"}}, "MGR", leagueerr.NotTeamAuthority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanActForTeam(tt.actor, managed, tt.managerRole)
			wantReason(t, err, tt.want)
			if err != nil && !errors.Is(err, leagueerr.Unauthorized) {
				t.Errorf("expected Unauthorized kind, got %v", err)
			}
		})
	}
}

func TestResolveActingTeam(t *testing.T) {
	managedB := teamB
	managedB.ManagerID = strPtr("m1")
	teams := []models.Team{teamA, managedB}

	got, err := ResolveActingTeam(models.Actor{UserID: "u1", RoleIDs: []string{"R1", "X"}}, teams)
	if err != nil || got.ID != teamA.ID {
		t.Fatalf("single role: got %v, %v", got.Name, err)
	}

	_, err = ResolveActingTeam(models.Actor{UserID: "u1", RoleIDs: []string{"X"}}, teams)
	wantReason(t, err, leagueerr.NoTeam)

	got, err = ResolveActingTeam(models.Actor{UserID: "m1", RoleIDs: []string{"R1", "R2"}}, teams)
	if err != nil || got.ID != teamB.ID {
		t.Fatalf("managed team among several: got %v, %v", got.Name, err)
	}

	_, err = ResolveActingTeam(models.Actor{UserID: "a1", IsAdmin: true, RoleIDs: []string{"R2", "R1"}}, teams)
	wantReason(t, err, leagueerr.AmbiguousTeam)
}

func TestRequireRefereeOrAdmin(t *testing.T) {
	wantReason(t, RequireRefereeOrAdmin(models.Actor{UserID: "r"}, true), leagueerr.ReasonNone)
	wantReason(t, RequireRefereeOrAdmin(models.Actor{UserID: "a", IsAdmin: true}, false), leagueerr.ReasonNone)
	wantReason(t, RequireRefereeOrAdmin(models.Actor{UserID: "x"}, false), leagueerr.NotReferee)
	wantReason(t, RequireAdmin(models.Actor{UserID: "x"}), leagueerr.NotAdmin)
}
