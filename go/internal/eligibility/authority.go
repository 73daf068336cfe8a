package eligibility

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
)

// RequireAdmin denies non-administrators.
func RequireAdmin(a models.Actor) error {
	if !a.IsAdmin {
		return leagueerr.New(leagueerr.Unauthorized, leagueerr.NotAdmin, "administrator permission required")
	}
	return nil
}

// RequireRefereeOrAdmin denies callers that are neither.
func RequireRefereeOrAdmin(a models.Actor, isReferee bool) error {
	if a.IsAdmin || isReferee {
		return nil
	}
	return leagueerr.New(leagueerr.Unauthorized, leagueerr.NotReferee, "referee or administrator permission required")
}

// CanActForTeam accepts an administrator holding the team role, or a holder
// of managerRole who manages team and holds its role.
func CanActForTeam(a models.Actor, team models.Team, managerRole string) error {
	if a.IsAdmin && a.HasRole(team.RoleID) {
		return nil
	}
	if managerRole == "" {
		return leagueerr.New(leagueerr.Unauthorized, leagueerr.NotConfigured, "manager role is not configured")
	}
	if !a.HasRole(managerRole) || !a.HasRole(team.RoleID) || !team.IsManagedBy(a.UserID) {
		return leagueerr.New(leagueerr.Unauthorized, leagueerr.NotTeamAuthority, "only the manager of %s can do that", team.Name)
	}
	return nil
}

// ResolveActingTeam picks the team an actor is acting for from the roles they
// hold. teams must be the full team set. One matching team wins outright;
// among several, the single team the actor manages wins; otherwise the
// caller has to name the team.
func ResolveActingTeam(a models.Actor, teams []models.Team) (models.Team, error) {
	var held []models.Team
	for _, t := range teams {
		if a.HasRole(t.RoleID) {
			held = append(held, t)
		}
	}
	switch len(held) {
	case 0:
		return models.Team{}, leagueerr.New(leagueerr.NotFound, leagueerr.NoTeam, "you do not hold any team role")
	case 1:
		return held[0], nil
	}

	var managed []models.Team
	for _, t := range held {
		if t.IsManagedBy(a.UserID) {
			managed = append(managed, t)
		}
	}
	if len(managed) == 1 {
		return managed[0], nil
	}
	return models.Team{}, leagueerr.New(leagueerr.InvalidInput, leagueerr.AmbiguousTeam,
		"you hold %d team roles; specify the team", len(held))
}

// RefereeReader looks up referee records
type RefereeReader interface {
	GetReferee(ctx context.Context, userID string) (*models.Referee, error)
}

// CheckRefereeOrAdmin looks up the actor's referee record before applying RequireRefereeOrAdmin.
func CheckRefereeOrAdmin(ctx context.Context, r RefereeReader, a models.Actor) error {
	if a.IsAdmin {
		return nil
	}
	_, err := r.GetReferee(ctx, a.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to get referee: %w", err)
	}
	return RequireRefereeOrAdmin(a, err == nil)
}
