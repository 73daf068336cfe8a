// Package eligibility answers "can X become Y" questions over a snapshot of the
// league. Every predicate is pure and returns nil or a *leagueerr.Error with a
// specific reason.
package eligibility

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
)

// Standing is one user's relationships across the league
type Standing struct {
	UserID           string
	IsBot            bool
	IsReferee        bool
	ManagedTeams     []uuid.UUID
	AssistantTeams   []uuid.UUID
	PlayerTeams      []uuid.UUID
	PlayerMembership *models.Membership
	DemandUses       int
}

func (s Standing) IsManager() bool   { return len(s.ManagedTeams) > 0 }
func (s Standing) IsAssistant() bool { return len(s.AssistantTeams) > 0 }
func (s Standing) IsPlayer() bool    { return len(s.PlayerTeams) > 0 }

// Manages reports whether the user manages teamID
func (s Standing) Manages(teamID uuid.UUID) bool { return slices.Contains(s.ManagedTeams, teamID) }

// Assists reports whether the user is an assistant manager of teamID
func (s Standing) Assists(teamID uuid.UUID) bool { return slices.Contains(s.AssistantTeams, teamID) }

// PlaysFor reports whether the user holds a player membership on teamID
func (s Standing) PlaysFor(teamID uuid.UUID) bool { return slices.Contains(s.PlayerTeams, teamID) }

// Reader is the slice of the store a Standing is built from
type Reader interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetPlayer(ctx context.Context, userID string) (*models.Player, error)
	ListMembershipsByPlayer(ctx context.Context, playerID string) ([]models.Membership, error)
	ListAssistantManagersByUser(ctx context.Context, userID string) ([]models.AssistantManager, error)
	GetReferee(ctx context.Context, userID string) (*models.Referee, error)
}

// LoadStanding snapshots userID's relationships inside the current unit of work.
// Managers are found by scanning every team's manager reference along with
// manager memberships; assistant managers include the legacy team column.
func LoadStanding(ctx context.Context, r Reader, userID string, isBot bool) (Standing, error) {
	st := Standing{UserID: userID, IsBot: isBot}

	teams, err := r.ListTeams(ctx)
	if err != nil {
		return Standing{}, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, t := range teams {
		if t.IsManagedBy(userID) {
			st.ManagedTeams = appendUnique(st.ManagedTeams, t.ID)
		}
		if t.LegacyAssistantManagerID != nil && *t.LegacyAssistantManagerID == userID {
			st.AssistantTeams = appendUnique(st.AssistantTeams, t.ID)
		}
	}

	memberships, err := r.ListMembershipsByPlayer(ctx, userID)
	if err != nil {
		return Standing{}, fmt.Errorf("failed to list memberships: %w", err)
	}
	for _, m := range memberships {
		switch m.Role {
		case models.MembershipRolePlayer:
			st.PlayerTeams = appendUnique(st.PlayerTeams, m.TeamID)
			if st.PlayerMembership == nil {
				st.PlayerMembership = &m
			}
		case models.MembershipRoleManager:
			st.ManagedTeams = appendUnique(st.ManagedTeams, m.TeamID)
		}
	}

	assistants, err := r.ListAssistantManagersByUser(ctx, userID)
	if err != nil {
		return Standing{}, fmt.Errorf("failed to list assistant managers: %w", err)
	}
	for _, am := range assistants {
		st.AssistantTeams = appendUnique(st.AssistantTeams, am.TeamID)
	}

	if _, err := r.GetReferee(ctx, userID); err == nil {
		st.IsReferee = true
	} else if !errors.Is(err, store.ErrNotFound) {
		return Standing{}, fmt.Errorf("failed to get referee: %w", err)
	}

	player, err := r.GetPlayer(ctx, userID)
	switch {
	case err == nil:
		st.DemandUses = player.DemandUses
	case !errors.Is(err, store.ErrNotFound):
		return Standing{}, fmt.Errorf("failed to get player: %w", err)
	}

	return st, nil
}

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}
