package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/eligibility"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/rs/zerolog/log"
)

// AssignManager makes target the manager of teamID. Administrators only.
func (a *App) AssignManager(ctx context.Context, admin models.Actor, target models.Target, teamID uuid.UUID) (*MembershipResult, error) {
	if err := eligibility.RequireAdmin(admin); err != nil {
		return nil, err
	}

	var (
		res MembershipResult
		s   settings.Settings
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		var err error
		if s, err = loadSettings(ctx, tx); err != nil {
			return err
		}
		if s.ManagerRole == "" {
			return leagueerr.New(leagueerr.InvalidInput, leagueerr.NotConfigured, "manager role is not configured")
		}
		team, err := getTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		st, err := a.standing(ctx, tx, target.UserID, target.IsBot)
		if err != nil {
			return err
		}
		if err := eligibility.CanBecomeManager(st, *team); err != nil {
			return err
		}
		m, err := a.createMembership(ctx, tx, target, *team, models.MembershipRoleManager, nil)
		if err != nil {
			return err
		}
		if err := tx.SetTeamManager(ctx, team.ID, &target.UserID); err != nil {
			return fmt.Errorf("failed to set manager: %w", err)
		}
		team.ManagerID = &target.UserID
		res.Membership, res.Team = *m, *team
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", target.UserID).Str("team", res.Team.Name).Str("by", admin.UserID).Msg("manager assigned")

	res.Warnings = a.effects.Run(ctx,
		effects.GrantRole{UserID: target.UserID, RoleID: res.Team.RoleID},
		effects.GrantRole{UserID: target.UserID, RoleID: string(s.ManagerRole)},
	)
	return &res, nil
}

// ClearManager removes the manager of teamID. Administrators only.
func (a *App) ClearManager(ctx context.Context, admin models.Actor, teamID uuid.UUID) (*Outcome, error) {
	if err := eligibility.RequireAdmin(admin); err != nil {
		return nil, err
	}

	var (
		res       Outcome
		s         settings.Settings
		managerID string
		after     eligibility.Standing
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		team, err := getTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if !team.HasManager() {
			return leagueerr.New(leagueerr.NotFound, leagueerr.TeamHasNoManager, "%s has no manager", team.Name)
		}
		managerID = *team.ManagerID
		if err := tx.SetTeamManager(ctx, team.ID, nil); err != nil {
			return fmt.Errorf("failed to clear manager: %w", err)
		}
		if err := tx.DeleteMembership(ctx, managerID, team.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to delete manager membership: %w", err)
		}
		if after, err = a.standing(ctx, tx, managerID, false); err != nil {
			return err
		}
		if s, err = loadSettings(ctx, tx); err != nil {
			return err
		}
		team.ManagerID = nil
		res.Team = *team
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", managerID).Str("team", res.Team.Name).Str("by", admin.UserID).Msg("manager cleared")

	var fx []effects.Effect
	if !after.PlaysFor(res.Team.ID) && !after.Assists(res.Team.ID) {
		fx = append(fx, effects.RevokeRole{UserID: managerID, RoleID: res.Team.RoleID})
	}
	if s.ManagerRole != "" && !after.IsManager() && !(after.IsAssistant() && assistantRole(s) == s.ManagerRole) {
		fx = append(fx, effects.RevokeRole{UserID: managerID, RoleID: string(s.ManagerRole)})
	}
	res.Warnings = a.effects.Run(ctx, fx...)
	return &res, nil
}

// AssignAssistantManager adds target to teamID's staff. Administrators only.
func (a *App) AssignAssistantManager(ctx context.Context, admin models.Actor, target models.Target, teamID uuid.UUID) (*Outcome, error) {
	if err := eligibility.RequireAdmin(admin); err != nil {
		return nil, err
	}

	var (
		res  Outcome
		role settings.RoleRef
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		s, err := loadSettings(ctx, tx)
		if err != nil {
			return err
		}
		if role = assistantRole(s); role == "" {
			return leagueerr.New(leagueerr.InvalidInput, leagueerr.NotConfigured, "assistant manager role is not configured")
		}
		team, err := getTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		staff, err := tx.ListAssistantManagersByTeam(ctx, team.ID)
		if err != nil {
			return fmt.Errorf("failed to list assistant managers: %w", err)
		}
		st, err := a.standing(ctx, tx, target.UserID, target.IsBot)
		if err != nil {
			return err
		}
		if err := eligibility.CanBecomeAssistantManager(st, *team, len(staff), a.rules.AssistantCapacity); err != nil {
			return err
		}
		if _, err := a.ensurePlayer(ctx, tx, target); err != nil {
			return err
		}
		err = tx.AddAssistantManager(ctx, models.AssistantManager{UserID: target.UserID, TeamID: team.ID, AssignedAt: a.now()})
		if errors.Is(err, store.ErrDuplicate) {
			return leagueerr.New(leagueerr.Conflict, leagueerr.AlreadyAssistant, "user already assists %s", team.Name)
		}
		if err != nil {
			return fmt.Errorf("failed to add assistant manager: %w", err)
		}
		res.Team = *team
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", target.UserID).Str("team", res.Team.Name).Str("by", admin.UserID).Msg("assistant manager assigned")

	res.Warnings = a.effects.Run(ctx,
		effects.GrantRole{UserID: target.UserID, RoleID: res.Team.RoleID},
		effects.GrantRole{UserID: target.UserID, RoleID: string(role)},
	)
	return &res, nil
}

// ClearAssistantManager removes userID from teamID's staff. An empty userID
// clears the team's only assistant manager.
func (a *App) ClearAssistantManager(ctx context.Context, admin models.Actor, teamID uuid.UUID, userID string) (*Outcome, error) {
	if err := eligibility.RequireAdmin(admin); err != nil {
		return nil, err
	}

	var (
		res   Outcome
		s     settings.Settings
		after eligibility.Standing
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		team, err := getTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		staff, err := tx.ListAssistantManagersByTeam(ctx, team.ID)
		if err != nil {
			return fmt.Errorf("failed to list assistant managers: %w", err)
		}
		if userID, err = pickAssistant(*team, staff, userID); err != nil {
			return err
		}
		if err := tx.RemoveAssistantManager(ctx, userID, team.ID); err != nil {
			return fmt.Errorf("failed to remove assistant manager: %w", err)
		}
		if after, err = a.standing(ctx, tx, userID, false); err != nil {
			return err
		}
		if s, err = loadSettings(ctx, tx); err != nil {
			return err
		}
		res.Team = *team
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID).Str("team", res.Team.Name).Str("by", admin.UserID).Msg("assistant manager cleared")

	var fx []effects.Effect
	if !after.PlaysFor(res.Team.ID) && !after.Manages(res.Team.ID) {
		fx = append(fx, effects.RevokeRole{UserID: userID, RoleID: res.Team.RoleID})
	}
	role := assistantRole(s)
	if role != "" && !after.IsAssistant() && !(after.IsManager() && role == s.ManagerRole) {
		fx = append(fx, effects.RevokeRole{UserID: userID, RoleID: string(role)})
	}
	res.Warnings = a.effects.Run(ctx, fx...)
	return &res, nil
}

func pickAssistant(team models.Team, staff []models.AssistantManager, userID string) (string, error) {
	if userID != "" {
		for _, am := range staff {
			if am.UserID == userID {
				return userID, nil
			}
		}
		return "", leagueerr.New(leagueerr.NotFound, leagueerr.NotAssistant, "user is not an assistant manager of %s", team.Name)
	}
	switch len(staff) {
	case 0:
		return "", leagueerr.New(leagueerr.NotFound, leagueerr.NotAssistant, "%s has no assistant manager", team.Name)
	case 1:
		return staff[0].UserID, nil
	}
	return "", leagueerr.New(leagueerr.InvalidInput, leagueerr.AmbiguousAssistant,
		"%s has %d assistant managers; specify one", team.Name, len(staff))
}

// assistantRole falls back to the manager role when no dedicated role is configured
func assistantRole(s settings.Settings) settings.RoleRef {
	if s.AssistantManagerRole != "" {
		return s.AssistantManagerRole
	}
	return s.ManagerRole
}
