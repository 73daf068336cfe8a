package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/eligibility"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/rs/zerolog/log"
)

const defaultPageLimit = 25

// App handles teams business logic
type App struct {
	store store.Store
	clock clockwork.Clock
}

// NewApp creates a new teams App
func NewApp(s store.Store, clock clockwork.Clock) *App {
	return &App{
		store: s,
		clock: clock,
	}
}

// CreateTeam creates a new team with validation. Administrators only.
func (a *App) CreateTeam(ctx context.Context, actor models.Actor, req CreateTeamRequest) (*models.Team, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := a.validateCreateTeamRequest(&req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	team, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*models.Team, error) {
		if _, err := tx.GetTeamByRole(ctx, req.RoleID); err == nil {
			return nil, leagueerr.New(leagueerr.Conflict, leagueerr.DuplicateTeam, "a team with this role already exists")
		}
		if _, err := tx.GetTeamByName(ctx, req.Name); err == nil {
			return nil, leagueerr.New(leagueerr.Conflict, leagueerr.DuplicateTeam, "a team named %q already exists", req.Name)
		}
		team := models.Team{
			ID:        uuid.New(),
			Name:      req.Name,
			ShortCode: req.ShortCode,
			RoleID:    req.RoleID,
			CreatedAt: a.clock.Now().UTC(),
		}
		if err := tx.CreateTeam(ctx, team); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return nil, leagueerr.New(leagueerr.Conflict, leagueerr.DuplicateTeam, "team %q already exists", req.Name)
			}
			return nil, fmt.Errorf("failed to create team: %w", err)
		}
		return &team, nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("team_id", team.ID.String()).Str("name", team.Name).Str("role_id", team.RoleID).Msg("team created")
	return team, nil
}

// DeleteTeam deletes a team together with its memberships, staff, offers and matches
func (a *App) DeleteTeam(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Team, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}

	team, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*models.Team, error) {
		team, err := getTeam(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if err := tx.DeleteTeam(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete team: %w", err)
		}
		return team, nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("team_id", team.ID.String()).Str("name", team.Name).Msg("team deleted")
	return team, nil
}

// GetTeam retrieves a team by ID
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*models.Team, error) {
		return getTeam(ctx, tx, id)
	})
}

// GetTeamByRole retrieves the team owning a group role
func (a *App) GetTeamByRole(ctx context.Context, roleID string) (*models.Team, error) {
	return store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*models.Team, error) {
		team, err := tx.GetTeamByRole(ctx, roleID)
		if err != nil {
			return nil, leagueerr.NotFoundAs(err, store.ErrNotFound, leagueerr.NoTeam, "no team found with role %s", roleID)
		}
		return team, nil
	})
}

// ListTeams retrieves teams ordered by name, one page at a time
func (a *App) ListTeams(ctx context.Context, pagination PaginationParams) (*TeamListResponse, error) {
	teams, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) ([]models.Team, error) {
		return tx.ListTeams(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if pagination.Limit <= 0 {
		pagination.Limit = defaultPageLimit
	}

	page := a.applyPagination(teams, pagination)
	return &TeamListResponse{
		Teams:   page,
		Total:   len(teams),
		Limit:   pagination.Limit,
		Offset:  pagination.Offset,
		HasMore: pagination.Offset+len(page) < len(teams),
	}, nil
}

// ResolveActingTeam finds the team actor is acting for from the roles they hold
func (a *App) ResolveActingTeam(ctx context.Context, actor models.Actor) (*models.Team, error) {
	return store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*models.Team, error) {
		teams, err := tx.ListTeams(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list teams: %w", err)
		}
		team, err := eligibility.ResolveActingTeam(actor, teams)
		if err != nil {
			return nil, err
		}
		return &team, nil
	})
}

// Roster returns the manager, assistant managers and players of a team
func (a *App) Roster(ctx context.Context, id uuid.UUID) (*Roster, error) {
	return store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*Roster, error) {
		team, err := getTeam(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		r := &Roster{Team: *team, Players: []RosterEntry{}}

		members, err := tx.ListMembershipsByTeam(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to list memberships: %w", err)
		}
		for _, m := range members {
			entry, err := entryFor(ctx, tx, m.PlayerID)
			if err != nil {
				return nil, err
			}
			entry.Contract = m.Contract
			if m.Role == models.MembershipRoleManager {
				r.Manager = &entry
				continue
			}
			r.Players = append(r.Players, entry)
		}
		if r.Manager == nil && team.HasManager() {
			entry, err := entryFor(ctx, tx, *team.ManagerID)
			if err != nil {
				return nil, err
			}
			r.Manager = &entry
		}

		staff, err := tx.ListAssistantManagersByTeam(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to list assistant managers: %w", err)
		}
		for _, am := range staff {
			entry, err := entryFor(ctx, tx, am.UserID)
			if err != nil {
				return nil, err
			}
			r.Assistants = append(r.Assistants, entry)
		}
		return r, nil
	})
}

func entryFor(ctx context.Context, tx store.Tx, userID string) (RosterEntry, error) {
	p, err := tx.GetPlayer(ctx, userID)
	switch {
	case err == nil:
		return RosterEntry{UserID: userID, Name: p.Name}, nil
	case errors.Is(err, store.ErrNotFound):
		return RosterEntry{UserID: userID, Name: userID}, nil
	}
	return RosterEntry{}, fmt.Errorf("failed to get player: %w", err)
}

func getTeam(ctx context.Context, tx store.Tx, id uuid.UUID) (*models.Team, error) {
	team, err := tx.GetTeam(ctx, id)
	if err != nil {
		return nil, leagueerr.NotFoundAs(err, store.ErrNotFound, leagueerr.NoTeam, "team %s not found", id)
	}
	return team, nil
}

// applyPagination applies pagination to teams slice
func (a *App) applyPagination(teams []models.Team, pagination PaginationParams) []models.Team {
	if pagination.Offset >= len(teams) {
		return []models.Team{}
	}

	end := min(pagination.Offset+pagination.Limit, len(teams))
	return teams[pagination.Offset:end]
}

// validateCreateTeamRequest trims and validates create team request
func (a *App) validateCreateTeamRequest(req *CreateTeamRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.ShortCode = strings.ToUpper(strings.TrimSpace(req.ShortCode))
	req.RoleID = strings.TrimSpace(req.RoleID)

	if req.Name == "" {
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "name is required")
	}
	if req.ShortCode == "" {
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "short code is required")
	}
	if req.RoleID == "" {
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "role is required")
	}
	return nil
}
