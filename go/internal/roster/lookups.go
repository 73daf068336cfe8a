package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/eligibility"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/store"
)

func getTeam(ctx context.Context, tx store.Tx, id uuid.UUID) (*models.Team, error) {
	team, err := tx.GetTeam(ctx, id)
	if err != nil {
		return nil, leagueerr.NotFoundAs(err, store.ErrNotFound, leagueerr.NoTeam, "team %s not found", id)
	}
	return team, nil
}

// actingTeam returns teamID's team, or resolves it from the actor's roles when teamID is nil
func actingTeam(ctx context.Context, tx store.Tx, actor models.Actor, teamID uuid.UUID) (*models.Team, error) {
	if teamID != uuid.Nil {
		return getTeam(ctx, tx, teamID)
	}
	teams, err := tx.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	team, err := eligibility.ResolveActingTeam(actor, teams)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (a *App) ensurePlayer(ctx context.Context, tx store.Tx, target models.Target) (*models.Player, error) {
	return store.EnsurePlayer(ctx, tx, target, a.now())
}

func (a *App) standing(ctx context.Context, tx store.Tx, userID string, isBot bool) (eligibility.Standing, error) {
	st, err := eligibility.LoadStanding(ctx, tx, userID, isBot)
	if err != nil {
		return eligibility.Standing{}, fmt.Errorf("failed to load standing: %w", err)
	}
	return st, nil
}

func loadSettings(ctx context.Context, tx store.Tx) (settings.Settings, error) {
	s, err := settings.Load(ctx, tx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}
