// Package referees manages the league's match officials.
package referees

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/eligibility"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/rs/zerolog/log"
)

type App struct {
	store   store.Store
	effects *effects.Executor
	clock   clockwork.Clock
}

func NewApp(s store.Store, fx *effects.Executor, clock clockwork.Clock) *App {
	return &App{store: s, effects: fx, clock: clock}
}

// Result is a committed referee change
type Result struct {
	Referee  models.Referee    `json:"referee"`
	Warnings []effects.Warning `json:"warnings,omitempty"`
}

// Assign makes target a referee and grants the referee role
func (a *App) Assign(ctx context.Context, admin models.Actor, target models.Target) (*Result, error) {
	if err := eligibility.RequireAdmin(admin); err != nil {
		return nil, err
	}

	var (
		res  Result
		role settings.RoleRef
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		s, err := settings.Load(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if role = s.RefereeRole; role == "" {
			return leagueerr.New(leagueerr.InvalidInput, leagueerr.NotConfigured, "referee role is not configured")
		}
		st, err := eligibility.LoadStanding(ctx, tx, target.UserID, target.IsBot)
		if err != nil {
			return fmt.Errorf("failed to load standing: %w", err)
		}
		if err := eligibility.CanBecomeReferee(st); err != nil {
			return err
		}
		if _, err := store.EnsurePlayer(ctx, tx, target, a.clock.Now().UTC()); err != nil {
			return err
		}
		res.Referee = models.Referee{UserID: target.UserID, AssignedAt: a.clock.Now().UTC()}
		if err := tx.AddReferee(ctx, res.Referee); err != nil {
			return fmt.Errorf("failed to add referee: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", target.UserID).Str("by", admin.UserID).Msg("referee assigned")
	res.Warnings = a.effects.Run(ctx, effects.GrantRole{UserID: target.UserID, RoleID: string(role)})
	return &res, nil
}

// Remove takes userID off the referee list
func (a *App) Remove(ctx context.Context, admin models.Actor, userID string) (*Result, error) {
	if err := eligibility.RequireAdmin(admin); err != nil {
		return nil, err
	}

	var (
		res  Result
		role settings.RoleRef
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		ref, err := tx.GetReferee(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return leagueerr.New(leagueerr.NotFound, leagueerr.NotReferee, "user is not a referee")
		}
		if err != nil {
			return fmt.Errorf("failed to get referee: %w", err)
		}
		if err := tx.RemoveReferee(ctx, userID); err != nil {
			return fmt.Errorf("failed to remove referee: %w", err)
		}
		s, err := settings.Load(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		role = s.RefereeRole
		res.Referee = *ref
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID).Str("by", admin.UserID).Msg("referee removed")
	if role != "" {
		res.Warnings = a.effects.Run(ctx, effects.RevokeRole{UserID: userID, RoleID: string(role)})
	}
	return &res, nil
}

// List returns every referee
func (a *App) List(ctx context.Context) ([]models.Referee, error) {
	return store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) ([]models.Referee, error) {
		return tx.ListReferees(ctx)
	})
}
