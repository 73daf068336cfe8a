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

// RequestDemand starts a self-release. Nothing changes until the returned
// token is confirmed within the demand TTL.
func (a *App) RequestDemand(ctx context.Context, actor models.Actor) (*DemandPrompt, error) {
	var prompt DemandPrompt
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		st, err := a.standing(ctx, tx, actor.UserID, actor.IsBot)
		if err != nil {
			return err
		}
		s, err := loadSettings(ctx, tx)
		if err != nil {
			return err
		}
		if err := eligibility.CanDemand(st, s.TransactionWindowOpen, a.rules.DemandLimit); err != nil {
			return err
		}
		team, err := getTeam(ctx, tx, st.PlayerMembership.TeamID)
		if err != nil {
			return err
		}

		now := a.now()
		d := models.PendingDemand{
			Token:     uuid.New(),
			PlayerID:  actor.UserID,
			TeamID:    team.ID,
			CreatedAt: now,
			ExpiresAt: now.Add(a.rules.DemandTTL),
		}
		if err := tx.CreateDemand(ctx, d); err != nil {
			return fmt.Errorf("failed to create demand: %w", err)
		}
		prompt = DemandPrompt{
			Token:      d.Token,
			Team:       *team,
			DemandUses: st.DemandUses,
			WindowOpen: s.TransactionWindowOpen,
			ExpiresAt:  d.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("player_id", actor.UserID).Str("token", prompt.Token.String()).Msg("demand requested")
	return &prompt, nil
}

// ConfirmDemand completes a self-release: the membership is removed and the
// demand counter incremented. Uses are only counted on success.
func (a *App) ConfirmDemand(ctx context.Context, actor models.Actor, token uuid.UUID) (*Outcome, error) {
	var (
		res     Outcome
		s       settings.Settings
		expired bool
		m       *models.Membership
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		d, err := a.ownDemand(ctx, tx, actor, token)
		if err != nil {
			return err
		}
		if d.Expired(a.now()) {
			expired = true
			return tx.DeleteDemand(ctx, token)
		}

		st, err := a.standing(ctx, tx, actor.UserID, actor.IsBot)
		if err != nil {
			return err
		}
		if s, err = loadSettings(ctx, tx); err != nil {
			return err
		}
		if err := eligibility.CanDemand(st, s.TransactionWindowOpen, a.rules.DemandLimit); err != nil {
			return err
		}
		// the player moved since the prompt was issued
		if st.PlayerMembership.TeamID != d.TeamID {
			expired = true
			return tx.DeleteDemand(ctx, token)
		}
		team, err := getTeam(ctx, tx, d.TeamID)
		if err != nil {
			return err
		}

		m = st.PlayerMembership
		if err := tx.DeleteMembership(ctx, actor.UserID, team.ID); err != nil {
			return fmt.Errorf("failed to delete membership: %w", err)
		}
		player, err := a.ensurePlayer(ctx, tx, models.Target{UserID: actor.UserID})
		if err != nil {
			return err
		}
		player.DemandUses++
		if err := tx.SavePlayer(ctx, *player); err != nil {
			return fmt.Errorf("failed to count demand: %w", err)
		}
		if err := tx.DeleteDemandsByPlayer(ctx, actor.UserID); err != nil {
			return fmt.Errorf("failed to consume demand: %w", err)
		}
		res.Team = *team
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, leagueerr.New(leagueerr.Expired, leagueerr.DemandExpired, "this demand has expired")
	}

	log.Info().Str("player_id", actor.UserID).Str("team", res.Team.Name).Msg("demand confirmed")

	res.Warnings = a.effects.Run(ctx,
		effects.RevokeRole{UserID: actor.UserID, RoleID: res.Team.RoleID},
		a.transactionLog(s, effects.ActionDemanded, actor.UserID, res.Team, actor.UserID, m.Contract),
	)
	return &res, nil
}

// CancelDemand drops a pending demand. An unknown token is not an error.
func (a *App) CancelDemand(ctx context.Context, actor models.Actor, token uuid.UUID) error {
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := a.ownDemand(ctx, tx, actor, token); err != nil {
			return err
		}
		return tx.DeleteDemand(ctx, token)
	})
	if leagueerr.KindOf(err) == leagueerr.Expired {
		return nil
	}
	return err
}

// SweepExpiredDemands deletes every demand past its deadline
func (a *App) SweepExpiredDemands(ctx context.Context) (int, error) {
	n, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (int, error) {
		return tx.DeleteExpiredDemands(ctx, a.now())
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sweep demands: %w", err)
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("expired demands swept")
	}
	return n, nil
}

func (a *App) ownDemand(ctx context.Context, tx store.Tx, actor models.Actor, token uuid.UUID) (*models.PendingDemand, error) {
	d, err := tx.GetDemand(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, leagueerr.New(leagueerr.Expired, leagueerr.DemandExpired, "this demand has expired or was already processed")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get demand: %w", err)
	}
	if d.PlayerID != actor.UserID {
		return nil, leagueerr.New(leagueerr.Unauthorized, leagueerr.NotDemandOwner, "this demand is not yours")
	}
	return d, nil
}
