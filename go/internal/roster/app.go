package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/eligibility"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/rs/zerolog/log"
)

// App owns every Player to Team transition: offers, direct moves, staff
// assignments, releases and demands. Each transition runs as one unit of work;
// side effects are requested after commit and only ever produce warnings.
type App struct {
	store   store.Store
	effects *effects.Executor
	clock   clockwork.Clock
	rules   Rules
}

// NewApp creates a new roster App
func NewApp(s store.Store, fx *effects.Executor, clock clockwork.Clock, rules Rules) *App {
	return &App{
		store:   s,
		effects: fx,
		clock:   clock,
		rules:   rules,
	}
}

// CreateOffer persists a PendingOffer and delivers the prompt to the target
func (a *App) CreateOffer(ctx context.Context, req CreateOfferRequest) (*OfferResult, error) {
	if err := a.validateContract(req.Contract); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var res OfferResult
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		team, err := actingTeam(ctx, tx, req.Sender, req.TeamID)
		if err != nil {
			return err
		}
		s, err := loadSettings(ctx, tx)
		if err != nil {
			return err
		}
		if err := eligibility.CanActForTeam(req.Sender, *team, string(s.ManagerRole)); err != nil {
			return err
		}
		st, err := a.standing(ctx, tx, req.Target.UserID, req.Target.IsBot)
		if err != nil {
			return err
		}
		if err := eligibility.CanReceiveOffer(req.Sender.UserID, st); err != nil {
			return err
		}

		offer := models.PendingOffer{
			Token:     uuid.New(),
			PlayerID:  req.Target.UserID,
			TeamID:    team.ID,
			SenderID:  req.Sender.UserID,
			Contract:  req.Contract,
			CreatedAt: a.now(),
		}
		if err := tx.CreateOffer(ctx, offer); err != nil {
			return fmt.Errorf("failed to create offer: %w", err)
		}
		res.Offer, res.Team = offer, *team
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("token", res.Offer.Token.String()).
		Str("player_id", res.Offer.PlayerID).
		Str("team", res.Team.Name).
		Str("by", req.Sender.UserID).
		Msg("offer created")

	res.Warnings = a.effects.Run(ctx, effects.OfferPrompt{
		Token:    res.Offer.Token,
		UserID:   res.Offer.PlayerID,
		TeamID:   res.Team.ID,
		TeamName: res.Team.Name,
		SenderID: res.Offer.SenderID,
		Contract: res.Offer.Contract,
	})
	return &res, nil
}

// ResolveOffer consumes the offer identified by token. Only the offer's
// target may resolve it; a missing or consumed token is Expired.
func (a *App) ResolveOffer(ctx context.Context, resolver models.Target, token uuid.UUID, decision models.OfferDecision) (*ResolveOfferResult, error) {
	if decision != models.OfferDecisionAccept && decision != models.OfferDecisionDecline {
		return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "unknown decision %q", decision)
	}

	res := ResolveOfferResult{Decision: decision}
	var s settings.Settings
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		offer, err := tx.GetOffer(ctx, token)
		if errors.Is(err, store.ErrNotFound) {
			return leagueerr.New(leagueerr.Expired, leagueerr.OfferExpired, "this offer has expired or was already processed")
		}
		if err != nil {
			return fmt.Errorf("failed to get offer: %w", err)
		}
		if offer.PlayerID != resolver.UserID {
			return leagueerr.New(leagueerr.Unauthorized, leagueerr.NotOfferTarget, "this offer is not for you")
		}
		team, err := getTeam(ctx, tx, offer.TeamID)
		if err != nil {
			return err
		}
		res.Team = *team

		if err := tx.DeleteOffer(ctx, token); err != nil {
			return fmt.Errorf("failed to consume offer: %w", err)
		}
		if decision == models.OfferDecisionDecline {
			return nil
		}

		st, err := a.standing(ctx, tx, resolver.UserID, resolver.IsBot)
		if err != nil {
			return err
		}
		if err := eligibility.CanReceiveOffer(offer.SenderID, st); err != nil {
			return err
		}
		if s, err = loadSettings(ctx, tx); err != nil {
			return err
		}
		contract := offer.Contract
		m, err := a.createMembership(ctx, tx, resolver, *team, models.MembershipRolePlayer, &contract)
		if err != nil {
			return err
		}
		res.Membership = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("token", token.String()).
		Str("player_id", resolver.UserID).
		Str("team", res.Team.Name).
		Str("decision", string(decision)).
		Msg("offer resolved")

	if res.Membership != nil {
		res.Warnings = a.effects.Run(ctx,
			effects.GrantRole{UserID: resolver.UserID, RoleID: res.Team.RoleID},
			a.transactionLog(s, effects.ActionSigned, resolver.UserID, res.Team, resolver.UserID, res.Membership.Contract),
		)
	}
	return &res, nil
}

// DirectAdd signs target to teamID without an offer. Administrators only.
func (a *App) DirectAdd(ctx context.Context, admin models.Actor, target models.Target, teamID uuid.UUID, contract *models.Contract) (*MembershipResult, error) {
	if err := eligibility.RequireAdmin(admin); err != nil {
		return nil, err
	}

	var (
		res MembershipResult
		s   settings.Settings
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		team, err := getTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		st, err := a.standing(ctx, tx, target.UserID, target.IsBot)
		if err != nil {
			return err
		}
		if err := eligibility.CanBeSignedDirectly(st, *team); err != nil {
			return err
		}
		if s, err = loadSettings(ctx, tx); err != nil {
			return err
		}
		m, err := a.createMembership(ctx, tx, target, *team, models.MembershipRolePlayer, contract)
		if err != nil {
			return err
		}
		res.Membership, res.Team = *m, *team
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("player_id", target.UserID).Str("team", res.Team.Name).Str("by", admin.UserID).Msg("player added directly")

	res.Warnings = a.effects.Run(ctx,
		effects.GrantRole{UserID: target.UserID, RoleID: res.Team.RoleID},
		a.transactionLog(s, effects.ActionAdded, target.UserID, res.Team, admin.UserID, contract),
	)
	return &res, nil
}

// DirectRemove deletes playerID's player membership on teamID. Administrators only.
func (a *App) DirectRemove(ctx context.Context, admin models.Actor, playerID string, teamID uuid.UUID) (*Outcome, error) {
	if err := eligibility.RequireAdmin(admin); err != nil {
		return nil, err
	}
	return a.removePlayer(ctx, admin, playerID, func(ctx context.Context, tx store.Tx) (*models.Team, error) {
		return getTeam(ctx, tx, teamID)
	}, effects.ActionRemoved)
}

// Release lets a team's manager (or an administrator holding the team role)
// drop a player. A nil teamID resolves the team from the actor's roles.
func (a *App) Release(ctx context.Context, actor models.Actor, playerID string, teamID uuid.UUID) (*Outcome, error) {
	if playerID == actor.UserID {
		return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.SelfTarget, "you cannot release yourself")
	}
	return a.removePlayer(ctx, actor, playerID, func(ctx context.Context, tx store.Tx) (*models.Team, error) {
		team, err := actingTeam(ctx, tx, actor, teamID)
		if err != nil {
			return nil, err
		}
		s, err := loadSettings(ctx, tx)
		if err != nil {
			return nil, err
		}
		if err := eligibility.CanActForTeam(actor, *team, string(s.ManagerRole)); err != nil {
			return nil, err
		}
		return team, nil
	}, effects.ActionReleased)
}

func (a *App) removePlayer(
	ctx context.Context,
	actor models.Actor,
	playerID string,
	resolveTeam func(ctx context.Context, tx store.Tx) (*models.Team, error),
	action effects.TransactionAction,
) (*Outcome, error) {
	var (
		res      Outcome
		s        settings.Settings
		keepRole bool
		contract *models.Contract
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		team, err := resolveTeam(ctx, tx)
		if err != nil {
			return err
		}
		m, err := tx.GetMembership(ctx, playerID, team.ID)
		if err != nil {
			return leagueerr.NotFoundAs(err, store.ErrNotFound, leagueerr.NoMembership, "player is not on %s", team.Name)
		}
		if m.Role != models.MembershipRolePlayer {
			return leagueerr.New(leagueerr.Conflict, leagueerr.IsManager, "use clear manager to remove a manager")
		}
		if err := tx.DeleteMembership(ctx, playerID, team.ID); err != nil {
			return fmt.Errorf("failed to delete membership: %w", err)
		}
		if err := tx.DeleteDemandsByPlayer(ctx, playerID); err != nil {
			return fmt.Errorf("failed to drop pending demands: %w", err)
		}
		after, err := a.standing(ctx, tx, playerID, false)
		if err != nil {
			return err
		}
		if s, err = loadSettings(ctx, tx); err != nil {
			return err
		}
		keepRole = after.Assists(team.ID) || after.Manages(team.ID)
		contract = m.Contract
		res.Team = *team
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("player_id", playerID).Str("team", res.Team.Name).Str("action", string(action)).Str("by", actor.UserID).Msg("player removed")

	fx := []effects.Effect{a.transactionLog(s, action, playerID, res.Team, actor.UserID, contract)}
	if !keepRole {
		fx = append([]effects.Effect{effects.RevokeRole{UserID: playerID, RoleID: res.Team.RoleID}}, fx...)
	}
	res.Warnings = a.effects.Run(ctx, fx...)
	return &res, nil
}

func (a *App) createMembership(
	ctx context.Context,
	tx store.Tx,
	target models.Target,
	team models.Team,
	role models.MembershipRole,
	contract *models.Contract,
) (*models.Membership, error) {
	if _, err := a.ensurePlayer(ctx, tx, target); err != nil {
		return nil, err
	}
	m := models.Membership{
		ID:       uuid.New(),
		PlayerID: target.UserID,
		TeamID:   team.ID,
		Role:     role,
		Contract: contract,
		JoinedAt: a.now(),
	}
	if err := tx.CreateMembership(ctx, m); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, leagueerr.New(leagueerr.Conflict, leagueerr.AlreadySigned, "user already belongs to %s", team.Name)
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}
	return &m, nil
}

func (a *App) transactionLog(
	s settings.Settings,
	action effects.TransactionAction,
	playerID string,
	team models.Team,
	actorID string,
	contract *models.Contract,
) effects.Effect {
	if s.TransactionsChannel == "" {
		return nil
	}
	return effects.TransactionLog{
		ChannelID: string(s.TransactionsChannel),
		Action:    action,
		PlayerID:  playerID,
		TeamID:    team.ID,
		TeamName:  team.Name,
		ActorID:   actorID,
		Contract:  contract,
		At:        a.now(),
	}
}

func (a *App) validateContract(c models.Contract) error {
	if strings.TrimSpace(c.Salary) == "" {
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "salary is required")
	}
	if strings.TrimSpace(c.Duration) == "" {
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "duration is required")
	}
	return nil
}

func (a *App) now() time.Time {
	return a.clock.Now().UTC()
}
