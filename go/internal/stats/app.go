// Package stats keeps the cumulative player counters and leaderboards.
package stats

import (
	"context"
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

const (
	// MaxMentions is how many players one mention call may credit
	MaxMentions = 5
	// LeaderboardSize bounds TopScorers and TopAssists
	LeaderboardSize = 10
)

type App struct {
	store   store.Store
	effects *effects.Executor
	clock   clockwork.Clock
}

func NewApp(s store.Store, fx *effects.Executor, clock clockwork.Clock) *App {
	return &App{store: s, effects: fx, clock: clock}
}

// Change is one applied counter adjustment
type Change struct {
	Player models.Player `json:"player"`
	Stat   models.Stat   `json:"stat"`
	Old    int           `json:"old"`
	New    int           `json:"new"`
}

// ChangeResult reports committed adjustments
type ChangeResult struct {
	Changes  []Change          `json:"changes"`
	Warnings []effects.Warning `json:"warnings,omitempty"`
}

// Add credits stat to each target. Referees or administrators. Only
// mentions accept more than one target.
func (a *App) Add(ctx context.Context, actor models.Actor, stat models.Stat, targets ...models.Target) (*ChangeResult, error) {
	if err := validate(stat, targets); err != nil {
		return nil, err
	}

	var (
		res ChangeResult
		s   settings.Settings
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		if err := eligibility.CheckRefereeOrAdmin(ctx, tx, actor); err != nil {
			return err
		}
		var err error
		if s, err = settings.Load(ctx, tx); err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		for _, target := range targets {
			p, err := store.EnsurePlayer(ctx, tx, target, a.clock.Now().UTC())
			if err != nil {
				return err
			}
			c, err := adjust(ctx, tx, *p, stat, 1)
			if err != nil {
				return err
			}
			res.Changes = append(res.Changes, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Warnings = a.announce(ctx, s, actor, res.Changes)
	return &res, nil
}

// Remove takes one from userID's stat, never going below zero. Administrators only.
func (a *App) Remove(ctx context.Context, actor models.Actor, stat models.Stat, userID string) (*ChangeResult, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if !stat.Valid() {
		return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.InvalidStat, "unknown stat %q", stat)
	}

	var (
		res ChangeResult
		s   settings.Settings
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		p, err := tx.GetPlayer(ctx, userID)
		if err != nil {
			return leagueerr.NotFoundAs(err, store.ErrNotFound, leagueerr.ReasonNone, "player not found")
		}
		if s, err = settings.Load(ctx, tx); err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		c, err := adjust(ctx, tx, *p, stat, -1)
		if err != nil {
			return err
		}
		res.Changes = []Change{c}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Warnings = a.announce(ctx, s, actor, res.Changes)
	return &res, nil
}

// Profile returns target's counters, creating the player on first sight
func (a *App) Profile(ctx context.Context, target models.Target) (*models.Player, error) {
	if target.IsBot {
		return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.BotTarget, "bots have no stats")
	}
	return store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*models.Player, error) {
		return store.EnsurePlayer(ctx, tx, target, a.clock.Now().UTC())
	})
}

// TopScorers ranks players by goals
func (a *App) TopScorers(ctx context.Context) ([]models.Player, error) {
	return a.leaderboard(ctx, models.StatGoals)
}

// TopAssists ranks players by assists
func (a *App) TopAssists(ctx context.Context) ([]models.Player, error) {
	return a.leaderboard(ctx, models.StatAssists)
}

func (a *App) leaderboard(ctx context.Context, stat models.Stat) ([]models.Player, error) {
	players, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) ([]models.Player, error) {
		return tx.ListTopPlayers(ctx, stat, LeaderboardSize)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list top players by %s: %w", stat, err)
	}
	return players, nil
}

func (a *App) announce(ctx context.Context, s settings.Settings, actor models.Actor, changes []Change) []effects.Warning {
	fx := make([]effects.Effect, 0, len(changes))
	for _, c := range changes {
		log.Info().
			Str("player_id", c.Player.UserID).
			Str("stat", string(c.Stat)).
			Int("old", c.Old).
			Int("new", c.New).
			Str("by", actor.UserID).
			Msg("stat changed")
		if s.LogChannel == "" {
			continue
		}
		fx = append(fx, effects.StatChange{
			ChannelID: string(s.LogChannel),
			PlayerID:  c.Player.UserID,
			Stat:      c.Stat,
			Delta:     c.New - c.Old,
			Total:     c.New,
			ActorID:   actor.UserID,
		})
	}
	return a.effects.Run(ctx, fx...)
}

func adjust(ctx context.Context, tx store.Tx, p models.Player, stat models.Stat, delta int) (Change, error) {
	old := p.Value(stat)
	p = p.WithValue(stat, old+delta)
	if err := tx.SavePlayer(ctx, p); err != nil {
		return Change{}, fmt.Errorf("failed to save player: %w", err)
	}
	return Change{Player: p, Stat: stat, Old: old, New: p.Value(stat)}, nil
}

func validate(stat models.Stat, targets []models.Target) error {
	if !stat.Valid() {
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.InvalidStat, "unknown stat %q", stat)
	}
	limit := 1
	if stat == models.StatMentions {
		limit = MaxMentions
	}
	if len(targets) == 0 {
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "at least one player is required")
	}
	if len(targets) > limit {
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.TooManyPlayers, "%s accepts at most %d players", stat, limit)
	}
	for _, t := range targets {
		if t.IsBot {
			return leagueerr.New(leagueerr.InvalidInput, leagueerr.BotTarget, "cannot add stats to bots")
		}
	}
	return nil
}
