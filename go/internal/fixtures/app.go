// Package fixtures owns the match lifecycle and the league-wide fixture posting.
package fixtures

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// App implements match and fixture posting operations
type App struct {
	store   store.Store
	effects *effects.Executor
	clock   clockwork.Clock
}

// NewApp creates a new fixtures App
func NewApp(s store.Store, fx *effects.Executor, clock clockwork.Clock) *App {
	return &App{
		store:   s,
		effects: fx,
		clock:   clock,
	}
}

// MatchView is a match with its teams resolved
type MatchView struct {
	Match    models.Match      `json:"match"`
	Home     models.Team       `json:"home"`
	Away     models.Team       `json:"away"`
	Warnings []effects.Warning `json:"warnings,omitempty"`
}

// Line renders the match as a fixture listing line
func (v MatchView) Line() models.FixtureLine {
	return models.FixtureLine{
		MatchID:   v.Match.ID,
		HomeTeam:  v.Home.Name,
		AwayTeam:  v.Away.Name,
		Stadium:   v.Match.Stadium,
		KickoffAt: v.Match.KickoffAt,
	}
}

// ParseKickoff combines a YYYY-MM-DD date and a 24h HH:MM time into a UTC instant
func ParseKickoff(date, clock string) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, leagueerr.New(leagueerr.InvalidInput, leagueerr.InvalidDate, "date must be YYYY-MM-DD, got %q", date)
	}
	t, err := time.Parse(timeLayout, clock)
	if err != nil || len(clock) != len(timeLayout) {
		return time.Time{}, leagueerr.New(leagueerr.InvalidInput, leagueerr.InvalidTime, "time must be HH:MM (24h), got %q", clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func (a *App) now() time.Time {
	return a.clock.Now().UTC()
}

func getMatch(ctx context.Context, tx store.Tx, id uuid.UUID) (*models.Match, error) {
	m, err := tx.GetMatch(ctx, id)
	if err != nil {
		return nil, leagueerr.NotFoundAs(err, store.ErrNotFound, leagueerr.ReasonNone, "match %s not found", id)
	}
	return m, nil
}

func getTeam(ctx context.Context, tx store.Tx, id uuid.UUID) (*models.Team, error) {
	t, err := tx.GetTeam(ctx, id)
	if err != nil {
		return nil, leagueerr.NotFoundAs(err, store.ErrNotFound, leagueerr.NoTeam, "team %s not found", id)
	}
	return t, nil
}

func teamByName(ctx context.Context, tx store.Tx, name string) (*models.Team, error) {
	t, err := tx.GetTeamByName(ctx, name)
	if err != nil {
		return nil, leagueerr.NotFoundAs(err, store.ErrNotFound, leagueerr.NoTeam, "team %q does not exist", name)
	}
	return t, nil
}

func view(ctx context.Context, tx store.Tx, m models.Match) (*MatchView, error) {
	home, err := getTeam(ctx, tx, m.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := getTeam(ctx, tx, m.AwayTeamID)
	if err != nil {
		return nil, err
	}
	return &MatchView{Match: m, Home: *home, Away: *away}, nil
}

func validateTeams(homeID, awayID uuid.UUID) error {
	if homeID == awayID {
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.InvalidTeams, "home and away teams must be different")
	}
	return nil
}
