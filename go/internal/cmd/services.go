package main

import (
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/admin"
	"github.com/mcdev12/pitchside/go/internal/dispatch"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/fixtures"
	"github.com/mcdev12/pitchside/go/internal/referees"
	"github.com/mcdev12/pitchside/go/internal/roster"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/stats"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/mcdev12/pitchside/go/internal/teams"
)

func setupServices(st store.Store, dispatcher effects.Dispatcher, clock clockwork.Clock) dispatch.Services {
	// Store → managers; every manager shares one effect executor
	fx := effects.NewExecutor(dispatcher, cfg.League.EffectTimeout)

	return dispatch.Services{
		Teams:    teams.NewApp(st, clock),
		Roster:   roster.NewApp(st, fx, clock, cfg.League.Roster),
		Fixtures: fixtures.NewApp(st, fx, clock),
		Referees: referees.NewApp(st, fx, clock),
		Stats:    stats.NewApp(st, fx, clock),
		Settings: settings.NewApp(st),
		Window:   settings.NewWindow(st),
		Reset:    admin.NewResetter(st, cfg.Process.ResetAuthorizedUser),
	}
}
