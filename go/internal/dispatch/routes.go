package dispatch

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/admin"
	"github.com/mcdev12/pitchside/go/internal/fixtures"
	"github.com/mcdev12/pitchside/go/internal/referees"
	"github.com/mcdev12/pitchside/go/internal/roster"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/stats"
	"github.com/mcdev12/pitchside/go/internal/teams"
)

func (r *Router) teamRoutes(app *teams.App) {
	r.add("team.create", route(func(ctx context.Context, req createTeamRequest) (any, error) {
		return app.CreateTeam(ctx, req.Actor, req.CreateTeamRequest)
	}))
	r.add("team.delete", route(func(ctx context.Context, req teamRequest) (any, error) {
		return app.DeleteTeam(ctx, req.Actor, req.TeamID)
	}))
	r.add("team.get", route(func(ctx context.Context, req teamRequest) (any, error) {
		if req.TeamID == uuid.Nil && req.RoleID != "" {
			return app.GetTeamByRole(ctx, req.RoleID)
		}
		return app.GetTeam(ctx, req.TeamID)
	}))
	r.add("team.list", route(func(ctx context.Context, req listTeamsRequest) (any, error) {
		return app.ListTeams(ctx, req.PaginationParams)
	}))
	r.add("team.roster", route(func(ctx context.Context, req teamRequest) (any, error) {
		return app.Roster(ctx, req.TeamID)
	}))
	r.add("team.acting", route(func(ctx context.Context, req actorRequest) (any, error) {
		return app.ResolveActingTeam(ctx, req.Actor)
	}))
}

func (r *Router) rosterRoutes(app *roster.App) {
	r.add("offer.create", route(func(ctx context.Context, req roster.CreateOfferRequest) (any, error) {
		return app.CreateOffer(ctx, req)
	}))
	r.add("offer.resolve", route(func(ctx context.Context, req resolveOfferRequest) (any, error) {
		return app.ResolveOffer(ctx, req.Target, req.Token, req.Decision)
	}))
	r.add("roster.add", route(func(ctx context.Context, req directAddRequest) (any, error) {
		return app.DirectAdd(ctx, req.Actor, req.Target, req.TeamID, req.Contract)
	}))
	r.add("roster.remove", route(func(ctx context.Context, req playerTeamRequest) (any, error) {
		return app.DirectRemove(ctx, req.Actor, req.PlayerID, req.TeamID)
	}))
	r.add("roster.release", route(func(ctx context.Context, req playerTeamRequest) (any, error) {
		return app.Release(ctx, req.Actor, req.PlayerID, req.TeamID)
	}))
	r.add("manager.assign", route(func(ctx context.Context, req staffRequest) (any, error) {
		return app.AssignManager(ctx, req.Actor, req.Target, req.TeamID)
	}))
	r.add("manager.clear", route(func(ctx context.Context, req staffRequest) (any, error) {
		return app.ClearManager(ctx, req.Actor, req.TeamID)
	}))
	r.add("assistant.assign", route(func(ctx context.Context, req staffRequest) (any, error) {
		return app.AssignAssistantManager(ctx, req.Actor, req.Target, req.TeamID)
	}))
	r.add("assistant.clear", route(func(ctx context.Context, req staffRequest) (any, error) {
		return app.ClearAssistantManager(ctx, req.Actor, req.TeamID, req.UserID)
	}))
	r.add("demand.request", route(func(ctx context.Context, req actorRequest) (any, error) {
		return app.RequestDemand(ctx, req.Actor)
	}))
	r.add("demand.confirm", route(func(ctx context.Context, req tokenRequest) (any, error) {
		return app.ConfirmDemand(ctx, req.Actor, req.Token)
	}))
	r.add("demand.cancel", route(func(ctx context.Context, req tokenRequest) (any, error) {
		return nil, app.CancelDemand(ctx, req.Actor, req.Token)
	}))
}

func (r *Router) fixtureRoutes(app *fixtures.App) {
	r.add("match.create", route(func(ctx context.Context, req createMatchRequest) (any, error) {
		return app.CreateMatch(ctx, req.Actor, req.CreateMatchRequest)
	}))
	r.add("match.edit", route(func(ctx context.Context, req matchRequest) (any, error) {
		return app.EditMatch(ctx, req.Actor, req.MatchID, req.Field, req.Value)
	}))
	r.add("match.reschedule", route(func(ctx context.Context, req matchRequest) (any, error) {
		return app.RescheduleMatch(ctx, req.Actor, req.MatchID, req.Date, req.Time)
	}))
	r.add("match.cancel", route(func(ctx context.Context, req matchRequest) (any, error) {
		return app.CancelMatch(ctx, req.Actor, req.MatchID, req.Reason)
	}))
	r.add("match.done", route(func(ctx context.Context, req matchRequest) (any, error) {
		return app.MarkMatchDone(ctx, req.Actor, req.MatchID)
	}))
	r.add("match.shout", route(func(ctx context.Context, req matchRequest) (any, error) {
		return app.ShoutMatch(ctx, req.Actor, req.MatchID, req.Link)
	}))
	r.add("match.list", route(func(ctx context.Context, req actorRequest) (any, error) {
		return app.ListUpcoming(ctx, req.Actor)
	}))
	r.add("fixtures.post", route(func(ctx context.Context, req actorRequest) (any, error) {
		return app.PostFixtures(ctx, req.Actor)
	}))
	r.add("fixtures.archive", route(func(ctx context.Context, req actorRequest) (any, error) {
		return app.ArchiveFixtures(ctx, req.Actor)
	}))
	r.add("fixtures.remove", route(func(ctx context.Context, req actorRequest) (any, error) {
		return app.RemoveFixtures(ctx, req.Actor)
	}))
	r.add("fixtures.get", route(func(ctx context.Context, _ actorRequest) (any, error) {
		return app.Posting(ctx)
	}))
}

func (r *Router) refereeRoutes(app *referees.App) {
	r.add("referee.assign", route(func(ctx context.Context, req refereeRequest) (any, error) {
		return app.Assign(ctx, req.Actor, req.Target)
	}))
	r.add("referee.remove", route(func(ctx context.Context, req refereeRequest) (any, error) {
		return app.Remove(ctx, req.Actor, req.Target.UserID)
	}))
	r.add("referee.list", route(func(ctx context.Context, _ actorRequest) (any, error) {
		return app.List(ctx)
	}))
}

func (r *Router) statRoutes(app *stats.App) {
	r.add("stats.add", route(func(ctx context.Context, req statRequest) (any, error) {
		return app.Add(ctx, req.Actor, req.Stat, req.Targets...)
	}))
	r.add("stats.remove", route(func(ctx context.Context, req statRequest) (any, error) {
		return app.Remove(ctx, req.Actor, req.Stat, req.UserID)
	}))
	r.add("stats.profile", route(func(ctx context.Context, req profileRequest) (any, error) {
		return app.Profile(ctx, req.Target)
	}))
	r.add("stats.top_scorers", route(func(ctx context.Context, _ actorRequest) (any, error) {
		return app.TopScorers(ctx)
	}))
	r.add("stats.top_assists", route(func(ctx context.Context, _ actorRequest) (any, error) {
		return app.TopAssists(ctx)
	}))
}

type windowState struct {
	Open bool `json:"open"`
}

func (r *Router) settingRoutes(app *settings.App, window *settings.Window) {
	r.add("settings.get", route(func(ctx context.Context, _ actorRequest) (any, error) {
		return app.Get(ctx)
	}))
	r.add("settings.set", route(func(ctx context.Context, req settingRequest) (any, error) {
		return app.Set(ctx, req.Actor, req.Key, req.Value)
	}))
	r.add("window.open", route(func(ctx context.Context, req actorRequest) (any, error) {
		if err := window.Open(ctx, req.Actor); err != nil {
			return nil, err
		}
		return windowState{Open: true}, nil
	}))
	r.add("window.close", route(func(ctx context.Context, req actorRequest) (any, error) {
		if err := window.Close(ctx, req.Actor); err != nil {
			return nil, err
		}
		return windowState{Open: false}, nil
	}))
	r.add("window.status", route(func(ctx context.Context, _ actorRequest) (any, error) {
		open, err := window.IsOpen(ctx)
		if err != nil {
			return nil, err
		}
		return windowState{Open: open}, nil
	}))
}

func (r *Router) adminRoutes(reset *admin.Resetter) {
	r.add("admin.reset", route(func(ctx context.Context, req resetRequest) (any, error) {
		if err := reset.Reset(ctx, req.Actor, req.Confirmations); err != nil {
			return nil, err
		}
		return struct {
			Purged bool `json:"purged"`
		}{Purged: true}, nil
	}))
}
