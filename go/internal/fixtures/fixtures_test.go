package fixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/effects/effectstest"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/mcdev12/pitchside/go/internal/store/memstore"
)

var admin = models.Actor{UserID: "admin", IsAdmin: true}

func setup(t *testing.T) (*App, *memstore.Store, *effectstest.Recorder) {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()
	rec := effectstest.NewRecorder()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC))

	err := st.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		for _, team := range []models.Team{
			{ID: uuid.New(), Name: "Team A", RoleID: "R1"},
			{ID: uuid.New(), Name: "Team B", RoleID: "R2"},
			{ID: uuid.New(), Name: "Team C", RoleID: "R3"},
		} {
			if err := tx.CreateTeam(ctx, team); err != nil {
				return err
			}
		}
		return tx.AddReferee(ctx, models.Referee{UserID: "ref"})
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := settings.NewApp(st).Set(ctx, admin, settings.KeyFixturesChannel, "FIX"); err != nil {
		t.Fatalf("set fixtures channel: %v", err)
	}
	return NewApp(st, effects.NewExecutor(rec, time.Second), clock), st, rec
}

func mustCreate(t *testing.T, app *App, home, away, date, clock string) models.Match {
	t.Helper()
	v, err := app.CreateMatch(context.Background(), admin, CreateMatchRequest{
		Home: home, Away: away, Stadium: "Stadium X", Date: date, Time: clock,
	})
	if err != nil {
		t.Fatalf("CreateMatch(%s, %s): %v", home, away, err)
	}
	return v.Match
}

func TestLeagueScenario(t *testing.T) {
	app, _, rec := setup(t)
	ctx := context.Background()

	m := mustCreate(t, app, "Team A", "Team B", "2025-06-01", "15:00")
	if m.Status != models.MatchStatusScheduled {
		t.Fatalf("status = %s, want scheduled", m.Status)
	}
	want := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	if !m.KickoffAt.Equal(want) || m.Stadium != "Stadium X" {
		t.Fatalf("match = %+v, want Stadium X at %s", m, want)
	}

	posted, err := app.PostFixtures(ctx, admin)
	if err != nil {
		t.Fatalf("PostFixtures: %v", err)
	}
	if len(posted.Days) != 1 || posted.Days[0].Date != "2025-06-01" || len(posted.Days[0].Matches) != 1 {
		t.Fatalf("days = %+v, want one match on 2025-06-01", posted.Days)
	}
	if len(rec.OfType(effects.TypeFixtureListing)) != 1 {
		t.Error("listing not delivered")
	}

	archived, err := app.ArchiveFixtures(ctx, admin)
	if err != nil {
		t.Fatalf("ArchiveFixtures: %v", err)
	}
	if archived.Purged != 1 {
		t.Errorf("purged = %d, want 1", archived.Purged)
	}
	upcoming, err := app.ListUpcoming(ctx, admin)
	if err != nil || len(upcoming) != 0 {
		t.Fatalf("upcoming after archive = %d, %v; want empty", len(upcoming), err)
	}

	_, err = app.RemoveFixtures(ctx, admin)
	if !errors.Is(err, leagueerr.NoFixturesPosted) {
		t.Fatalf("RemoveFixtures: got %v, want NoFixturesPosted", err)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	app, _, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateMatchRequest
		want error
	}{
		{"same team", CreateMatchRequest{"Team A", "team a", "S", "2025-06-01", "15:00"}, leagueerr.InvalidTeams},
		{"bad date", CreateMatchRequest{"Team A", "Team B", "S", "2025-02-30", "15:00"}, leagueerr.InvalidDate},
		{"short date", CreateMatchRequest{"Team A", "Team B", "S", "2025-6-1", "15:00"}, leagueerr.InvalidDate},
		{"bad time", CreateMatchRequest{"Team A", "Team B", "S", "2025-06-01", "25:00"}, leagueerr.InvalidTime},
		{"twelve hour", CreateMatchRequest{"Team A", "Team B", "S", "2025-06-01", "3:00"}, leagueerr.InvalidTime},
		{"unknown team", CreateMatchRequest{"Team A", "Team Z", "S", "2025-06-01", "15:00"}, leagueerr.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.CreateMatch(ctx, admin, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	_, err := app.CreateMatch(ctx, admin, CreateMatchRequest{"Team A", "Team A", "S", "2025-06-01", "15:00"})
	if !errors.Is(err, leagueerr.InvalidInput) {
		t.Errorf("home == away: got %v, want InvalidInput", err)
	}
	_, err = app.CreateMatch(ctx, models.Actor{UserID: "ref"}, CreateMatchRequest{"Team A", "Team B", "S", "2025-06-01", "15:00"})
	if !errors.Is(err, leagueerr.Unauthorized) {
		t.Errorf("non-admin: got %v, want Unauthorized", err)
	}
}

func TestEditAndReschedule(t *testing.T) {
	app, _, _ := setup(t)
	ctx := context.Background()
	m := mustCreate(t, app, "Team A", "Team B", "2025-06-01", "15:00")

	v, err := app.EditMatch(ctx, admin, m.ID, FieldTime, "18:30")
	if err != nil {
		t.Fatalf("edit time: %v", err)
	}
	if want := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC); !v.Match.KickoffAt.Equal(want) {
		t.Errorf("kickoff = %s, want %s", v.Match.KickoffAt, want)
	}
	if v, err = app.EditMatch(ctx, admin, m.ID, FieldDate, "2025-06-08"); err != nil {
		t.Fatalf("edit date: %v", err)
	}
	if want := time.Date(2025, 6, 8, 18, 30, 0, 0, time.UTC); !v.Match.KickoffAt.Equal(want) {
		t.Errorf("kickoff = %s, want %s", v.Match.KickoffAt, want)
	}
	if v, err = app.EditMatch(ctx, admin, m.ID, FieldAway, "Team C"); err != nil || v.Away.Name != "Team C" {
		t.Fatalf("edit away: %+v, %v", v, err)
	}
	if v.Match.Stadium != "Stadium X" {
		t.Errorf("stadium changed to %q", v.Match.Stadium)
	}
	if _, err := app.EditMatch(ctx, admin, m.ID, FieldHome, "Team C"); !errors.Is(err, leagueerr.InvalidTeams) {
		t.Errorf("edit to same teams: got %v, want InvalidTeams", err)
	}
	if _, err := app.EditMatch(ctx, admin, m.ID, EditField("referee"), "x"); !errors.Is(err, leagueerr.InvalidField) {
		t.Errorf("unknown field: got %v, want InvalidField", err)
	}

	if v, err = app.RescheduleMatch(ctx, admin, m.ID, "2025-07-01", "12:00"); err != nil {
		t.Fatalf("RescheduleMatch: %v", err)
	}
	if v.Match.ID != m.ID {
		t.Error("reschedule changed match identity")
	}

	if _, err := app.CancelMatch(ctx, admin, m.ID, " "); !errors.Is(err, leagueerr.ReasonRequired) {
		t.Errorf("cancel without reason: got %v, want ReasonRequired", err)
	}
	if _, err := app.CancelMatch(ctx, admin, m.ID, "pitch flooded"); err != nil {
		t.Fatalf("CancelMatch: %v", err)
	}
	if _, err := app.CancelMatch(ctx, admin, m.ID, "again"); !errors.Is(err, leagueerr.AlreadyCancelled) {
		t.Errorf("cancel twice: got %v, want AlreadyCancelled", err)
	}
	if _, err := app.RescheduleMatch(ctx, admin, m.ID, "2025-07-02", "12:00"); !errors.Is(err, leagueerr.MatchCancelled) {
		t.Errorf("reschedule cancelled: got %v, want MatchCancelled", err)
	}
}

func TestPostFixturesSupersedes(t *testing.T) {
	app, _, rec := setup(t)
	ctx := context.Background()

	late := mustCreate(t, app, "Team A", "Team B", "2025-06-02", "20:00")
	early := mustCreate(t, app, "Team B", "Team C", "2025-06-01", "18:00")
	mustCreate(t, app, "Team A", "Team C", "2025-06-02", "09:00")

	first, err := app.PostFixtures(ctx, admin)
	if err != nil {
		t.Fatalf("first post: %v", err)
	}
	if first.Posting.AnchorMatchID != early.ID {
		t.Errorf("anchor = %s, want earliest match", first.Posting.AnchorMatchID)
	}
	if got := first.Days; len(got) != 2 || got[0].Date != "2025-06-01" || got[1].Matches[1].MatchID != late.ID {
		t.Errorf("days = %+v", got)
	}

	second, err := app.PostFixtures(ctx, admin)
	if err != nil {
		t.Fatalf("second post: %v", err)
	}
	p, err := app.Posting(ctx)
	if err != nil || p == nil || p.Token != second.Posting.Token {
		t.Fatalf("posting = %+v, %v; want the second posting", p, err)
	}
	deleted := rec.OfType(effects.TypeDeleteMessage)
	if len(deleted) != 1 || deleted[0].(effects.DeleteMessage).Token != first.Posting.Token {
		t.Errorf("deleted = %+v, want the first listing", deleted)
	}

	if _, err := app.RemoveFixtures(ctx, admin); err != nil {
		t.Fatalf("RemoveFixtures: %v", err)
	}
	upcoming, err := app.ListUpcoming(ctx, models.Actor{UserID: "ref"})
	if err != nil || len(upcoming) != 3 {
		t.Fatalf("upcoming after remove = %d, %v; want 3", len(upcoming), err)
	}
	if _, err := app.ArchiveFixtures(ctx, admin); !errors.Is(err, leagueerr.NoFixturesPosted) {
		t.Errorf("archive after remove: got %v, want NoFixturesPosted", err)
	}
}

func TestPostFixturesPreconditions(t *testing.T) {
	app, st, _ := setup(t)
	ctx := context.Background()

	if _, err := app.PostFixtures(ctx, admin); !errors.Is(err, leagueerr.NoScheduled) {
		t.Errorf("no matches: got %v, want NoScheduled", err)
	}
	m := mustCreate(t, app, "Team A", "Team B", "2025-06-01", "15:00")
	if _, err := app.CancelMatch(ctx, admin, m.ID, "weather"); err != nil {
		t.Fatalf("CancelMatch: %v", err)
	}
	if _, err := app.PostFixtures(ctx, admin); !errors.Is(err, leagueerr.NoScheduled) {
		t.Errorf("only cancelled: got %v, want NoScheduled", err)
	}

	mustCreate(t, app, "Team A", "Team B", "2025-06-02", "15:00")
	if _, err := settings.NewApp(st).Set(ctx, admin, settings.KeyFixturesChannel, ""); err != nil {
		t.Fatalf("clear channel: %v", err)
	}
	if _, err := app.PostFixtures(ctx, admin); !errors.Is(err, leagueerr.NotConfigured) {
		t.Errorf("no channel: got %v, want NotConfigured", err)
	}
}

func TestArchivedPostingIsProtected(t *testing.T) {
	app, st, _ := setup(t)
	ctx := context.Background()

	err := st.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		return tx.PutFixturePosting(ctx, models.FixturePosting{Token: uuid.New(), ChannelID: "FIX", Archived: true})
	})
	if err != nil {
		t.Fatalf("seed posting: %v", err)
	}
	if _, err := app.RemoveFixtures(ctx, admin); !errors.Is(err, leagueerr.Protected) {
		t.Errorf("remove archived: got %v, want Protected", err)
	}
	if _, err := app.ArchiveFixtures(ctx, admin); !errors.Is(err, leagueerr.Protected) {
		t.Errorf("archive archived: got %v, want Protected", err)
	}
}

func TestMatchDoneAndShout(t *testing.T) {
	app, st, rec := setup(t)
	ctx := context.Background()
	m := mustCreate(t, app, "Team A", "Team B", "2025-06-01", "15:00")

	if _, err := app.ShoutMatch(ctx, models.Actor{UserID: "ref"}, m.ID, "https://stream"); !errors.Is(err, leagueerr.NotConfigured) {
		t.Fatalf("shout without channel: got %v, want NotConfigured", err)
	}
	if _, err := settings.NewApp(st).Set(ctx, admin, settings.KeyMatchChannel, "MATCH"); err != nil {
		t.Fatalf("set match channel: %v", err)
	}
	if _, err := app.ShoutMatch(ctx, models.Actor{UserID: "fan"}, m.ID, ""); !errors.Is(err, leagueerr.Unauthorized) {
		t.Errorf("fan shout: got %v, want Unauthorized", err)
	}
	if _, err := app.ShoutMatch(ctx, models.Actor{UserID: "ref"}, m.ID, "https://stream"); err != nil {
		t.Fatalf("ShoutMatch: %v", err)
	}
	shouts := rec.OfType(effects.TypeMatchAnnounce)
	if len(shouts) != 1 || shouts[0].(effects.MatchAnnounce).Match.HomeTeam != "Team A" {
		t.Errorf("announcements = %+v", shouts)
	}

	if _, err := app.MarkMatchDone(ctx, models.Actor{UserID: "ref"}, m.ID); err != nil {
		t.Fatalf("MarkMatchDone: %v", err)
	}
	if _, err := app.MarkMatchDone(ctx, admin, m.ID); !errors.Is(err, leagueerr.NotFound) {
		t.Errorf("done twice: got %v, want NotFound", err)
	}
}

func TestRefereeOnlyOperations(t *testing.T) {
	app, _, _ := setup(t)
	ctx := context.Background()
	m := mustCreate(t, app, "Team A", "Team B", "2025-06-01", "15:00")
	fan := models.Actor{UserID: "fan"}

	if _, err := app.MarkMatchDone(ctx, fan, m.ID); !errors.Is(err, leagueerr.Unauthorized) {
		t.Errorf("fan done: got %v, want Unauthorized", err)
	}
	if _, err := app.ListUpcoming(ctx, fan); !errors.Is(err, leagueerr.Unauthorized) {
		t.Errorf("fan list: got %v, want Unauthorized", err)
	}
	for _, actor := range []models.Actor{{UserID: "ref"}, admin} {
		upcoming, err := app.ListUpcoming(ctx, actor)
		if err != nil {
			t.Fatalf("ListUpcoming(%s): %v", actor.UserID, err)
		}
		if len(upcoming) != 1 || upcoming[0].Match.ID != m.ID {
			t.Errorf("ListUpcoming(%s) = %+v", actor.UserID, upcoming)
		}
	}
}

func TestGroupByDate(t *testing.T) {
	at := func(s string) time.Time {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t.Fatal(err)
		}
		return ts
	}
	days := GroupByDate([]models.FixtureLine{
		{HomeTeam: "late", KickoffAt: at("2025-06-02T23:30:00Z")},
		{HomeTeam: "offset", KickoffAt: at("2025-06-02T01:00:00+02:00")},
		{HomeTeam: "early", KickoffAt: at("2025-06-02T08:00:00Z")},
	})
	if len(days) != 2 {
		t.Fatalf("days = %+v, want 2", days)
	}
	if days[0].Date != "2025-06-01" || days[0].Matches[0].HomeTeam != "offset" {
		t.Errorf("first day = %+v, want offset kickoff on 2025-06-01 UTC", days[0])
	}
	if got := days[1].Matches; got[0].HomeTeam != "early" || got[1].HomeTeam != "late" {
		t.Errorf("second day order = %+v", got)
	}
}
