package stats

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/effects/effectstest"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/mcdev12/pitchside/go/internal/store/memstore"
)

var (
	admin   = models.Actor{UserID: "admin", IsAdmin: true}
	referee = models.Actor{UserID: "ref"}
)

func setup(t *testing.T) (*App, *effectstest.Recorder) {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()
	rec := effectstest.NewRecorder()
	err := st.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		return tx.AddReferee(ctx, models.Referee{UserID: referee.UserID})
	})
	if err != nil {
		t.Fatalf("seed referee: %v", err)
	}
	if _, err := settings.NewApp(st).Set(ctx, admin, settings.KeyLogChannel, "LOG"); err != nil {
		t.Fatalf("set log channel: %v", err)
	}
	return NewApp(st, effects.NewExecutor(rec, time.Second), clockwork.NewFakeClock()), rec
}

func TestAddAndRemove(t *testing.T) {
	app, rec := setup(t)
	ctx := context.Background()
	pat := models.Target{UserID: "p1", DisplayName: "Pat"}

	res, err := app.Add(ctx, referee, models.StatGoals, pat)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c := res.Changes[0]; c.Old != 0 || c.New != 1 || c.Player.Name != "Pat" {
		t.Errorf("change = %+v", c)
	}
	logs := rec.OfType(effects.TypeStatChange)
	if len(logs) != 1 || logs[0].(effects.StatChange).Total != 1 {
		t.Errorf("stat logs = %+v", logs)
	}

	if _, err := app.Remove(ctx, referee, models.StatGoals, "p1"); !errors.Is(err, leagueerr.NotAdmin) {
		t.Errorf("referee remove: got %v, want NotAdmin", err)
	}
	for range 2 {
		if _, err := app.Remove(ctx, admin, models.StatGoals, "p1"); err != nil {
			t.Fatalf("Remove: %v", err)
		}
	}
	p, err := app.Profile(ctx, pat)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Goals != 0 {
		t.Errorf("goals = %d, want floor at 0", p.Goals)
	}
	if _, err := app.Remove(ctx, admin, models.StatMOTM, "ghost"); !errors.Is(err, leagueerr.NotFound) {
		t.Errorf("remove unknown: got %v, want NotFound", err)
	}
}

func TestAddValidation(t *testing.T) {
	app, _ := setup(t)
	ctx := context.Background()
	some := func(n int) []models.Target {
		var out []models.Target
		for i := range n {
			out = append(out, models.Target{UserID: fmt.Sprintf("p%d", i)})
		}
		return out
	}

	tests := []struct {
		name    string
		actor   models.Actor
		stat    models.Stat
		targets []models.Target
		want    error
	}{
		{"fan", models.Actor{UserID: "fan"}, models.StatGoals, some(1), leagueerr.Unauthorized},
		{"unknown stat", admin, models.Stat("tackles"), some(1), leagueerr.InvalidStat},
		{"two scorers", admin, models.StatGoals, some(2), leagueerr.TooManyPlayers},
		{"six mentions", admin, models.StatMentions, some(6), leagueerr.TooManyPlayers},
		{"bot", admin, models.StatMOTM, []models.Target{{UserID: "b", IsBot: true}}, leagueerr.BotTarget},
		{"nobody", admin, models.StatAssists, nil, leagueerr.InvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := app.Add(ctx, tt.actor, tt.stat, tt.targets...); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	res, err := app.Add(ctx, admin, models.StatMentions, some(5)...)
	if err != nil || len(res.Changes) != 5 {
		t.Fatalf("five mentions: %+v, %v", res, err)
	}
}

func TestLeaderboards(t *testing.T) {
	app, _ := setup(t)
	ctx := context.Background()

	goals := map[string]int{"Ana": 3, "Bo": 1, "Cy": 3}
	for name, n := range goals {
		for range n {
			if _, err := app.Add(ctx, admin, models.StatGoals, models.Target{UserID: name, DisplayName: name}); err != nil {
				t.Fatalf("Add: %v", err)
			}
		}
	}
	if _, err := app.Add(ctx, admin, models.StatAssists, models.Target{UserID: "Bo", DisplayName: "Bo"}); err != nil {
		t.Fatalf("Add assist: %v", err)
	}
	if _, err := app.Profile(ctx, models.Target{UserID: "Dee", DisplayName: "Dee"}); err != nil {
		t.Fatalf("Profile: %v", err)
	}

	top, err := app.TopScorers(ctx)
	if err != nil {
		t.Fatalf("TopScorers: %v", err)
	}
	var names []string
	for _, p := range top {
		names = append(names, p.Name)
	}
	if fmt.Sprint(names) != "[Ana Cy Bo]" {
		t.Errorf("top scorers = %v, want [Ana Cy Bo]", names)
	}

	assists, err := app.TopAssists(ctx)
	if err != nil || len(assists) != 1 || assists[0].Name != "Bo" {
		t.Errorf("top assists = %+v, %v", assists, err)
	}
}
