package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/effects/effectstest"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/roster"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/mcdev12/pitchside/go/internal/store/memstore"
	"github.com/rs/zerolog/log"
)

type countingSweeper struct {
	calls chan struct{}
	err   error
}

func (c *countingSweeper) SweepExpiredDemands(context.Context) (int, error) {
	c.calls <- struct{}{}
	return 1, c.err
}

func TestAddJobValidation(t *testing.T) {
	svc, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer svc.Stop()

	if _, err := svc.AddJob("", "* * * * *", func() {}); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("err = %v, want ErrEmptyJobName", err)
	}
	if _, err := svc.AddJob("job", " ", func() {}); !errors.Is(err, ErrEmptyCronExpr) {
		t.Fatalf("err = %v, want ErrEmptyCronExpr", err)
	}
	if _, err := svc.AddJob("job", "not a cron", func() {}); err == nil {
		t.Fatal("expected invalid cron to fail")
	}
	if _, err := RegisterDemandSweeper(svc, nil, "* * * * *"); err == nil {
		t.Fatal("expected nil sweeper to fail")
	}
}

func TestDemandSweeperRunsOnSchedule(t *testing.T) {
	svc, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer svc.Stop()

	sweeper := &countingSweeper{calls: make(chan struct{}, 1)}
	job, err := RegisterDemandSweeper(svc, sweeper, "*/5 * * * *")
	if err != nil {
		t.Fatalf("RegisterDemandSweeper: %v", err)
	}
	if job.Name() != DemandSweeperJob {
		t.Fatalf("job name = %q", job.Name())
	}
	svc.Start()
	if err := job.RunNow(); err != nil {
		t.Fatalf("RunNow: %v", err)
	}
	select {
	case <-sweeper.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper was not invoked")
	}
}

func TestSweepDemandsRemovesExpired(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	st := memstore.New()
	app := roster.NewApp(st, effects.NewExecutor(effectstest.NewRecorder(), time.Second), clock, roster.DefaultRules())

	stale := models.PendingDemand{
		Token: uuid.New(), PlayerID: "p1", TeamID: uuid.New(),
		CreatedAt: clock.Now().Add(-time.Hour), ExpiresAt: clock.Now().Add(-time.Minute),
	}
	fresh := models.PendingDemand{
		Token: uuid.New(), PlayerID: "p2", TeamID: uuid.New(),
		CreatedAt: clock.Now(), ExpiresAt: clock.Now().Add(time.Minute),
	}
	err := st.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		if err := tx.CreateDemand(ctx, stale); err != nil {
			return err
		}
		return tx.CreateDemand(ctx, fresh)
	})
	if err != nil {
		t.Fatalf("seed demands: %v", err)
	}

	logger := log.Logger
	if n := sweepDemands(ctx, app, &logger); n != 1 {
		t.Fatalf("swept = %d, want 1", n)
	}
	err = st.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.GetDemand(ctx, stale.Token); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("stale demand still present: %v", err)
		}
		if _, err := tx.GetDemand(ctx, fresh.Token); err != nil {
			t.Errorf("fresh demand removed: %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSweepDemandsLogsFailure(t *testing.T) {
	sweeper := &countingSweeper{calls: make(chan struct{}, 1), err: errors.New("db down")}
	logger := log.Logger
	if n := sweepDemands(context.Background(), sweeper, &logger); n != 0 {
		t.Fatalf("swept = %d on failure", n)
	}
}
