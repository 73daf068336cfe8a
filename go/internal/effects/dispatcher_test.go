package effects_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/effects/effectstest"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
)

type blockingDispatcher struct{}

func (blockingDispatcher) Dispatch(ctx context.Context, _ effects.Effect) error {
	<-ctx.Done()
	return ctx.Err()
}

type panickingDispatcher struct{}

func (panickingDispatcher) Dispatch(context.Context, effects.Effect) error {
	panic("adapter bug")
}

func TestExecutorDegradesFailuresToWarnings(t *testing.T) {
	rec := effectstest.NewRecorder()
	rec.FailOn(effects.TypeGrantRole, errors.New("missing permissions"))

	x := effects.NewExecutor(effects.NewMetricDispatcher(rec), time.Second)
	warnings := x.Run(context.Background(),
		effects.GrantRole{UserID: "u1", RoleID: "R1"},
		nil,
		effects.TransactionLog{ChannelID: "C1", Action: effects.ActionSigned, PlayerID: "u1"},
	)

	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %+v", warnings)
	}
	if warnings[0].Effect != effects.TypeGrantRole || warnings[0].Kind != string(leagueerr.ExternalSideEffectFailed) {
		t.Errorf("unexpected warning: %+v", warnings[0])
	}
	if got := rec.OfType(effects.TypeTransactionLog); len(got) != 1 {
		t.Errorf("later effects must still run, got %d transaction logs", len(got))
	}
}

func TestExecutorBoundsDispatchTime(t *testing.T) {
	x := effects.NewExecutor(blockingDispatcher{}, 20*time.Millisecond)

	done := make(chan []effects.Warning, 1)
	go func() { done <- x.Run(context.Background(), effects.RevokeRole{UserID: "u1", RoleID: "R1"}) }()

	select {
	case warnings := <-done:
		if len(warnings) != 1 {
			t.Fatalf("expected timeout warning, got %+v", warnings)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("executor blocked past its timeout")
	}
}

func TestExecutorRecoversPanics(t *testing.T) {
	x := effects.NewExecutor(panickingDispatcher{}, time.Second)
	warnings := x.Run(context.Background(), effects.DeleteMessage{ChannelID: "C1"})
	if len(warnings) != 1 {
		t.Fatalf("expected panic to become a warning, got %+v", warnings)
	}
}

func TestEnvelopeCarriesTypedPayload(t *testing.T) {
	at := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	env, err := effects.NewEnvelope(effects.GrantRole{UserID: "u1", RoleID: "R1"}, at)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	if env.Type != effects.TypeGrantRole || !env.Timestamp.Equal(at) {
		t.Errorf("unexpected envelope: %+v", env)
	}
	var payload effects.GrantRole
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.RoleID != "R1" {
		t.Errorf("payload role = %q, want R1", payload.RoleID)
	}

	cfg := effects.DefaultJetStreamConfig()
	if got := cfg.Subject(effects.TypeGrantRole); got != "league.effects.role.grant" {
		t.Errorf("subject = %q", got)
	}
}
