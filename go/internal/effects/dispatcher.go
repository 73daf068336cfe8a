package effects

import (
	"context"
	"fmt"
	"time"

	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/rs/zerolog/log"
)

// Dispatcher delivers one effect to its collaborator
type Dispatcher interface {
	Dispatch(ctx context.Context, e Effect) error
}

// Warning is a side effect that failed after its state change committed
type Warning struct {
	Effect  Type   `json:"effect"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Effect, w.Message)
}

// DefaultTimeout bounds a single dispatch
const DefaultTimeout = 5 * time.Second

// Executor dispatches effects best-effort, degrading failures to warnings
type Executor struct {
	dispatcher Dispatcher
	timeout    time.Duration
}

// NewExecutor wraps d; a non-positive timeout uses DefaultTimeout
func NewExecutor(d Dispatcher, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{dispatcher: d, timeout: timeout}
}

// Run dispatches every effect in order. It never returns an error: callers
// have already committed the state change these effects announce.
func (x *Executor) Run(ctx context.Context, list ...Effect) []Warning {
	var warnings []Warning
	for _, e := range list {
		if e == nil {
			continue
		}
		if err := x.dispatch(ctx, e); err != nil {
			log.Warn().Err(err).Str("effect", string(e.EffectType())).Msg("side effect failed")
			warnings = append(warnings, Warning{
				Effect:  e.EffectType(),
				Kind:    string(leagueerr.ExternalSideEffectFailed),
				Message: err.Error(),
			})
		}
	}
	return warnings
}

func (x *Executor) dispatch(ctx context.Context, e Effect) (err error) {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("dispatcher panic: %v", p)
		}
	}()
	return x.dispatcher.Dispatch(ctx, e)
}

// LogDispatcher only logs effects; used when no message bus is configured
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, e Effect) error {
	log.Info().
		Str("effect", string(e.EffectType())).
		Interface("payload", e).
		Msg("side effect (log only)")
	return nil
}
