// Package effectstest provides a recording Dispatcher for tests.
package effectstest

import (
	"context"
	"sync"

	"github.com/mcdev12/pitchside/go/internal/effects"
)

// Recorder captures dispatched effects and can fail chosen effect types
type Recorder struct {
	mu      sync.Mutex
	effects []effects.Effect
	fail    map[effects.Type]error
}

func NewRecorder() *Recorder {
	return &Recorder{fail: map[effects.Type]error{}}
}

// FailOn makes every dispatch of t return err
func (r *Recorder) FailOn(t effects.Type, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[t] = err
}

func (r *Recorder) Dispatch(_ context.Context, e effects.Effect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.fail[e.EffectType()]; ok {
		return err
	}
	r.effects = append(r.effects, e)
	return nil
}

// Effects returns the successfully dispatched effects in order
func (r *Recorder) Effects() []effects.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]effects.Effect(nil), r.effects...)
}

// OfType returns the dispatched effects of type t
func (r *Recorder) OfType(t effects.Type) []effects.Effect {
	var out []effects.Effect
	for _, e := range r.Effects() {
		if e.EffectType() == t {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets recorded effects
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = nil
}
