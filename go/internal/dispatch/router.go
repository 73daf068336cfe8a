// Package dispatch routes league commands received over NATS to the
// domain managers and encodes their outcomes.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/mcdev12/pitchside/go/internal/admin"
	"github.com/mcdev12/pitchside/go/internal/fixtures"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/referees"
	"github.com/mcdev12/pitchside/go/internal/roster"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/stats"
	"github.com/mcdev12/pitchside/go/internal/teams"
	"github.com/rs/zerolog/log"
)

// Services are the managers commands are routed to
type Services struct {
	Teams    *teams.App
	Roster   *roster.App
	Fixtures *fixtures.App
	Referees *referees.App
	Stats    *stats.App
	Settings *settings.App
	Window   *settings.Window
	Reset    *admin.Resetter
}

// Response is the reply envelope for every command
type Response struct {
	OK     bool       `json:"ok"`
	Result any        `json:"result,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the wire form of a failed command
type ErrorBody struct {
	Kind    leagueerr.Kind   `json:"kind"`
	Reason  leagueerr.Reason `json:"reason,omitempty"`
	Message string           `json:"message"`
}

type handlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Router maps operation names to managers
type Router struct {
	routes map[string]handlerFunc
}

// route decodes the payload into Req before calling fn
func route[Req any](fn func(ctx context.Context, req Req) (any, error)) handlerFunc {
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req Req
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "malformed payload: %v", err)
			}
		}
		return fn(ctx, req)
	}
}

func NewRouter(s Services) *Router {
	r := &Router{routes: make(map[string]handlerFunc)}
	r.teamRoutes(s.Teams)
	r.rosterRoutes(s.Roster)
	r.fixtureRoutes(s.Fixtures)
	r.refereeRoutes(s.Referees)
	r.statRoutes(s.Stats)
	r.settingRoutes(s.Settings, s.Window)
	r.adminRoutes(s.Reset)
	return r
}

// Ops lists the registered operation names
func (r *Router) Ops() []string {
	ops := make([]string, 0, len(r.routes))
	for op := range r.routes {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Has reports whether op is registered
func (r *Router) Has(op string) bool {
	_, ok := r.routes[op]
	return ok
}

// Handle runs op against payload and encodes the outcome
func (r *Router) Handle(ctx context.Context, op string, payload []byte) Response {
	h, ok := r.routes[op]
	if !ok {
		return failure(leagueerr.New(leagueerr.NotFound, leagueerr.ReasonNone, "unknown operation %q", op))
	}
	result, err := h(ctx, payload)
	if err != nil {
		log.Debug().Err(err).Str("op", op).Msg("command denied")
		return failure(err)
	}
	return Response{OK: true, Result: result}
}

func failure(err error) Response {
	var le *leagueerr.Error
	if errors.As(err, &le) {
		return Response{Error: &ErrorBody{Kind: le.Kind, Reason: le.Reason, Message: le.Message}}
	}
	log.Error().Err(err).Msg("command failed")
	return Response{Error: &ErrorBody{Kind: leagueerr.Internal, Message: err.Error()}}
}

func (r *Router) add(op string, h handlerFunc) {
	if _, dup := r.routes[op]; dup {
		panic(fmt.Sprintf("dispatch: duplicate route %s", op))
	}
	r.routes[op] = h
}
