package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// ServerConfig configures the NATS command intake
type ServerConfig struct {
	// Subject is a wildcard such as "league.commands.>"; the remainder after
	// the prefix is the operation name.
	Subject    string
	QueueGroup string
	Timeout    time.Duration
}

// Server answers NATS requests with Router responses
type Server struct {
	nc     *nats.Conn
	router *Router
	config ServerConfig
	prefix string
}

func NewServer(nc *nats.Conn, router *Router, cfg ServerConfig) *Server {
	return &Server{
		nc:     nc,
		router: router,
		config: cfg,
		prefix: strings.TrimSuffix(strings.TrimSuffix(cfg.Subject, ">"), "*"),
	}
}

// Run subscribes until ctx is done, then drains the subscription
func (s *Server) Run(ctx context.Context) error {
	sub, err := s.nc.QueueSubscribe(s.config.Subject, s.config.QueueGroup, func(msg *nats.Msg) {
		s.handleMsg(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.config.Subject, err)
	}
	log.Info().
		Str("subject", s.config.Subject).
		Str("queue", s.config.QueueGroup).
		Int("operations", len(s.router.Ops())).
		Msg("command server listening")

	<-ctx.Done()
	log.Info().Msg("command server draining")
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("drain subscription: %w", err)
	}
	return nil
}

func (s *Server) handleMsg(ctx context.Context, msg *nats.Msg) {
	op := s.Op(msg.Subject)
	data := s.Serve(ctx, op, msg.Data)
	if msg.Reply == "" {
		log.Warn().Str("op", op).Msg("command without reply subject")
		return
	}
	if err := msg.Respond(data); err != nil {
		log.Error().Err(err).Str("op", op).Msg("failed to respond to command")
	}
}

// Op extracts the operation name from a command subject
func (s *Server) Op(subject string) string {
	return strings.TrimPrefix(subject, s.prefix)
}

// Serve handles one request body and returns the encoded Response
func (s *Server) Serve(ctx context.Context, op string, payload []byte) []byte {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	label := op
	if !s.router.Has(op) {
		label = "unknown"
	}
	start := time.Now()
	resp := s.router.Handle(ctx, op, payload)
	commandDurationSeconds.WithLabelValues(label).Observe(time.Since(start).Seconds())
	commandsTotal.WithLabelValues(label, outcome(resp)).Inc()

	data, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("failed to encode response")
		data, _ = json.Marshal(failure(err))
	}
	return data
}
