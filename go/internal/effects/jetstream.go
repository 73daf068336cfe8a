package effects

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// JetStreamConfig configures the effect stream
type JetStreamConfig struct {
	StreamName      string        `yaml:"stream_name"`
	SubjectPrefix   string        `yaml:"subject_prefix"`
	MaxAge          time.Duration `yaml:"max_age"`
	Replicas        int           `yaml:"replicas"`
	DuplicateWindow time.Duration `yaml:"duplicate_window"`
}

func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		StreamName:      "LEAGUE_EFFECTS",
		SubjectPrefix:   "league.effects",
		MaxAge:          72 * time.Hour,
		Replicas:        1,
		DuplicateWindow: 10 * time.Minute,
	}
}

// Envelope is the wire form of a dispatched effect
type Envelope struct {
	ID        uuid.UUID       `json:"id"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Subject returns the subject an effect type is published on
func (c JetStreamConfig) Subject(t Type) string {
	return fmt.Sprintf("%s.%s", c.SubjectPrefix, t)
}

// NATSDispatcher publishes effects to a JetStream stream consumed by the
// chat-platform adapter
type NATSDispatcher struct {
	js     jetstream.JetStream
	config JetStreamConfig
	clock  clockwork.Clock
}

// Connect dials NATS with reconnect logging, as shared by every NATS client here
func Connect(url string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

// NewNATSDispatcher binds to nc and makes sure the stream exists
func NewNATSDispatcher(ctx context.Context, nc *nats.Conn, cfg JetStreamConfig, clock clockwork.Clock) (*NATSDispatcher, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}
	d := &NATSDispatcher{js: js, config: cfg, clock: clock}
	if err := d.ensureStream(ctx); err != nil {
		return nil, fmt.Errorf("ensure stream: %w", err)
	}
	return d, nil
}

func (d *NATSDispatcher) ensureStream(ctx context.Context) error {
	sc := jetstream.StreamConfig{
		Name:        d.config.StreamName,
		Description: "League side-effect requests",
		Subjects:    []string{fmt.Sprintf("%s.>", d.config.SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      d.config.MaxAge,
		Storage:     jetstream.FileStorage,
		Replicas:    d.config.Replicas,
		Duplicates:  d.config.DuplicateWindow,
	}
	if _, err := d.js.CreateOrUpdateStream(ctx, sc); err != nil {
		return fmt.Errorf("create or update stream: %w", err)
	}
	log.Info().Str("stream", d.config.StreamName).Msg("JetStream stream ready")
	return nil
}

// NewEnvelope wraps e for the wire
func NewEnvelope(e Effect, at time.Time) (Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal effect: %w", err)
	}
	return Envelope{ID: uuid.New(), Type: e.EffectType(), Timestamp: at.UTC(), Payload: payload}, nil
}

func (d *NATSDispatcher) Dispatch(ctx context.Context, e Effect) error {
	env, err := NewEnvelope(e, d.clock.Now())
	if err != nil {
		return err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	subject := d.config.Subject(env.Type)
	ack, err := d.js.PublishMsg(ctx, &nats.Msg{
		Subject: subject,
		Data:    data,
		Header: nats.Header{
			"Effect-Type": []string{string(env.Type)},
			"Effect-ID":   []string{env.ID.String()},
		},
	},
		jetstream.WithMsgID(env.ID.String()),
		jetstream.WithExpectStream(d.config.StreamName),
	)
	if err != nil {
		return fmt.Errorf("publish to JetStream: %w", err)
	}

	log.Debug().
		Str("subject", subject).
		Str("effect_id", env.ID.String()).
		Uint64("sequence", ack.Sequence).
		Msg("effect published")
	return nil
}
