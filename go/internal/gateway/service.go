package gateway

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Service is the league feed: an effect consumer broadcasting to WebSocket
// clients
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	eventConsumer     *EventConsumer
}

// Config holds configuration for the feed service
type Config struct {
	ConnectionConfig ConnectionConfig
	JetStreamConfig  JetStreamConsumerConfig
}

func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JetStreamConfig:  DefaultJetStreamConsumerConfig(),
	}
}

// NewService binds the feed to the effect stream on nc. A nil nc gives a
// feed fed only through Broadcast.
func NewService(ctx context.Context, nc *nats.Conn, config Config) (*Service, error) {
	cm := NewConnectionManager(config.ConnectionConfig)
	s := &Service{
		connectionManager: cm,
		wsHandler:         NewWebSocketHandler(cm),
	}
	if nc != nil {
		ec, err := NewEventConsumer(ctx, nc, cm, config.JetStreamConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create event consumer: %w", err)
		}
		s.eventConsumer = ec
	}
	return s, nil
}

// Start runs the connection manager and consumer until ctx is done
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting league feed service")
	go s.connectionManager.Start(ctx)

	if s.eventConsumer == nil {
		<-ctx.Done()
		return nil
	}
	return s.eventConsumer.Start(ctx)
}

func (s *Service) WebSocket() *WebSocketHandler { return s.wsHandler }

// Broadcast pushes event to feed clients directly
func (s *Service) Broadcast(event *LeagueEvent) {
	s.connectionManager.Broadcast(event)
}

func (s *Service) Stats() ConnectionStats {
	return s.connectionManager.Stats()
}
