package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/pitchside/go/internal/effects"
)

// LeagueEvent is the message pushed to feed clients
type LeagueEvent struct {
	ID        string          `json:"id"`
	Type      effects.Type    `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// DecodeEnvelope converts a published effect envelope into a feed event
func DecodeEnvelope(data []byte) (*LeagueEvent, error) {
	var env effects.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal effect envelope: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("effect envelope %s has no type", env.ID)
	}
	return &LeagueEvent{
		ID:        env.ID.String(),
		Type:      env.Type,
		Timestamp: env.Timestamp,
		Data:      env.Payload,
	}, nil
}
