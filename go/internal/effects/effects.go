// Package effects describes the side effects league operations request from
// chat-platform collaborators and dispatches them best-effort.
package effects

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
)

// Type identifies an effect on the wire
type Type string

const (
	TypeGrantRole        Type = "role.grant"
	TypeRevokeRole       Type = "role.revoke"
	TypeOfferPrompt      Type = "offer.prompt"
	TypeTransactionLog   Type = "transaction.log"
	TypeFixtureListing   Type = "fixtures.post"
	TypeFixtureCompleted Type = "fixtures.complete"
	TypeDeleteMessage    Type = "message.delete"
	TypeMatchAnnounce    Type = "match.announce"
	TypeStatChange       Type = "stat.change"
)

// Effect is a request to an external collaborator
type Effect interface {
	EffectType() Type
}

// GrantRole asks the identity collaborator to give UserID the RoleID group role
type GrantRole struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}

func (GrantRole) EffectType() Type { return TypeGrantRole }

// RevokeRole asks the identity collaborator to take RoleID from UserID
type RevokeRole struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}

func (RevokeRole) EffectType() Type { return TypeRevokeRole }

// OfferPrompt delivers an interactive accept/decline prompt. Token is the
// correlation id the prompt must echo back.
type OfferPrompt struct {
	Token    uuid.UUID       `json:"token"`
	UserID   string          `json:"user_id"`
	TeamID   uuid.UUID       `json:"team_id"`
	TeamName string          `json:"team_name"`
	SenderID string          `json:"sender_id"`
	Contract models.Contract `json:"contract"`
}

func (OfferPrompt) EffectType() Type { return TypeOfferPrompt }

// TransactionAction names a roster move in the transaction log
type TransactionAction string

const (
	ActionSigned   TransactionAction = "signed"
	ActionAdded    TransactionAction = "added"
	ActionReleased TransactionAction = "released"
	ActionRemoved  TransactionAction = "removed"
	ActionDemanded TransactionAction = "demanded"
)

// TransactionLog records a roster move in the transactions channel
type TransactionLog struct {
	ChannelID string            `json:"channel_id"`
	Action    TransactionAction `json:"action"`
	PlayerID  string            `json:"player_id"`
	TeamID    uuid.UUID         `json:"team_id"`
	TeamName  string            `json:"team_name"`
	ActorID   string            `json:"actor_id"`
	Contract  *models.Contract  `json:"contract,omitempty"`
	At        time.Time         `json:"at"`
}

func (TransactionLog) EffectType() Type { return TypeTransactionLog }

// FixtureListing delivers the grouped fixture listing to a channel
type FixtureListing struct {
	ChannelID string              `json:"channel_id"`
	Token     uuid.UUID           `json:"token"`
	Days      []models.FixtureDay `json:"days"`
}

func (FixtureListing) EffectType() Type { return TypeFixtureListing }

// FixtureCompleted edits a posted listing into its completed rendering
type FixtureCompleted struct {
	ChannelID string              `json:"channel_id"`
	Token     uuid.UUID           `json:"token"`
	Days      []models.FixtureDay `json:"days"`
}

func (FixtureCompleted) EffectType() Type { return TypeFixtureCompleted }

// DeleteMessage removes a previously delivered message
type DeleteMessage struct {
	ChannelID string    `json:"channel_id"`
	Token     uuid.UUID `json:"token"`
}

func (DeleteMessage) EffectType() Type { return TypeDeleteMessage }

// MatchAnnounce announces a single match to the match channel
type MatchAnnounce struct {
	ChannelID string             `json:"channel_id"`
	Match     models.FixtureLine `json:"match"`
	Link      string             `json:"link,omitempty"`
}

func (MatchAnnounce) EffectType() Type { return TypeMatchAnnounce }

// StatChange audits a counter adjustment in the log channel
type StatChange struct {
	ChannelID string      `json:"channel_id"`
	PlayerID  string      `json:"player_id"`
	Stat      models.Stat `json:"stat"`
	Delta     int         `json:"delta"`
	Total     int         `json:"total"`
	ActorID   string      `json:"actor_id"`
}

func (StatChange) EffectType() Type { return TypeStatChange }
