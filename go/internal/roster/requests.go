package roster

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/models"
)

// CreateOfferRequest proposes a contract to Target. A nil TeamID means the
// team is resolved from the sender's roles.
type CreateOfferRequest struct {
	Sender   models.Actor    `json:"sender"`
	Target   models.Target   `json:"target"`
	TeamID   uuid.UUID       `json:"team_id"`
	Contract models.Contract `json:"contract"`
}

// OfferResult is a persisted PendingOffer
type OfferResult struct {
	Offer    models.PendingOffer `json:"offer"`
	Team     models.Team         `json:"team"`
	Warnings []effects.Warning   `json:"warnings,omitempty"`
}

// ResolveOfferResult reports the consumed offer
type ResolveOfferResult struct {
	Decision   models.OfferDecision `json:"decision"`
	Team       models.Team          `json:"team"`
	Membership *models.Membership   `json:"membership,omitempty"`
	Warnings   []effects.Warning    `json:"warnings,omitempty"`
}

// MembershipResult reports a created membership
type MembershipResult struct {
	Membership models.Membership `json:"membership"`
	Team       models.Team       `json:"team"`
	Warnings   []effects.Warning `json:"warnings,omitempty"`
}

// Outcome reports a committed transition with no new record
type Outcome struct {
	Team     models.Team       `json:"team"`
	Warnings []effects.Warning `json:"warnings,omitempty"`
}

// DemandPrompt is the pending confirmation returned by RequestDemand
type DemandPrompt struct {
	Token      uuid.UUID   `json:"token"`
	Team       models.Team `json:"team"`
	DemandUses int         `json:"demand_uses"`
	WindowOpen bool        `json:"window_open"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

// Rules are the tunable roster limits
type Rules struct {
	DemandLimit       int           `yaml:"demand_limit"`
	AssistantCapacity int           `yaml:"assistant_capacity"`
	DemandTTL         time.Duration `yaml:"demand_confirm_ttl"`
}

// DefaultRules returns the standard league limits
func DefaultRules() Rules {
	return Rules{
		DemandLimit:       2,
		AssistantCapacity: 2,
		DemandTTL:         15 * time.Minute,
	}
}
