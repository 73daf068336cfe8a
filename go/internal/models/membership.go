package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership joins a player to a team
type Membership struct {
	ID       uuid.UUID      `json:"id"`
	PlayerID string         `json:"player_id"`
	TeamID   uuid.UUID      `json:"team_id"`
	Role     MembershipRole `json:"role"`
	Contract *Contract      `json:"contract,omitempty"`
	JoinedAt time.Time      `json:"joined_at"`
}

// MembershipRole represents the capacity a member holds on a team
type MembershipRole string

const (
	MembershipRolePlayer  MembershipRole = "player"
	MembershipRoleManager MembershipRole = "manager"
)

// Contract holds the free-form terms agreed in an offer
type Contract struct {
	Salary   string `json:"salary,omitempty"`
	Duration string `json:"duration,omitempty"`
	Position string `json:"position,omitempty"`
}

// PendingOffer is a contract proposal awaiting the target's decision
type PendingOffer struct {
	Token     uuid.UUID `json:"token"`
	PlayerID  string    `json:"player_id"`
	TeamID    uuid.UUID `json:"team_id"`
	SenderID  string    `json:"sender_id"`
	Contract  Contract  `json:"contract"`
	CreatedAt time.Time `json:"created_at"`
}

// OfferDecision is the target's answer to a PendingOffer
type OfferDecision string

const (
	OfferDecisionAccept  OfferDecision = "accept"
	OfferDecisionDecline OfferDecision = "decline"
)

// PendingDemand is a requested self-release awaiting confirmation
type PendingDemand struct {
	Token     uuid.UUID `json:"token"`
	PlayerID  string    `json:"player_id"`
	TeamID    uuid.UUID `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the demand can no longer be confirmed at now
func (d PendingDemand) Expired(now time.Time) bool {
	return !now.Before(d.ExpiresAt)
}
