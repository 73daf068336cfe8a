package models

import (
	"time"

	"github.com/google/uuid"
)

// Match is a scheduled fixture between two teams
type Match struct {
	ID           uuid.UUID   `json:"id"`
	HomeTeamID   uuid.UUID   `json:"home_team_id"`
	AwayTeamID   uuid.UUID   `json:"away_team_id"`
	Stadium      string      `json:"stadium"`
	KickoffAt    time.Time   `json:"kickoff_at"`
	Status       MatchStatus `json:"status"`
	CancelReason *string     `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// FixturePosting is the single outstanding announcement of the scheduled match set
type FixturePosting struct {
	Token         uuid.UUID `json:"token"`
	ChannelID     string    `json:"channel_id"`
	AnchorMatchID uuid.UUID `json:"anchor_match_id"`
	PostedAt      time.Time `json:"posted_at"`
	Archived      bool      `json:"archived"`
}

// FixtureDay groups posted matches by their UTC calendar date
type FixtureDay struct {
	Date    string        `json:"date"`
	Matches []FixtureLine `json:"matches"`
}

// FixtureLine is one match as presented in a fixture listing
type FixtureLine struct {
	MatchID   uuid.UUID `json:"match_id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Stadium   string    `json:"stadium"`
	KickoffAt time.Time `json:"kickoff_at"`
}
