package models

import "time"

// Player is a league participant keyed by their chat-platform user ID.
// Players are created lazily on first interaction.
type Player struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Goals      int       `json:"goals"`
	Assists    int       `json:"assists"`
	Mentions   int       `json:"mentions"`
	MOTM       int       `json:"motm"`
	DemandUses int       `json:"demand_uses"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stat names a cumulative player counter
type Stat string

const (
	StatGoals    Stat = "goals"
	StatAssists  Stat = "assists"
	StatMentions Stat = "mentions"
	StatMOTM     Stat = "motm"
)

// Valid reports whether s is a known counter
func (s Stat) Valid() bool {
	switch s {
	case StatGoals, StatAssists, StatMentions, StatMOTM:
		return true
	}
	return false
}

// Value returns the counter s of p
func (p Player) Value(s Stat) int {
	switch s {
	case StatGoals:
		return p.Goals
	case StatAssists:
		return p.Assists
	case StatMentions:
		return p.Mentions
	case StatMOTM:
		return p.MOTM
	}
	return 0
}

// WithValue returns a copy of p with counter s set to v, floored at zero
func (p Player) WithValue(s Stat, v int) Player {
	if v < 0 {
		v = 0
	}
	switch s {
	case StatGoals:
		p.Goals = v
	case StatAssists:
		p.Assists = v
	case StatMentions:
		p.Mentions = v
	case StatMOTM:
		p.MOTM = v
	}
	return p
}
