package teams

import (
	"github.com/mcdev12/pitchside/go/internal/models"
)

// CreateTeamRequest represents the data needed to create a new team
type CreateTeamRequest struct {
	Name      string `json:"name" yaml:"name"`
	ShortCode string `json:"short_code" yaml:"short_code"`
	RoleID    string `json:"role_id" yaml:"role_id"`
}

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// TeamListResponse represents a paginated list of teams
type TeamListResponse struct {
	Teams   []models.Team `json:"teams"`
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
	HasMore bool          `json:"has_more"`
}

// RosterEntry is one person on a team roster
type RosterEntry struct {
	UserID   string           `json:"user_id"`
	Name     string           `json:"name"`
	Contract *models.Contract `json:"contract,omitempty"`
}

// Roster is a team with its staff and players
type Roster struct {
	Team       models.Team   `json:"team"`
	Manager    *RosterEntry  `json:"manager,omitempty"`
	Assistants []RosterEntry `json:"assistants,omitempty"`
	Players    []RosterEntry `json:"players"`
}
