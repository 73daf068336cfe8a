package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a league club bound to one chat-platform group role
type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortCode string    `json:"short_code"`
	RoleID    string    `json:"role_id"`
	ManagerID *string   `json:"manager_id,omitempty"`
	// LegacyAssistantManagerID predates the assistant_managers relation and is only read.
	LegacyAssistantManagerID *string   `json:"legacy_assistant_manager_id,omitempty"`
	CreatedAt                time.Time `json:"created_at"`
}

// HasManager reports whether a manager is assigned
func (t Team) HasManager() bool {
	return t.ManagerID != nil && *t.ManagerID != ""
}

// IsManagedBy reports whether userID is the team's manager
func (t Team) IsManagedBy(userID string) bool {
	return t.HasManager() && *t.ManagerID == userID
}

// AssistantManager joins a user to a team as one of its assistant managers
type AssistantManager struct {
	UserID     string    `json:"user_id"`
	TeamID     uuid.UUID `json:"team_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// Referee is a user allowed to record match statistics
type Referee struct {
	UserID     string    `json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
