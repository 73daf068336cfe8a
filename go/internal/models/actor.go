package models

import "slices"

// Actor is the caller of an operation as resolved by the command dispatcher
type Actor struct {
	UserID  string   `json:"user_id"`
	IsAdmin bool     `json:"is_admin"`
	IsBot   bool     `json:"is_bot"`
	RoleIDs []string `json:"role_ids"`
}

// HasRole reports whether the actor currently holds roleID
func (a Actor) HasRole(roleID string) bool {
	return roleID != "" && slices.Contains(a.RoleIDs, roleID)
}

// Target is the user an operation acts upon
type Target struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	IsBot       bool   `json:"is_bot"`
}
