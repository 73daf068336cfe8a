package dispatch

import (
	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/admin"
	"github.com/mcdev12/pitchside/go/internal/fixtures"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/teams"
)

// Every command payload carries the resolved caller.
type actorRequest struct {
	Actor models.Actor `json:"actor"`
}

type teamRequest struct {
	Actor  models.Actor `json:"actor"`
	TeamID uuid.UUID    `json:"team_id"`
	RoleID string       `json:"role_id,omitempty"`
}

type createTeamRequest struct {
	Actor models.Actor `json:"actor"`
	teams.CreateTeamRequest
}

type listTeamsRequest struct {
	teams.PaginationParams
}

type resolveOfferRequest struct {
	Target   models.Target        `json:"target"`
	Token    uuid.UUID            `json:"token"`
	Decision models.OfferDecision `json:"decision"`
}

type directAddRequest struct {
	Actor    models.Actor     `json:"actor"`
	Target   models.Target    `json:"target"`
	TeamID   uuid.UUID        `json:"team_id"`
	Contract *models.Contract `json:"contract,omitempty"`
}

type playerTeamRequest struct {
	Actor    models.Actor `json:"actor"`
	PlayerID string       `json:"player_id"`
	TeamID   uuid.UUID    `json:"team_id"`
}

type staffRequest struct {
	Actor  models.Actor  `json:"actor"`
	Target models.Target `json:"target"`
	TeamID uuid.UUID     `json:"team_id"`
	UserID string        `json:"user_id,omitempty"`
}

type tokenRequest struct {
	Actor models.Actor `json:"actor"`
	Token uuid.UUID    `json:"token"`
}

type createMatchRequest struct {
	Actor models.Actor `json:"actor"`
	fixtures.CreateMatchRequest
}

type matchRequest struct {
	Actor   models.Actor       `json:"actor"`
	MatchID uuid.UUID          `json:"match_id"`
	Field   fixtures.EditField `json:"field,omitempty"`
	Value   string             `json:"value,omitempty"`
	Date    string             `json:"date,omitempty"`
	Time    string             `json:"time,omitempty"`
	Reason  string             `json:"reason,omitempty"`
	Link    string             `json:"link,omitempty"`
}

type refereeRequest struct {
	Actor  models.Actor  `json:"actor"`
	Target models.Target `json:"target"`
}

type statRequest struct {
	Actor   models.Actor    `json:"actor"`
	Stat    models.Stat     `json:"stat"`
	Targets []models.Target `json:"targets,omitempty"`
	UserID  string          `json:"user_id,omitempty"`
}

type profileRequest struct {
	Target models.Target `json:"target"`
}

type settingRequest struct {
	Actor models.Actor `json:"actor"`
	Key   settings.Key `json:"key"`
	Value string       `json:"value"`
}

type resetRequest struct {
	Actor         models.Actor              `json:"actor"`
	Confirmations [admin.Confirmations]bool `json:"confirmations"`
}
