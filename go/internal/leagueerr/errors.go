// Package leagueerr provides the typed failures returned by league operations.
package leagueerr

import (
	"errors"
	"fmt"
)

// Kind is the broad category of a failure
type Kind string

const (
	Unauthorized             Kind = "unauthorized"
	NotFound                 Kind = "not_found"
	Conflict                 Kind = "conflict"
	InvalidInput             Kind = "invalid_input"
	Expired                  Kind = "expired"
	ExternalSideEffectFailed Kind = "external_side_effect_failed"
	Internal                 Kind = "internal"
)

func (k Kind) Error() string { return string(k) }

// Reason is the specific, machine-readable cause of a denial
type Reason string

const (
	ReasonNone Reason = ""

	// Authority
	NotAdmin         Reason = "not_admin"
	NotTeamAuthority Reason = "not_team_authority"
	NotConfigured    Reason = "not_configured"
	NotOfferTarget   Reason = "not_offer_target"
	NotDemandOwner   Reason = "not_demand_owner"
	NotAuthorizedFor Reason = "not_authorized_user"

	// Targets and relationships
	InvalidTarget      Reason = "invalid_target"
	SelfTarget         Reason = "self_target"
	BotTarget          Reason = "bot_target"
	AlreadySigned      Reason = "already_signed"
	IsManager          Reason = "is_manager"
	IsAssistant        Reason = "is_assistant_manager"
	IsPlayer           Reason = "is_player"
	AlreadyReferee     Reason = "already_referee"
	NotReferee         Reason = "not_referee"
	IsReferee          Reason = "is_referee"
	TeamHasManager     Reason = "team_has_manager"
	TeamHasNoManager   Reason = "team_has_no_manager"
	ManagesOtherTeam   Reason = "manages_other_team"
	AssistsOtherTeam   Reason = "assists_other_team"
	AlreadyAssistant   Reason = "already_assistant_manager"
	NotAssistant       Reason = "not_assistant_manager"
	CapacityReached    Reason = "capacity_reached"
	PlaysForOtherTeam  Reason = "plays_for_other_team"
	NoMembership       Reason = "no_membership"
	NoTeam             Reason = "no_team"
	AmbiguousTeam      Reason = "ambiguous_team"
	DemandLimitReached Reason = "demand_limit"
	DuplicateTeam      Reason = "duplicate_team"

	// Tokens
	OfferExpired  Reason = "offer_expired"
	DemandExpired Reason = "demand_expired"

	// Matches and fixtures
	InvalidTeams     Reason = "invalid_teams"
	InvalidDate      Reason = "invalid_date"
	InvalidTime      Reason = "invalid_time"
	InvalidField     Reason = "invalid_field"
	MatchCancelled   Reason = "match_cancelled"
	AlreadyCancelled Reason = "already_cancelled"
	ReasonRequired   Reason = "reason_required"
	NoScheduled      Reason = "no_scheduled_matches"
	NoFixturesPosted Reason = "no_fixtures_posted"
	Protected        Reason = "protected"

	// Input
	InvalidSetting      Reason = "invalid_setting"
	InvalidStat         Reason = "invalid_stat"
	TooManyPlayers      Reason = "too_many_players"
	MissingConfirmation Reason = "missing_confirmation"
	AmbiguousAssistant  Reason = "ambiguous_assistant_manager"
)

func (r Reason) Error() string { return string(r) }

// parent groups specific target denials under InvalidTarget
func (r Reason) parent() Reason {
	switch r {
	case SelfTarget, BotTarget, IsManager, IsAssistant:
		return InvalidTarget
	}
	return ReasonNone
}

// Error is a league operation failure
type Error struct {
	Kind    Kind
	Reason  Reason
	Message string
}

// New returns an *Error with a formatted message
func New(kind Kind, reason Reason, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Reason == ReasonNone {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Reason, e.Message)
}

// Is matches a Kind or Reason sentinel so errors.Is(err, leagueerr.Conflict) and
// errors.Is(err, leagueerr.AlreadySigned) both work through wrapping.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Kind:
		return e.Kind == t
	case Reason:
		return t != ReasonNone && (e.Reason == t || e.Reason.parent() == t)
	}
	return false
}

// KindOf returns the Kind of err, or Internal for untyped errors
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return Internal
}

// ReasonOf returns the Reason of err, or ReasonNone
func ReasonOf(err error) Reason {
	var le *Error
	if errors.As(err, &le) {
		return le.Reason
	}
	return ReasonNone
}

// NotFoundAs returns a NotFound failure when err matches missing, and wraps
// err with the message otherwise. nil stays nil.
func NotFoundAs(err, missing error, reason Reason, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, missing) {
		return &Error{Kind: NotFound, Reason: reason, Message: msg}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
