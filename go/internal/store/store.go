// Package store defines the Entity Store: durable league records with no business rules.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint
	ErrDuplicate = errors.New("duplicate record")
)

// Store runs units of work against league state.
type Store interface {
	// Do runs fn as one serialized unit of work. Conflicting units never
	// interleave, and an error returned by fn discards every write it made.
	Do(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}

// Tx is the view of league state inside a unit of work.
type Tx interface {
	TeamStore
	PlayerStore
	MembershipStore
	StaffStore
	SettingStore
	OfferStore
	MatchStore

	// Purge deletes every record of every entity.
	Purge(ctx context.Context) error
}

type TeamStore interface {
	CreateTeam(ctx context.Context, team models.Team) error
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamByRole(ctx context.Context, roleID string) (*models.Team, error)
	GetTeamByName(ctx context.Context, name string) (*models.Team, error)
	// ListTeams returns teams ordered by name.
	ListTeams(ctx context.Context) ([]models.Team, error)
	SetTeamManager(ctx context.Context, id uuid.UUID, managerID *string) error
	// DeleteTeam removes the team with its memberships, assistant managers,
	// pending offers, pending demands and matches.
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

type PlayerStore interface {
	GetPlayer(ctx context.Context, userID string) (*models.Player, error)
	// SavePlayer inserts the player or overwrites name and counters.
	SavePlayer(ctx context.Context, player models.Player) error
	// ListTopPlayers returns up to limit players with stat > 0, highest first, ties by name.
	ListTopPlayers(ctx context.Context, stat models.Stat, limit int) ([]models.Player, error)
}

type MembershipStore interface {
	CreateMembership(ctx context.Context, m models.Membership) error
	GetMembership(ctx context.Context, playerID string, teamID uuid.UUID) (*models.Membership, error)
	ListMembershipsByPlayer(ctx context.Context, playerID string) ([]models.Membership, error)
	ListMembershipsByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Membership, error)
	DeleteMembership(ctx context.Context, playerID string, teamID uuid.UUID) error
}

// StaffStore holds assistant managers and referees.
type StaffStore interface {
	AddAssistantManager(ctx context.Context, am models.AssistantManager) error
	RemoveAssistantManager(ctx context.Context, userID string, teamID uuid.UUID) error
	ListAssistantManagersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.AssistantManager, error)
	ListAssistantManagersByUser(ctx context.Context, userID string) ([]models.AssistantManager, error)

	AddReferee(ctx context.Context, ref models.Referee) error
	GetReferee(ctx context.Context, userID string) (*models.Referee, error)
	RemoveReferee(ctx context.Context, userID string) error
	ListReferees(ctx context.Context) ([]models.Referee, error)
}

type SettingStore interface {
	ListSettings(ctx context.Context) (map[string]string, error)
	PutSetting(ctx context.Context, key, value string) error
}

// OfferStore holds the short-lived offer and demand confirmations.
type OfferStore interface {
	CreateOffer(ctx context.Context, offer models.PendingOffer) error
	GetOffer(ctx context.Context, token uuid.UUID) (*models.PendingOffer, error)
	DeleteOffer(ctx context.Context, token uuid.UUID) error

	CreateDemand(ctx context.Context, d models.PendingDemand) error
	GetDemand(ctx context.Context, token uuid.UUID) (*models.PendingDemand, error)
	DeleteDemand(ctx context.Context, token uuid.UUID) error
	DeleteDemandsByPlayer(ctx context.Context, playerID string) error
	DeleteExpiredDemands(ctx context.Context, now time.Time) (int, error)
}

type MatchStore interface {
	CreateMatch(ctx context.Context, m models.Match) error
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	UpdateMatch(ctx context.Context, m models.Match) error
	// ListMatches returns matches with the given status ordered by kickoff,
	// or every match when status is empty.
	ListMatches(ctx context.Context, status models.MatchStatus) ([]models.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	DeleteAllMatches(ctx context.Context) (int, error)

	GetFixturePosting(ctx context.Context) (*models.FixturePosting, error)
	// PutFixturePosting replaces any existing posting.
	PutFixturePosting(ctx context.Context, p models.FixturePosting) error
	ClearFixturePosting(ctx context.Context) error
}

// Run runs fn in a unit of work and returns its value. fn may write.
func Run[T any](ctx context.Context, s Store, fn func(ctx context.Context, tx Tx) (T, error)) (T, error) {
	var out T
	err := s.Do(ctx, func(ctx context.Context, tx Tx) error {
		v, err := fn(ctx, tx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// EnsurePlayer returns target's player record, creating it on first sight.
// A non-empty display name that differs from the stored one is refreshed.
func EnsurePlayer(ctx context.Context, tx PlayerStore, target models.Target, now time.Time) (*models.Player, error) {
	player, err := tx.GetPlayer(ctx, target.UserID)
	switch {
	case err == nil:
		if target.DisplayName == "" || target.DisplayName == player.Name {
			return player, nil
		}
		player.Name = target.DisplayName
	case errors.Is(err, ErrNotFound):
		name := target.DisplayName
		if name == "" {
			name = target.UserID
		}
		player = &models.Player{UserID: target.UserID, Name: name, CreatedAt: now}
	default:
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if err := tx.SavePlayer(ctx, *player); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}
	return player, nil
}
