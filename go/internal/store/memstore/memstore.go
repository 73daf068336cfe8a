// Package memstore is an in-memory Entity Store. Each unit of work runs under a
// single lock against a copy of the state that replaces the original on success.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
)

type memberKey struct {
	userID string
	teamID uuid.UUID
}

type state struct {
	teams       map[uuid.UUID]models.Team
	players     map[string]models.Player
	memberships map[memberKey]models.Membership
	assistants  map[memberKey]models.AssistantManager
	referees    map[string]models.Referee
	settings    map[string]string
	offers      map[uuid.UUID]models.PendingOffer
	demands     map[uuid.UUID]models.PendingDemand
	matches     map[uuid.UUID]models.Match
	posting     *models.FixturePosting
}

func newState() state {
	return state{
		teams:       map[uuid.UUID]models.Team{},
		players:     map[string]models.Player{},
		memberships: map[memberKey]models.Membership{},
		assistants:  map[memberKey]models.AssistantManager{},
		referees:    map[string]models.Referee{},
		settings:    map[string]string{},
		offers:      map[uuid.UUID]models.PendingOffer{},
		demands:     map[uuid.UUID]models.PendingDemand{},
		matches:     map[uuid.UUID]models.Match{},
	}
}

func (s state) clone() state {
	c := state{
		teams:       maps.Clone(s.teams),
		players:     maps.Clone(s.players),
		memberships: maps.Clone(s.memberships),
		assistants:  maps.Clone(s.assistants),
		referees:    maps.Clone(s.referees),
		settings:    maps.Clone(s.settings),
		offers:      maps.Clone(s.offers),
		demands:     maps.Clone(s.demands),
		matches:     maps.Clone(s.matches),
	}
	if s.posting != nil {
		p := *s.posting
		c.posting = &p
	}
	return c
}

// Store is a store.Store held in process memory
type Store struct {
	mu    sync.Mutex
	state state
}

// New returns an empty Store
func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(ctx, &tx{st: &work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) Close() error { return nil }

type tx struct {
	st *state
}

var _ store.Tx = (*tx)(nil)

// Teams

func (t *tx) CreateTeam(_ context.Context, team models.Team) error {
	for _, existing := range t.st.teams {
		if strings.EqualFold(existing.Name, team.Name) || existing.RoleID == team.RoleID {
			return fmt.Errorf("team %q: %w", team.Name, store.ErrDuplicate)
		}
	}
	t.st.teams[team.ID] = team
	return nil
}

func (t *tx) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	team, ok := t.st.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", id, store.ErrNotFound)
	}
	return &team, nil
}

func (t *tx) GetTeamByRole(_ context.Context, roleID string) (*models.Team, error) {
	for _, team := range t.st.teams {
		if team.RoleID == roleID {
			return &team, nil
		}
	}
	return nil, fmt.Errorf("team with role %s: %w", roleID, store.ErrNotFound)
}

func (t *tx) GetTeamByName(_ context.Context, name string) (*models.Team, error) {
	for _, team := range t.st.teams {
		if strings.EqualFold(team.Name, name) {
			return &team, nil
		}
	}
	return nil, fmt.Errorf("team %q: %w", name, store.ErrNotFound)
}

func (t *tx) ListTeams(_ context.Context) ([]models.Team, error) {
	teams := slices.Collect(maps.Values(t.st.teams))
	slices.SortFunc(teams, func(a, b models.Team) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return teams, nil
}

func (t *tx) SetTeamManager(_ context.Context, id uuid.UUID, managerID *string) error {
	team, ok := t.st.teams[id]
	if !ok {
		return fmt.Errorf("team %s: %w", id, store.ErrNotFound)
	}
	team.ManagerID = managerID
	t.st.teams[id] = team
	return nil
}

func (t *tx) DeleteTeam(_ context.Context, id uuid.UUID) error {
	if _, ok := t.st.teams[id]; !ok {
		return fmt.Errorf("team %s: %w", id, store.ErrNotFound)
	}
	delete(t.st.teams, id)
	maps.DeleteFunc(t.st.memberships, func(k memberKey, _ models.Membership) bool { return k.teamID == id })
	maps.DeleteFunc(t.st.assistants, func(k memberKey, _ models.AssistantManager) bool { return k.teamID == id })
	maps.DeleteFunc(t.st.offers, func(_ uuid.UUID, o models.PendingOffer) bool { return o.TeamID == id })
	maps.DeleteFunc(t.st.demands, func(_ uuid.UUID, d models.PendingDemand) bool { return d.TeamID == id })
	maps.DeleteFunc(t.st.matches, func(_ uuid.UUID, m models.Match) bool {
		return m.HomeTeamID == id || m.AwayTeamID == id
	})
	return nil
}

// Players

func (t *tx) GetPlayer(_ context.Context, userID string) (*models.Player, error) {
	p, ok := t.st.players[userID]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", userID, store.ErrNotFound)
	}
	return &p, nil
}

func (t *tx) SavePlayer(_ context.Context, player models.Player) error {
	if existing, ok := t.st.players[player.UserID]; ok {
		player.CreatedAt = existing.CreatedAt
	}
	t.st.players[player.UserID] = player
	return nil
}

func (t *tx) ListTopPlayers(_ context.Context, stat models.Stat, limit int) ([]models.Player, error) {
	var out []models.Player
	for _, p := range t.st.players {
		if p.Value(stat) > 0 {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Player) int {
		if d := b.Value(stat) - a.Value(stat); d != 0 {
			return d
		}
		return strings.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Memberships

func (t *tx) CreateMembership(_ context.Context, m models.Membership) error {
	k := memberKey{m.PlayerID, m.TeamID}
	if _, ok := t.st.memberships[k]; ok {
		return fmt.Errorf("membership %s on %s: %w", m.PlayerID, m.TeamID, store.ErrDuplicate)
	}
	t.st.memberships[k] = m
	return nil
}

func (t *tx) GetMembership(_ context.Context, playerID string, teamID uuid.UUID) (*models.Membership, error) {
	m, ok := t.st.memberships[memberKey{playerID, teamID}]
	if !ok {
		return nil, fmt.Errorf("membership %s on %s: %w", playerID, teamID, store.ErrNotFound)
	}
	return &m, nil
}

func (t *tx) ListMembershipsByPlayer(_ context.Context, playerID string) ([]models.Membership, error) {
	return t.memberships(func(m models.Membership) bool { return m.PlayerID == playerID }), nil
}

func (t *tx) ListMembershipsByTeam(_ context.Context, teamID uuid.UUID) ([]models.Membership, error) {
	return t.memberships(func(m models.Membership) bool { return m.TeamID == teamID }), nil
}

func (t *tx) memberships(keep func(models.Membership) bool) []models.Membership {
	var out []models.Membership
	for _, m := range t.st.memberships {
		if keep(m) {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b models.Membership) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

func (t *tx) DeleteMembership(_ context.Context, playerID string, teamID uuid.UUID) error {
	k := memberKey{playerID, teamID}
	if _, ok := t.st.memberships[k]; !ok {
		return fmt.Errorf("membership %s on %s: %w", playerID, teamID, store.ErrNotFound)
	}
	delete(t.st.memberships, k)
	return nil
}

// Staff

func (t *tx) AddAssistantManager(_ context.Context, am models.AssistantManager) error {
	k := memberKey{am.UserID, am.TeamID}
	if _, ok := t.st.assistants[k]; ok {
		return fmt.Errorf("assistant manager %s on %s: %w", am.UserID, am.TeamID, store.ErrDuplicate)
	}
	t.st.assistants[k] = am
	return nil
}

func (t *tx) RemoveAssistantManager(_ context.Context, userID string, teamID uuid.UUID) error {
	k := memberKey{userID, teamID}
	if _, ok := t.st.assistants[k]; !ok {
		return fmt.Errorf("assistant manager %s on %s: %w", userID, teamID, store.ErrNotFound)
	}
	delete(t.st.assistants, k)
	return nil
}

func (t *tx) ListAssistantManagersByTeam(_ context.Context, teamID uuid.UUID) ([]models.AssistantManager, error) {
	return t.assistantManagers(func(am models.AssistantManager) bool { return am.TeamID == teamID }), nil
}

func (t *tx) ListAssistantManagersByUser(_ context.Context, userID string) ([]models.AssistantManager, error) {
	return t.assistantManagers(func(am models.AssistantManager) bool { return am.UserID == userID }), nil
}

func (t *tx) assistantManagers(keep func(models.AssistantManager) bool) []models.AssistantManager {
	var out []models.AssistantManager
	for _, am := range t.st.assistants {
		if keep(am) {
			out = append(out, am)
		}
	}
	slices.SortFunc(out, func(a, b models.AssistantManager) int {
		if c := a.AssignedAt.Compare(b.AssignedAt); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})
	return out
}

func (t *tx) AddReferee(_ context.Context, ref models.Referee) error {
	if _, ok := t.st.referees[ref.UserID]; ok {
		return fmt.Errorf("referee %s: %w", ref.UserID, store.ErrDuplicate)
	}
	t.st.referees[ref.UserID] = ref
	return nil
}

func (t *tx) GetReferee(_ context.Context, userID string) (*models.Referee, error) {
	ref, ok := t.st.referees[userID]
	if !ok {
		return nil, fmt.Errorf("referee %s: %w", userID, store.ErrNotFound)
	}
	return &ref, nil
}

func (t *tx) RemoveReferee(_ context.Context, userID string) error {
	if _, ok := t.st.referees[userID]; !ok {
		return fmt.Errorf("referee %s: %w", userID, store.ErrNotFound)
	}
	delete(t.st.referees, userID)
	return nil
}

func (t *tx) ListReferees(_ context.Context) ([]models.Referee, error) {
	refs := slices.Collect(maps.Values(t.st.referees))
	slices.SortFunc(refs, func(a, b models.Referee) int {
		if c := a.AssignedAt.Compare(b.AssignedAt); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})
	return refs, nil
}

// Settings

func (t *tx) ListSettings(_ context.Context) (map[string]string, error) {
	return maps.Clone(t.st.settings), nil
}

func (t *tx) PutSetting(_ context.Context, key, value string) error {
	t.st.settings[key] = value
	return nil
}

// Offers and demands

func (t *tx) CreateOffer(_ context.Context, offer models.PendingOffer) error {
	if _, ok := t.st.offers[offer.Token]; ok {
		return fmt.Errorf("offer %s: %w", offer.Token, store.ErrDuplicate)
	}
	t.st.offers[offer.Token] = offer
	return nil
}

func (t *tx) GetOffer(_ context.Context, token uuid.UUID) (*models.PendingOffer, error) {
	o, ok := t.st.offers[token]
	if !ok {
		return nil, fmt.Errorf("offer %s: %w", token, store.ErrNotFound)
	}
	return &o, nil
}

func (t *tx) DeleteOffer(_ context.Context, token uuid.UUID) error {
	if _, ok := t.st.offers[token]; !ok {
		return fmt.Errorf("offer %s: %w", token, store.ErrNotFound)
	}
	delete(t.st.offers, token)
	return nil
}

func (t *tx) CreateDemand(_ context.Context, d models.PendingDemand) error {
	if _, ok := t.st.demands[d.Token]; ok {
		return fmt.Errorf("demand %s: %w", d.Token, store.ErrDuplicate)
	}
	t.st.demands[d.Token] = d
	return nil
}

func (t *tx) GetDemand(_ context.Context, token uuid.UUID) (*models.PendingDemand, error) {
	d, ok := t.st.demands[token]
	if !ok {
		return nil, fmt.Errorf("demand %s: %w", token, store.ErrNotFound)
	}
	return &d, nil
}

func (t *tx) DeleteDemand(_ context.Context, token uuid.UUID) error {
	if _, ok := t.st.demands[token]; !ok {
		return fmt.Errorf("demand %s: %w", token, store.ErrNotFound)
	}
	delete(t.st.demands, token)
	return nil
}

func (t *tx) DeleteDemandsByPlayer(_ context.Context, playerID string) error {
	maps.DeleteFunc(t.st.demands, func(_ uuid.UUID, d models.PendingDemand) bool { return d.PlayerID == playerID })
	return nil
}

func (t *tx) DeleteExpiredDemands(_ context.Context, now time.Time) (int, error) {
	before := len(t.st.demands)
	maps.DeleteFunc(t.st.demands, func(_ uuid.UUID, d models.PendingDemand) bool { return d.Expired(now) })
	return before - len(t.st.demands), nil
}

// Matches

func (t *tx) CreateMatch(_ context.Context, m models.Match) error {
	if _, ok := t.st.matches[m.ID]; ok {
		return fmt.Errorf("match %s: %w", m.ID, store.ErrDuplicate)
	}
	t.st.matches[m.ID] = m
	return nil
}

func (t *tx) GetMatch(_ context.Context, id uuid.UUID) (*models.Match, error) {
	m, ok := t.st.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, store.ErrNotFound)
	}
	return &m, nil
}

func (t *tx) UpdateMatch(_ context.Context, m models.Match) error {
	if _, ok := t.st.matches[m.ID]; !ok {
		return fmt.Errorf("match %s: %w", m.ID, store.ErrNotFound)
	}
	t.st.matches[m.ID] = m
	return nil
}

func (t *tx) ListMatches(_ context.Context, status models.MatchStatus) ([]models.Match, error) {
	var out []models.Match
	for _, m := range t.st.matches {
		if status == "" || m.Status == status {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b models.Match) int {
		if c := a.KickoffAt.Compare(b.KickoffAt); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

func (t *tx) DeleteMatch(_ context.Context, id uuid.UUID) error {
	if _, ok := t.st.matches[id]; !ok {
		return fmt.Errorf("match %s: %w", id, store.ErrNotFound)
	}
	delete(t.st.matches, id)
	return nil
}

func (t *tx) DeleteAllMatches(_ context.Context) (int, error) {
	n := len(t.st.matches)
	clear(t.st.matches)
	return n, nil
}

func (t *tx) GetFixturePosting(_ context.Context) (*models.FixturePosting, error) {
	if t.st.posting == nil {
		return nil, fmt.Errorf("fixture posting: %w", store.ErrNotFound)
	}
	p := *t.st.posting
	return &p, nil
}

func (t *tx) PutFixturePosting(_ context.Context, p models.FixturePosting) error {
	t.st.posting = &p
	return nil
}

func (t *tx) ClearFixturePosting(_ context.Context) error {
	t.st.posting = nil
	return nil
}

func (t *tx) Purge(_ context.Context) error {
	*t.st = newState()
	return nil
}
