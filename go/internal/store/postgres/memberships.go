package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/sqlutil"
	"github.com/sqlc-dev/pqtype"
)

const membershipColumns = `id, player_id, team_id, role, contract, joined_at`

func scanMembership(row rowScanner) (models.Membership, error) {
	var (
		m        models.Membership
		contract pqtype.NullRawMessage
	)
	if err := row.Scan(&m.ID, &m.PlayerID, &m.TeamID, &m.Role, &contract, &m.JoinedAt); err != nil {
		return models.Membership{}, err
	}
	terms, err := sqlutil.FromNullJSON[models.Contract](contract)
	if err != nil {
		return models.Membership{}, err
	}
	m.Contract = terms
	return m, nil
}

func (q *queries) CreateMembership(ctx context.Context, m models.Membership) error {
	contract, err := sqlutil.ToNullJSON(m.Contract)
	if err != nil {
		return err
	}
	_, err = q.tx.ExecContext(ctx, `
		INSERT INTO memberships (`+membershipColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.PlayerID, m.TeamID, m.Role, contract, m.JoinedAt,
	)
	return mapErr(err, fmt.Sprintf("membership %s on %s", m.PlayerID, m.TeamID))
}

func (q *queries) GetMembership(ctx context.Context, playerID string, teamID uuid.UUID) (*models.Membership, error) {
	row := q.tx.QueryRowContext(ctx, `
		SELECT `+membershipColumns+` FROM memberships
		WHERE player_id = $1 AND team_id = $2`, playerID, teamID)
	m, err := scanMembership(row)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("membership %s on %s", playerID, teamID))
	}
	return &m, nil
}

func (q *queries) listMemberships(ctx context.Context, where string, arg any) ([]models.Membership, error) {
	rows, err := q.tx.QueryContext(ctx, `
		SELECT `+membershipColumns+` FROM memberships
		WHERE `+where+` ORDER BY joined_at, id`, arg)
	if err != nil {
		return nil, mapErr(err, "list memberships")
	}
	defer rows.Close()

	var out []models.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, mapErr(err, "scan membership")
		}
		out = append(out, m)
	}
	return out, mapErr(rows.Err(), "list memberships")
}

func (q *queries) ListMembershipsByPlayer(ctx context.Context, playerID string) ([]models.Membership, error) {
	return q.listMemberships(ctx, `player_id = $1`, playerID)
}

func (q *queries) ListMembershipsByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Membership, error) {
	return q.listMemberships(ctx, `team_id = $1`, teamID)
}

func (q *queries) DeleteMembership(ctx context.Context, playerID string, teamID uuid.UUID) error {
	res, err := q.tx.ExecContext(ctx, `DELETE FROM memberships WHERE player_id = $1 AND team_id = $2`, playerID, teamID)
	return requireOne(res, err, fmt.Sprintf("membership %s on %s", playerID, teamID))
}
