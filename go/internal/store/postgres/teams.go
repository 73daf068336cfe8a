package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/sqlutil"
)

const teamColumns = `id, name, short_code, role_id, manager_id, legacy_assistant_manager_id, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (models.Team, error) {
	var (
		t       models.Team
		manager sql.NullString
		legacy  sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Name, &t.ShortCode, &t.RoleID, &manager, &legacy, &t.CreatedAt); err != nil {
		return models.Team{}, err
	}
	t.ManagerID = sqlutil.FromSqlStringPtr(manager)
	t.LegacyAssistantManagerID = sqlutil.FromSqlStringPtr(legacy)
	return t, nil
}

func (q *queries) CreateTeam(ctx context.Context, team models.Team) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO teams (`+teamColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		team.ID, team.Name, team.ShortCode, team.RoleID,
		sqlutil.ToSqlString(team.ManagerID), sqlutil.ToSqlString(team.LegacyAssistantManagerID), team.CreatedAt,
	)
	return mapErr(err, fmt.Sprintf("create team %q", team.Name))
}

func (q *queries) getTeam(ctx context.Context, what, where string, arg any) (*models.Team, error) {
	row := q.tx.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE `+where, arg)
	t, err := scanTeam(row)
	if err != nil {
		return nil, mapErr(err, what)
	}
	return &t, nil
}

func (q *queries) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return q.getTeam(ctx, fmt.Sprintf("team %s", id), `id = $1`, id)
}

func (q *queries) GetTeamByRole(ctx context.Context, roleID string) (*models.Team, error) {
	return q.getTeam(ctx, fmt.Sprintf("team with role %s", roleID), `role_id = $1`, roleID)
}

func (q *queries) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	return q.getTeam(ctx, fmt.Sprintf("team %q", name), `lower(name) = lower($1)`, name)
}

func (q *queries) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := q.tx.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY name, id`)
	if err != nil {
		return nil, mapErr(err, "list teams")
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, mapErr(err, "scan team")
		}
		teams = append(teams, t)
	}
	return teams, mapErr(rows.Err(), "list teams")
}

func (q *queries) SetTeamManager(ctx context.Context, id uuid.UUID, managerID *string) error {
	res, err := q.tx.ExecContext(ctx, `UPDATE teams SET manager_id = $2 WHERE id = $1`, id, sqlutil.ToSqlString(managerID))
	return requireOne(res, err, fmt.Sprintf("team %s", id))
}

// DeleteTeam relies on ON DELETE CASCADE for dependent rows.
func (q *queries) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	res, err := q.tx.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return requireOne(res, err, fmt.Sprintf("team %s", id))
}
