package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
)

func (q *queries) AddAssistantManager(ctx context.Context, am models.AssistantManager) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO assistant_managers (user_id, team_id, assigned_at) VALUES ($1, $2, $3)`,
		am.UserID, am.TeamID, am.AssignedAt)
	return mapErr(err, fmt.Sprintf("assistant manager %s on %s", am.UserID, am.TeamID))
}

func (q *queries) RemoveAssistantManager(ctx context.Context, userID string, teamID uuid.UUID) error {
	res, err := q.tx.ExecContext(ctx, `DELETE FROM assistant_managers WHERE user_id = $1 AND team_id = $2`, userID, teamID)
	return requireOne(res, err, fmt.Sprintf("assistant manager %s on %s", userID, teamID))
}

func (q *queries) listAssistantManagers(ctx context.Context, where string, arg any) ([]models.AssistantManager, error) {
	rows, err := q.tx.QueryContext(ctx, `
		SELECT user_id, team_id, assigned_at FROM assistant_managers
		WHERE `+where+` ORDER BY assigned_at, user_id`, arg)
	if err != nil {
		return nil, mapErr(err, "list assistant managers")
	}
	defer rows.Close()

	var out []models.AssistantManager
	for rows.Next() {
		var am models.AssistantManager
		if err := rows.Scan(&am.UserID, &am.TeamID, &am.AssignedAt); err != nil {
			return nil, mapErr(err, "scan assistant manager")
		}
		out = append(out, am)
	}
	return out, mapErr(rows.Err(), "list assistant managers")
}

func (q *queries) ListAssistantManagersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.AssistantManager, error) {
	return q.listAssistantManagers(ctx, `team_id = $1`, teamID)
}

func (q *queries) ListAssistantManagersByUser(ctx context.Context, userID string) ([]models.AssistantManager, error) {
	return q.listAssistantManagers(ctx, `user_id = $1`, userID)
}

func (q *queries) AddReferee(ctx context.Context, ref models.Referee) error {
	_, err := q.tx.ExecContext(ctx, `INSERT INTO referees (user_id, assigned_at) VALUES ($1, $2)`, ref.UserID, ref.AssignedAt)
	return mapErr(err, fmt.Sprintf("referee %s", ref.UserID))
}

func (q *queries) GetReferee(ctx context.Context, userID string) (*models.Referee, error) {
	var ref models.Referee
	err := q.tx.QueryRowContext(ctx, `SELECT user_id, assigned_at FROM referees WHERE user_id = $1`, userID).
		Scan(&ref.UserID, &ref.AssignedAt)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("referee %s", userID))
	}
	return &ref, nil
}

func (q *queries) RemoveReferee(ctx context.Context, userID string) error {
	res, err := q.tx.ExecContext(ctx, `DELETE FROM referees WHERE user_id = $1`, userID)
	return requireOne(res, err, fmt.Sprintf("referee %s", userID))
}

func (q *queries) ListReferees(ctx context.Context) ([]models.Referee, error) {
	rows, err := q.tx.QueryContext(ctx, `SELECT user_id, assigned_at FROM referees ORDER BY assigned_at, user_id`)
	if err != nil {
		return nil, mapErr(err, "list referees")
	}
	defer rows.Close()

	var out []models.Referee
	for rows.Next() {
		var ref models.Referee
		if err := rows.Scan(&ref.UserID, &ref.AssignedAt); err != nil {
			return nil, mapErr(err, "scan referee")
		}
		out = append(out, ref)
	}
	return out, mapErr(rows.Err(), "list referees")
}

func (q *queries) ListSettings(ctx context.Context) (map[string]string, error) {
	rows, err := q.tx.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, mapErr(err, "list settings")
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, mapErr(err, "scan setting")
		}
		out[k] = v
	}
	return out, mapErr(rows.Err(), "list settings")
}

func (q *queries) PutSetting(ctx context.Context, key, value string) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, value)
	return mapErr(err, fmt.Sprintf("setting %s", key))
}
