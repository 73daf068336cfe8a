package postgres

import (
	"context"
	"fmt"

	"github.com/mcdev12/pitchside/go/internal/models"
)

const playerColumns = `user_id, name, goals, assists, mentions, motm, demand_uses, created_at`

func scanPlayer(row rowScanner) (models.Player, error) {
	var p models.Player
	err := row.Scan(&p.UserID, &p.Name, &p.Goals, &p.Assists, &p.Mentions, &p.MOTM, &p.DemandUses, &p.CreatedAt)
	return p, err
}

// statColumn maps a counter to its column; the result is safe to splice into SQL.
func statColumn(stat models.Stat) (string, error) {
	switch stat {
	case models.StatGoals:
		return "goals", nil
	case models.StatAssists:
		return "assists", nil
	case models.StatMentions:
		return "mentions", nil
	case models.StatMOTM:
		return "motm", nil
	}
	return "", fmt.Errorf("unknown stat %q", stat)
}

func (q *queries) GetPlayer(ctx context.Context, userID string) (*models.Player, error) {
	row := q.tx.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE user_id = $1`, userID)
	p, err := scanPlayer(row)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("player %s", userID))
	}
	return &p, nil
}

func (q *queries) SavePlayer(ctx context.Context, p models.Player) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			mentions = EXCLUDED.mentions,
			motm = EXCLUDED.motm,
			demand_uses = EXCLUDED.demand_uses`,
		p.UserID, p.Name, p.Goals, p.Assists, p.Mentions, p.MOTM, p.DemandUses, p.CreatedAt,
	)
	return mapErr(err, fmt.Sprintf("save player %s", p.UserID))
}

func (q *queries) ListTopPlayers(ctx context.Context, stat models.Stat, limit int) ([]models.Player, error) {
	col, err := statColumn(stat)
	if err != nil {
		return nil, err
	}
	rows, err := q.tx.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM players
		WHERE %s > 0
		ORDER BY %s DESC, name
		LIMIT $1`, playerColumns, col, col), limit)
	if err != nil {
		return nil, mapErr(err, "list top players")
	}
	defer rows.Close()

	var out []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, mapErr(err, "scan player")
		}
		out = append(out, p)
	}
	return out, mapErr(rows.Err(), "list top players")
}
