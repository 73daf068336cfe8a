package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/sqlutil"
)

const matchColumns = `id, home_team_id, away_team_id, stadium, kickoff_at, status, cancel_reason, created_at`

func scanMatch(row rowScanner) (models.Match, error) {
	var (
		m      models.Match
		reason sql.NullString
	)
	if err := row.Scan(&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.Stadium, &m.KickoffAt, &m.Status, &reason, &m.CreatedAt); err != nil {
		return models.Match{}, err
	}
	m.KickoffAt = m.KickoffAt.UTC()
	m.CancelReason = sqlutil.FromSqlStringPtr(reason)
	return m, nil
}

func (q *queries) CreateMatch(ctx context.Context, m models.Match) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO matches (`+matchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.HomeTeamID, m.AwayTeamID, m.Stadium, m.KickoffAt, m.Status,
		sqlutil.ToSqlString(m.CancelReason), m.CreatedAt)
	return mapErr(err, fmt.Sprintf("match %s", m.ID))
}

func (q *queries) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	row := q.tx.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	m, err := scanMatch(row)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("match %s", id))
	}
	return &m, nil
}

func (q *queries) UpdateMatch(ctx context.Context, m models.Match) error {
	res, err := q.tx.ExecContext(ctx, `
		UPDATE matches SET
			home_team_id = $2, away_team_id = $3, stadium = $4,
			kickoff_at = $5, status = $6, cancel_reason = $7
		WHERE id = $1`,
		m.ID, m.HomeTeamID, m.AwayTeamID, m.Stadium, m.KickoffAt, m.Status, sqlutil.ToSqlString(m.CancelReason))
	return requireOne(res, err, fmt.Sprintf("match %s", m.ID))
}

func (q *queries) ListMatches(ctx context.Context, status models.MatchStatus) ([]models.Match, error) {
	rows, err := q.tx.QueryContext(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE $1 = '' OR status = $1
		ORDER BY kickoff_at, created_at, id`, string(status))
	if err != nil {
		return nil, mapErr(err, "list matches")
	}
	defer rows.Close()

	var out []models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, mapErr(err, "scan match")
		}
		out = append(out, m)
	}
	return out, mapErr(rows.Err(), "list matches")
}

func (q *queries) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	res, err := q.tx.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	return requireOne(res, err, fmt.Sprintf("match %s", id))
}

func (q *queries) DeleteAllMatches(ctx context.Context) (int, error) {
	res, err := q.tx.ExecContext(ctx, `DELETE FROM matches`)
	if err != nil {
		return 0, mapErr(err, "delete matches")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete matches: %w", err)
	}
	return int(n), nil
}

func (q *queries) GetFixturePosting(ctx context.Context) (*models.FixturePosting, error) {
	var p models.FixturePosting
	err := q.tx.QueryRowContext(ctx, `
		SELECT token, channel_id, anchor_match_id, posted_at, archived FROM fixture_postings`).
		Scan(&p.Token, &p.ChannelID, &p.AnchorMatchID, &p.PostedAt, &p.Archived)
	if err != nil {
		return nil, mapErr(err, "fixture posting")
	}
	return &p, nil
}

func (q *queries) PutFixturePosting(ctx context.Context, p models.FixturePosting) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO fixture_postings (singleton, token, channel_id, anchor_match_id, posted_at, archived)
		VALUES (TRUE, $1, $2, $3, $4, $5)
		ON CONFLICT (singleton) DO UPDATE SET
			token = EXCLUDED.token,
			channel_id = EXCLUDED.channel_id,
			anchor_match_id = EXCLUDED.anchor_match_id,
			posted_at = EXCLUDED.posted_at,
			archived = EXCLUDED.archived`,
		p.Token, p.ChannelID, p.AnchorMatchID, p.PostedAt, p.Archived)
	return mapErr(err, "put fixture posting")
}

func (q *queries) ClearFixturePosting(ctx context.Context) error {
	_, err := q.tx.ExecContext(ctx, `DELETE FROM fixture_postings`)
	return mapErr(err, "clear fixture posting")
}
