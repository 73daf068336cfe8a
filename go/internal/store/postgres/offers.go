package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/models"
)

func (q *queries) CreateOffer(ctx context.Context, o models.PendingOffer) error {
	contract, err := json.Marshal(o.Contract)
	if err != nil {
		return fmt.Errorf("marshal offer contract: %w", err)
	}
	_, err = q.tx.ExecContext(ctx, `
		INSERT INTO pending_offers (token, player_id, team_id, sender_id, contract, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		o.Token, o.PlayerID, o.TeamID, o.SenderID, contract, o.CreatedAt)
	return mapErr(err, fmt.Sprintf("offer %s", o.Token))
}

func (q *queries) GetOffer(ctx context.Context, token uuid.UUID) (*models.PendingOffer, error) {
	var (
		o        models.PendingOffer
		contract []byte
	)
	err := q.tx.QueryRowContext(ctx, `
		SELECT token, player_id, team_id, sender_id, contract, created_at
		FROM pending_offers WHERE token = $1`, token).
		Scan(&o.Token, &o.PlayerID, &o.TeamID, &o.SenderID, &contract, &o.CreatedAt)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("offer %s", token))
	}
	if err := json.Unmarshal(contract, &o.Contract); err != nil {
		return nil, fmt.Errorf("unmarshal offer contract: %w", err)
	}
	return &o, nil
}

func (q *queries) DeleteOffer(ctx context.Context, token uuid.UUID) error {
	res, err := q.tx.ExecContext(ctx, `DELETE FROM pending_offers WHERE token = $1`, token)
	return requireOne(res, err, fmt.Sprintf("offer %s", token))
}

func (q *queries) CreateDemand(ctx context.Context, d models.PendingDemand) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO pending_demands (token, player_id, team_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`,
		d.Token, d.PlayerID, d.TeamID, d.CreatedAt, d.ExpiresAt)
	return mapErr(err, fmt.Sprintf("demand %s", d.Token))
}

func (q *queries) GetDemand(ctx context.Context, token uuid.UUID) (*models.PendingDemand, error) {
	var d models.PendingDemand
	err := q.tx.QueryRowContext(ctx, `
		SELECT token, player_id, team_id, created_at, expires_at
		FROM pending_demands WHERE token = $1`, token).
		Scan(&d.Token, &d.PlayerID, &d.TeamID, &d.CreatedAt, &d.ExpiresAt)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("demand %s", token))
	}
	return &d, nil
}

func (q *queries) DeleteDemand(ctx context.Context, token uuid.UUID) error {
	res, err := q.tx.ExecContext(ctx, `DELETE FROM pending_demands WHERE token = $1`, token)
	return requireOne(res, err, fmt.Sprintf("demand %s", token))
}

func (q *queries) DeleteDemandsByPlayer(ctx context.Context, playerID string) error {
	_, err := q.tx.ExecContext(ctx, `DELETE FROM pending_demands WHERE player_id = $1`, playerID)
	return mapErr(err, fmt.Sprintf("demands of %s", playerID))
}

func (q *queries) DeleteExpiredDemands(ctx context.Context, now time.Time) (int, error) {
	res, err := q.tx.ExecContext(ctx, `DELETE FROM pending_demands WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, mapErr(err, "delete expired demands")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired demands: %w", err)
	}
	return int(n), nil
}
