package notify

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a delivery attempt.
func (r *PGRepo) Create(ctx context.Context, d Delivery) error {
	const query = `
INSERT INTO notification_deliveries (
    id,
    recipient,
    service_type,
    recommendation_count,
    potential_savings,
    status,
    error,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var errText sql.NullString
	if d.Error != "" {
		errText = sql.NullString{String: d.Error, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		d.ID,
		d.Recipient,
		d.ServiceType,
		d.RecommendationCount,
		d.PotentialSavings.StringFixed(2),
		d.Status,
		errText,
		d.CreatedAt,
	)
	return err
}

// ListRecent returns up to limit deliveries, newest first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Delivery, error) {
	const query = `
SELECT id, recipient, service_type, recommendation_count, potential_savings, status, error, created_at
FROM notification_deliveries
ORDER BY created_at DESC
LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Delivery
	for rows.Next() {
		var (
			d       Delivery
			errText sql.NullString
		)
		if err := rows.Scan(
			&d.ID,
			&d.Recipient,
			&d.ServiceType,
			&d.RecommendationCount,
			&d.PotentialSavings,
			&d.Status,
			&errText,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		if errText.Valid {
			d.Error = errText.String
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
