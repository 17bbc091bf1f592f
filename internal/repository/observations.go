package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
)

// ObservationRepository is the read-only store status feed.
type ObservationRepository interface {
	// StoreIDs lists every distinct store present in the observation set.
	StoreIDs(ctx context.Context) ([]string, error)
	// MaxTimestamp returns the newest observation timestamp across all
	// stores. It is the frozen reference instant for report generation.
	MaxTimestamp(ctx context.Context) (time.Time, error)
	// Observations returns a store's observations with from <= timestamp <= to,
	// in chronological order.
	Observations(ctx context.Context, storeID string, from, to time.Time) ([]domain.Observation, error)
}

// PostgresObservationRepository reads store_status.
type PostgresObservationRepository struct {
	db *sql.DB
}

func NewPostgresObservationRepository(db *sql.DB) *PostgresObservationRepository {
	return &PostgresObservationRepository{db: db}
}

var _ ObservationRepository = (*PostgresObservationRepository)(nil)

func (r *PostgresObservationRepository) StoreIDs(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT store_id FROM store_status ORDER BY store_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query store ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan store id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate store ids: %w", err)
	}

	return ids, nil
}

func (r *PostgresObservationRepository) MaxTimestamp(ctx context.Context) (time.Time, error) {
	query := `SELECT MAX(timestamp_utc) FROM store_status`

	var max sql.NullTime
	if err := r.db.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return time.Time{}, fmt.Errorf("failed to query max timestamp: %w", err)
	}
	if !max.Valid {
		// Empty dataset: fall back to wall clock, the report will have no rows anyway.
		return time.Now().UTC(), nil
	}

	return max.Time.UTC(), nil
}

func (r *PostgresObservationRepository) Observations(ctx context.Context, storeID string, from, to time.Time) ([]domain.Observation, error) {
	query := `
		SELECT store_id, status, timestamp_utc
		FROM store_status
		WHERE store_id = $1
		  AND timestamp_utc >= $2
		  AND timestamp_utc <= $3
		ORDER BY timestamp_utc
	`

	rows, err := r.db.QueryContext(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var observations []domain.Observation
	for rows.Next() {
		var obs domain.Observation
		var status string
		if err := rows.Scan(&obs.StoreID, &status, &obs.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		obs.Status = domain.Status(status)
		obs.Timestamp = obs.Timestamp.UTC()
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}

	return observations, nil
}
