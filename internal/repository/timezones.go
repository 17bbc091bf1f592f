package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TimezoneRepository is the read-only store timezone assignment.
type TimezoneRepository interface {
	// Timezone returns the IANA timezone name assigned to a store, or ""
	// when the store has no assignment.
	Timezone(ctx context.Context, storeID string) (string, error)
}

// PostgresTimezoneRepository reads store_timezones.
type PostgresTimezoneRepository struct {
	db *sql.DB
}

func NewPostgresTimezoneRepository(db *sql.DB) *PostgresTimezoneRepository {
	return &PostgresTimezoneRepository{db: db}
}

var _ TimezoneRepository = (*PostgresTimezoneRepository)(nil)

func (r *PostgresTimezoneRepository) Timezone(ctx context.Context, storeID string) (string, error) {
	query := `SELECT timezone_str FROM store_timezones WHERE store_id = $1`

	var tz string
	err := r.db.QueryRowContext(ctx, query, storeID).Scan(&tz)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query timezone: %w", err)
	}

	return tz, nil
}
