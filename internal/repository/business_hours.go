package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
)

// BusinessHoursRepository is the read-only business hours configuration.
type BusinessHoursRepository interface {
	// BusinessHours returns the configured open intervals for a store.
	// An empty result means the store has no configuration at all, which
	// callers interpret as always open.
	BusinessHours(ctx context.Context, storeID string) ([]domain.BusinessHours, error)
}

// PostgresBusinessHoursRepository reads business_hours.
type PostgresBusinessHoursRepository struct {
	db *sql.DB
}

func NewPostgresBusinessHoursRepository(db *sql.DB) *PostgresBusinessHoursRepository {
	return &PostgresBusinessHoursRepository{db: db}
}

var _ BusinessHoursRepository = (*PostgresBusinessHoursRepository)(nil)

func (r *PostgresBusinessHoursRepository) BusinessHours(ctx context.Context, storeID string) ([]domain.BusinessHours, error) {
	// TIME columns cast to text so scanning does not depend on driver
	// type mapping.
	query := `
		SELECT store_id, day_of_week, start_time_local::text, end_time_local::text
		FROM business_hours
		WHERE store_id = $1
		ORDER BY day_of_week
	`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query business hours: %w", err)
	}
	defer rows.Close()

	var hours []domain.BusinessHours
	for rows.Next() {
		var h domain.BusinessHours
		var openStr, closeStr string
		if err := rows.Scan(&h.StoreID, &h.DayOfWeek, &openStr, &closeStr); err != nil {
			return nil, fmt.Errorf("failed to scan business hours: %w", err)
		}
		if h.Open, err = domain.ParseClockTime(openStr); err != nil {
			return nil, fmt.Errorf("failed to parse start_time_local: %w", err)
		}
		if h.Close, err = domain.ParseClockTime(closeStr); err != nil {
			return nil, fmt.Errorf("failed to parse end_time_local: %w", err)
		}
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate business hours: %w", err)
	}

	return hours, nil
}
