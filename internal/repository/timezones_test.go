package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezone_Assigned(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPostgresTimezoneRepository(db)

	rows := sqlmock.NewRows([]string{"timezone_str"}).AddRow("Asia/Kolkata")

	mock.ExpectQuery(`SELECT timezone_str`).
		WithArgs("store-1").
		WillReturnRows(rows)

	tz, err := repo.Timezone(context.Background(), "store-1")

	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", tz)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimezone_Unassigned(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPostgresTimezoneRepository(db)

	rows := sqlmock.NewRows([]string{"timezone_str"})

	mock.ExpectQuery(`SELECT timezone_str`).
		WithArgs("store-9").
		WillReturnRows(rows)

	tz, err := repo.Timezone(context.Background(), "store-9")

	require.NoError(t, err)
	assert.Equal(t, "", tz)
	assert.NoError(t, mock.ExpectationsWereMet())
}
