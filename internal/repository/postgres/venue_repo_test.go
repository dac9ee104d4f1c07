package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlist/internal/domain"
)

func TestVenueRepository_Create(t *testing.T) {
	ctx := context.Background()
	capacity := 300

	tests := []struct {
		name      string
		venue     *domain.Venue
		mock      func(mock sqlmock.Sqlmock)
		wantErrIs error
	}{
		{
			name:  "with capacity",
			venue: domain.NewVenue("Hall", "1 Main St", &capacity),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO venues \(name, address, capacity\)`).
					WithArgs("Hall", "1 Main St", int64(300)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("venue-1"))
			},
		},
		{
			name:  "unknown capacity is stored as NULL",
			venue: domain.NewVenue("Hall", "", nil),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO venues`).
					WithArgs("Hall", "", nil).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("venue-1"))
			},
		},
		{
			name:  "capacity check",
			venue: domain.NewVenue("Hall", "", &capacity),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO venues`).
					WillReturnError(&pq.Error{Code: codeCheckViolation, Constraint: "venues_capacity_check"})
			},
			wantErrIs: domain.ErrConstraintViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewVenueRepository(db).Create(ctx, tt.venue)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "venue-1", tt.venue.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVenueRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "name", "address", "capacity"}
	mock.ExpectQuery(`FROM venues\s+WHERE id = \$1`).
		WithArgs("venue-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("venue-1", "Hall", "1 Main St", int64(120)))
	mock.ExpectQuery(`FROM venues\s+WHERE id = \$1`).
		WithArgs("venue-2").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("venue-2", "Park", "", nil))
	mock.ExpectQuery(`FROM venues`).
		WithArgs("venue-3").
		WillReturnError(sql.ErrNoRows)

	repo := NewVenueRepository(db)
	got, err := repo.GetByID(context.Background(), "venue-1")
	require.NoError(t, err)
	require.NotNil(t, got.Capacity)
	assert.Equal(t, 120, *got.Capacity)

	got, err = repo.GetByID(context.Background(), "venue-2")
	require.NoError(t, err)
	assert.Nil(t, got.Capacity)

	_, err = repo.GetByID(context.Background(), "venue-3")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_UpdateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE venues SET name = \$1, address = \$2, capacity = \$3\s+WHERE id = \$4`).
		WithArgs("Arena", "", nil, "venue-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM venues WHERE id = \$1`).
		WithArgs("venue-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM venues WHERE id = \$1`).
		WithArgs("venue-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewVenueRepository(db)
	require.NoError(t, repo.Update(context.Background(), &domain.Venue{ID: "venue-1", Name: "Arena"}))
	require.NoError(t, repo.Delete(context.Background(), "venue-1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "venue-1"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM venues\s+ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "capacity"}).
			AddRow("venue-1", "Arena", "", int64(5000)).
			AddRow("venue-2", "Hall", "", nil))

	got, err := NewVenueRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 5000, *got[0].Capacity)
	assert.Nil(t, got[1].Capacity)
	require.NoError(t, mock.ExpectationsWereMet())
}
