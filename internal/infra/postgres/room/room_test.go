package infra_postgres_room

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/humanbelnik/kinoswipe/internal/model"
	usecase_room "github.com/humanbelnik/kinoswipe/internal/usecase/room"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type RoomInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	driver := New(sqlxDB)

	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: driver,
		ctx:    context.Background(),
	}
}

func validRoom() model.Room {
	return model.Room{
		Code:   "4821",
		Movies: []model.Movie{{ID: "100", Title: "Alien", Duration: "1h 57m"}},
		Genre:  model.AllGenres,
	}
}

const validSnapshot = `[{"id":"100","title":"Alien","summary":"","thumb":"","rating":null,"duration":"1h 57m"}]`

func (suite *RoomInfraUnitSuite) TestUpsert(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectError   bool
		errorContains string
	}{
		{
			name: "Should upsert room and clear its ledger",
			setupMocks: func(r *resources) {
				r.mock.ExpectBegin()
				r.mock.ExpectExec("INSERT INTO rooms").
					WithArgs("4821", []byte(validSnapshot), false, model.AllGenres).
					WillReturnResult(sqlmock.NewResult(0, 1))
				r.mock.ExpectExec("DELETE FROM swipes").
					WithArgs("4821").
					WillReturnResult(sqlmock.NewResult(0, 3))
				r.mock.ExpectExec("DELETE FROM matches").
					WithArgs("4821").
					WillReturnResult(sqlmock.NewResult(0, 1))
				r.mock.ExpectCommit()
			},
		},
		{
			name: "Should roll back when ledger cleanup fails",
			setupMocks: func(r *resources) {
				r.mock.ExpectBegin()
				r.mock.ExpectExec("INSERT INTO rooms").
					WillReturnResult(sqlmock.NewResult(0, 1))
				r.mock.ExpectExec("DELETE FROM swipes").
					WillReturnError(errors.New("lock timeout"))
				r.mock.ExpectRollback()
			},
			expectError:   true,
			errorContains: "lock timeout",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			err := r.driver.Upsert(r.ctx, validRoom())

			if tc.expectError {
				assert.ErrorContains(t, err, tc.errorContains)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *RoomInfraUnitSuite) TestByCode(t provider.T) {
	t.Parallel()

	columns := []string{"pairing_code", "movie_data", "ready", "current_genre", "created_at", "updated_at"}
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expected      model.Room
		expectedError error
		expectError   bool
	}{
		{
			name: "Should decode snapshot",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("SELECT pairing_code, movie_data").
					WithArgs("4821").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("4821", []byte(validSnapshot), true, "Comedy", now, now))
			},
			expected: model.Room{
				Code:      "4821",
				Movies:    []model.Movie{{ID: "100", Title: "Alien", Duration: "1h 57m"}},
				Ready:     true,
				Genre:     "Comedy",
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name: "Should map missing row to not found",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("SELECT pairing_code, movie_data").
					WithArgs("4821").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: usecase_room.ErrResourceNotFound,
			expectError:   true,
		},
		{
			name: "Should fail on corrupt snapshot",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("SELECT pairing_code, movie_data").
					WithArgs("4821").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("4821", []byte("{"), false, model.AllGenres, now, now))
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			room, err := r.driver.ByCode(r.ctx, "4821")

			if tc.expectError {
				assert.Error(t, err)
				if tc.expectedError != nil {
					assert.ErrorIs(t, err, tc.expectedError)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, room)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *RoomInfraUnitSuite) TestSetReady(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		affected      int64
		expectedError error
	}{
		{name: "Should flip readiness", affected: 1},
		{name: "Should report unknown code", affected: 0, expectedError: usecase_room.ErrResourceNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			r.mock.ExpectExec("UPDATE rooms").
				WithArgs("4821").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			err := r.driver.SetReady(r.ctx, "4821")

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *RoomInfraUnitSuite) TestReplaceMovies(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.mock.ExpectExec("UPDATE rooms").
		WithArgs([]byte("[]"), "Comedy", "4821").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.driver.ReplaceMovies(r.ctx, "4821", "Comedy", nil)

	assert.ErrorIs(t, err, usecase_room.ErrResourceNotFound)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (suite *RoomInfraUnitSuite) TestDeleteByCode(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		roomsDeleted  int64
		expectedError error
	}{
		{name: "Should cascade to ledger", roomsDeleted: 1},
		{name: "Should report missing room after cleaning orphans", roomsDeleted: 0, expectedError: usecase_room.ErrResourceNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			r.mock.ExpectBegin()
			r.mock.ExpectExec("DELETE FROM rooms").
				WithArgs("4821").
				WillReturnResult(sqlmock.NewResult(0, tc.roomsDeleted))
			r.mock.ExpectExec("DELETE FROM swipes").
				WithArgs("4821").
				WillReturnResult(sqlmock.NewResult(0, 4))
			r.mock.ExpectExec("DELETE FROM matches").
				WithArgs("4821").
				WillReturnResult(sqlmock.NewResult(0, 1))
			r.mock.ExpectCommit()

			err := r.driver.DeleteByCode(r.ctx, "4821")

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *RoomInfraUnitSuite) TestCleanupIdleRooms(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.mock.ExpectExec("WITH idle AS").
		WithArgs(float64(6 * 60 * 60)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := r.driver.CleanupIdleRooms(r.ctx, 6*time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (suite *RoomInfraUnitSuite) TestCleanupIdleRoomsDropsOrphanLedgers(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.mock.ExpectExec(`(?s)stale_orphans AS .*NOT EXISTS \(SELECT 1 FROM rooms r WHERE r\.pairing_code = l\.room_code\)` +
		`.*HAVING max\(l\.created_at\) < now\(\) - make_interval\(secs => \$1\)` +
		`.*DELETE FROM swipes.*room_code IN \(SELECT room_code FROM stale_orphans\)` +
		`.*DELETE FROM matches.*room_code IN \(SELECT room_code FROM stale_orphans\)`).
		WithArgs(float64(60 * 60)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := r.driver.CleanupIdleRooms(r.ctx, time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func TestRoomInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(RoomInfraUnitSuite))
}
