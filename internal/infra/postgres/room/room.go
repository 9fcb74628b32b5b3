package infra_postgres_room

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/humanbelnik/kinoswipe/internal/model"
	usecase_room "github.com/humanbelnik/kinoswipe/internal/usecase/room"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	Code      string    `db:"pairing_code"`
	MovieData []byte    `db:"movie_data"`
	Ready     bool      `db:"ready"`
	Genre     string    `db:"current_genre"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func encodeMovies(movies []model.Movie) ([]byte, error) {
	if movies == nil {
		movies = []model.Movie{}
	}
	data, err := json.Marshal(movies)
	if err != nil {
		return nil, fmt.Errorf("encode movie snapshot: %w", err)
	}
	return data, nil
}

// Upsert replaces a room stored under the same code and clears that code's
// swipes and matches in the same transaction.
func (d *Driver) Upsert(ctx context.Context, room model.Room) error {
	data, err := encodeMovies(room.Movies)
	if err != nil {
		return err
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO rooms (pairing_code, movie_data, ready, current_genre, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (pairing_code)
		DO UPDATE SET
			movie_data = EXCLUDED.movie_data,
			ready = EXCLUDED.ready,
			current_genre = EXCLUDED.current_genre,
			created_at = now(),
			updated_at = now()
	`
	if _, err := tx.ExecContext(ctx, query, room.Code, data, room.Ready, room.Genre); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM swipes WHERE room_code = $1`, room.Code); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE room_code = $1`, room.Code); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Driver) ByCode(ctx context.Context, code model.RoomCode) (model.Room, error) {
	var room roomDTO

	query := `
		SELECT pairing_code, movie_data, ready, current_genre, created_at, updated_at
		FROM rooms
		WHERE pairing_code = $1
	`

	err := d.db.GetContext(ctx, &room, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	var movies []model.Movie
	if len(room.MovieData) > 0 {
		if err := json.Unmarshal(room.MovieData, &movies); err != nil {
			return model.Room{}, fmt.Errorf("decode movie snapshot of %s: %w", code, err)
		}
	}

	return model.Room{
		Code:      room.Code,
		Movies:    movies,
		Ready:     room.Ready,
		Genre:     room.Genre,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}, nil
}

func (d *Driver) SetReady(ctx context.Context, code model.RoomCode) error {
	query := `
		UPDATE rooms
		SET ready = TRUE, updated_at = now()
		WHERE pairing_code = $1
	`

	result, err := d.db.ExecContext(ctx, query, code)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func (d *Driver) ReplaceMovies(ctx context.Context, code model.RoomCode, genre string, movies []model.Movie) error {
	data, err := encodeMovies(movies)
	if err != nil {
		return err
	}

	query := `
		UPDATE rooms
		SET movie_data = $1, current_genre = $2, updated_at = now()
		WHERE pairing_code = $3
	`

	result, err := d.db.ExecContext(ctx, query, data, genre, code)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

// DeleteByCode removes the room with its swipes and matches. Orphan swipes
// of an already deleted room are removed as well before NotFound is reported.
func (d *Driver) DeleteByCode(ctx context.Context, code model.RoomCode) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE pairing_code = $1`, code)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM swipes WHERE room_code = $1`, code); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE room_code = $1`, code); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	return requireAffected(result)
}

// CleanupIdleRooms removes rooms untouched and unswiped for longer than
// deadline together with their ledgers. Ledger rows of rooms that no longer
// exist are dropped once their latest row is older than deadline. Only
// removed rooms are counted.
func (d *Driver) CleanupIdleRooms(ctx context.Context, deadline time.Duration) (int64, error) {
	query := `
		WITH idle AS (
			SELECT r.pairing_code
			FROM rooms r
			WHERE r.updated_at < now() - make_interval(secs => $1)
			AND NOT EXISTS (
				SELECT 1 FROM swipes s
				WHERE s.room_code = r.pairing_code
				AND s.created_at >= now() - make_interval(secs => $1)
			)
		),
		stale_orphans AS (
			SELECT l.room_code
			FROM (
				SELECT room_code, created_at FROM swipes
				UNION ALL
				SELECT room_code, created_at FROM matches
			) l
			WHERE NOT EXISTS (SELECT 1 FROM rooms r WHERE r.pairing_code = l.room_code)
			GROUP BY l.room_code
			HAVING max(l.created_at) < now() - make_interval(secs => $1)
		),
		dropped_swipes AS (
			DELETE FROM swipes
			WHERE room_code IN (SELECT pairing_code FROM idle)
			OR room_code IN (SELECT room_code FROM stale_orphans)
		),
		dropped_matches AS (
			DELETE FROM matches
			WHERE room_code IN (SELECT pairing_code FROM idle)
			OR room_code IN (SELECT room_code FROM stale_orphans)
		)
		DELETE FROM rooms WHERE pairing_code IN (SELECT pairing_code FROM idle)
	`

	result, err := d.db.ExecContext(ctx, query, deadline.Seconds())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}
