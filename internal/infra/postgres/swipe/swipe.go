package infra_postgres_swipe

import (
	"context"

	"github.com/humanbelnik/kinoswipe/internal/model"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

func (d *Driver) Append(ctx context.Context, swipe model.Swipe) error {
	query := `
		INSERT INTO swipes (room_code, movie_id, user_id, direction)
		VALUES ($1, $2, $3, $4)
	`

	_, err := d.db.ExecContext(ctx, query,
		swipe.RoomCode,
		swipe.MovieID,
		swipe.UserID,
		string(swipe.Direction),
	)
	return err
}

func (d *Driver) HasOtherLike(ctx context.Context, code model.RoomCode, movieID string, userID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM swipes
			WHERE room_code = $1 AND movie_id = $2 AND direction = $3 AND user_id <> $4
		)
	`

	var exists bool
	err := d.db.QueryRowContext(ctx, query, code, movieID, string(model.DirectionRight), userID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (d *Driver) DeleteByUser(ctx context.Context, code model.RoomCode, movieID string, userID string) (int64, error) {
	query := `
		DELETE FROM swipes
		WHERE room_code = $1 AND movie_id = $2 AND user_id = $3
	`

	result, err := d.db.ExecContext(ctx, query, code, movieID, userID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
