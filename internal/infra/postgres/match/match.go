package infra_postgres_match

import (
	"context"
	"time"

	"github.com/humanbelnik/kinoswipe/internal/model"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type matchDTO struct {
	RoomCode  string    `db:"room_code"`
	MovieID   string    `db:"movie_id"`
	Title     string    `db:"title"`
	Thumb     string    `db:"thumb"`
	CreatedAt time.Time `db:"created_at"`
}

func (d *Driver) Insert(ctx context.Context, match model.Match) (bool, error) {
	query := `
		INSERT INTO matches (room_code, movie_id, title, thumb)
		VALUES (:room_code, :movie_id, :title, :thumb)
		ON CONFLICT (room_code, movie_id) DO NOTHING
	`

	result, err := d.db.NamedExecContext(ctx, query, matchDTO{
		RoomCode: match.RoomCode,
		MovieID:  match.MovieID,
		Title:    match.Title,
		Thumb:    match.Thumb,
	})
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (d *Driver) ListByRoom(ctx context.Context, code model.RoomCode) ([]model.Match, error) {
	var rows []matchDTO

	query := `
		SELECT room_code, movie_id, title, thumb, created_at
		FROM matches
		WHERE room_code = $1
		ORDER BY created_at, movie_id
	`

	if err := d.db.SelectContext(ctx, &rows, query, code); err != nil {
		return nil, err
	}

	matches := make([]model.Match, 0, len(rows))
	for _, r := range rows {
		matches = append(matches, model.Match{
			RoomCode:  r.RoomCode,
			MovieID:   r.MovieID,
			Title:     r.Title,
			Thumb:     r.Thumb,
			CreatedAt: r.CreatedAt,
		})
	}

	return matches, nil
}

func (d *Driver) Delete(ctx context.Context, code model.RoomCode, movieID string) error {
	query := `
		DELETE FROM matches
		WHERE room_code = $1 AND movie_id = $2
	`

	_, err := d.db.ExecContext(ctx, query, code, movieID)
	return err
}
