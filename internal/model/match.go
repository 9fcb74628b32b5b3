package model

import "time"

// Match is unique per (RoomCode, MovieID).
type Match struct {
	RoomCode RoomCode `json:"-"`
	MovieID  string   `json:"movie_id"`
	Title    string   `json:"title"`
	Thumb    string   `json:"thumb"`

	CreatedAt time.Time `json:"-"`
}
