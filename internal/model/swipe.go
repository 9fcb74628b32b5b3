package model

import "time"

type Direction string

const (
	// Like
	DirectionRight Direction = "right"
	// Skip
	DirectionLeft Direction = "left"
)

func (d Direction) IsValid() bool {
	return d == DirectionRight || d == DirectionLeft
}

type Swipe struct {
	RoomCode  RoomCode
	MovieID   string
	UserID    string
	Direction Direction

	// Denormalized card data, copied into the match row on a mutual like.
	Title string
	Thumb string

	CreatedAt time.Time
}

func (s Swipe) Validate() error {
	if s.MovieID == "" {
		return &ValidationError{Field: "movie_id", Reason: "required"}
	}
	if !s.Direction.IsValid() {
		return &ValidationError{Field: "direction", Reason: "must be one of right, left"}
	}
	return nil
}

// SwipeResult is what the swiping client receives synchronously.
type SwipeResult struct {
	Match bool   `json:"match"`
	Title string `json:"title,omitempty"`
	Thumb string `json:"thumb,omitempty"`
}

func NoMatch() SwipeResult {
	return SwipeResult{Match: false}
}
