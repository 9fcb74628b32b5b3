package model

import "time"

type RoomCode = string

const EmptyRoomCode RoomCode = ""

// AllGenres is the filter a room starts with: no genre restriction.
const AllGenres = "All"

// RecentlyAdded is a pseudo-genre: newest library additions, unshuffled.
const RecentlyAdded = "Recently Added"

type Room struct {
	Code   RoomCode
	Movies []Movie
	Ready  bool
	Genre  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RoomStatus struct {
	Ready bool   `json:"ready"`
	Genre string `json:"genre"`
}

// DefaultRoomStatus is reported for sessions without a live room.
func DefaultRoomStatus() RoomStatus {
	return RoomStatus{
		Ready: false,
		Genre: AllGenres,
	}
}
