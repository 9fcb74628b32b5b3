package model

import (
	"fmt"
	"math/rand"
)

type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Session is the server side state behind an opaque session token.
// A session is bound to at most one room at a time.
type Session struct {
	UserID   string   `json:"user_id,omitempty"`
	RoomCode RoomCode `json:"room_code,omitempty"`
	Role     Role     `json:"role,omitempty"`

	// Plex PIN awaiting the user's approval on plex.tv.
	PendingPinID int `json:"pending_pin_id,omitempty"`
}

func (s Session) InRoom() bool {
	return s.RoomCode != EmptyRoomCode && s.UserID != ""
}

// Bind returns a copy of s attached to code with a fresh user identity.
func (s Session) Bind(code RoomCode, role Role) Session {
	s.RoomCode = code
	s.Role = role
	s.UserID = NewUserID(role)
	return s
}

// NewUserID is not globally unique: role tag plus a small random integer.
func NewUserID(role Role) string {
	return fmt.Sprintf("%s_%d", role, rand.Intn(999)+1)
}
