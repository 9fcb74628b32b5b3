package infra_memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/humanbelnik/kinoswipe/internal/model"
	usecase_room "github.com/humanbelnik/kinoswipe/internal/usecase/room"
)

// Store keeps rooms with their swipe ledger and match set in process memory.
// It serves the room, swipe and match repositories at once so that deleting
// a room cascades under a single lock.
type Store struct {
	mu sync.RWMutex

	rooms   map[model.RoomCode]model.Room
	swipes  map[model.RoomCode][]model.Swipe
	matches map[model.RoomCode][]model.Match

	now func() time.Time
}

func New() *Store {
	return &Store{
		rooms:   make(map[model.RoomCode]model.Room),
		swipes:  make(map[model.RoomCode][]model.Swipe),
		matches: make(map[model.RoomCode][]model.Match),
		now:     time.Now,
	}
}

func (s *Store) Upsert(_ context.Context, room model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	room.Movies = slices.Clone(room.Movies)
	room.CreatedAt = now
	room.UpdatedAt = now
	s.rooms[room.Code] = room
	delete(s.swipes, room.Code)
	delete(s.matches, room.Code)
	return nil
}

func (s *Store) ByCode(_ context.Context, code model.RoomCode) (model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[code]
	if !ok {
		return model.Room{}, usecase_room.ErrResourceNotFound
	}
	room.Movies = slices.Clone(room.Movies)
	return room, nil
}

func (s *Store) SetReady(_ context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return usecase_room.ErrResourceNotFound
	}
	room.Ready = true
	room.UpdatedAt = s.now()
	s.rooms[code] = room
	return nil
}

func (s *Store) ReplaceMovies(_ context.Context, code model.RoomCode, genre string, movies []model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return usecase_room.ErrResourceNotFound
	}
	room.Movies = slices.Clone(movies)
	room.Genre = genre
	room.UpdatedAt = s.now()
	s.rooms[code] = room
	return nil
}

func (s *Store) DeleteByCode(_ context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.rooms[code]
	delete(s.rooms, code)
	delete(s.swipes, code)
	delete(s.matches, code)
	if !ok {
		return usecase_room.ErrResourceNotFound
	}
	return nil
}

// CleanupIdleRooms drops rooms with no update and no swipe within deadline.
// Ledgers left without a room are dropped once their latest entry is older
// than deadline.
func (s *Store) CleanupIdleRooms(_ context.Context, deadline time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	threshold := s.now().Add(-deadline)
	var removed int64
	for code, room := range s.rooms {
		last := room.UpdatedAt
		for _, sw := range s.swipes[code] {
			if sw.CreatedAt.After(last) {
				last = sw.CreatedAt
			}
		}
		if last.Before(threshold) {
			delete(s.rooms, code)
			delete(s.swipes, code)
			delete(s.matches, code)
			removed++
		}
	}

	orphans := make(map[model.RoomCode]time.Time)
	for code, swipes := range s.swipes {
		for _, sw := range swipes {
			if sw.CreatedAt.After(orphans[code]) {
				orphans[code] = sw.CreatedAt
			}
		}
	}
	for code, matches := range s.matches {
		if _, ok := orphans[code]; !ok {
			orphans[code] = time.Time{}
		}
		for _, m := range matches {
			if m.CreatedAt.After(orphans[code]) {
				orphans[code] = m.CreatedAt
			}
		}
	}
	for code, last := range orphans {
		if _, ok := s.rooms[code]; ok || !last.Before(threshold) {
			continue
		}
		delete(s.swipes, code)
		delete(s.matches, code)
	}
	return removed, nil
}

// Append accepts swipes for codes without a room, same as the SQL ledger.
func (s *Store) Append(_ context.Context, swipe model.Swipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	swipe.CreatedAt = s.now()
	s.swipes[swipe.RoomCode] = append(s.swipes[swipe.RoomCode], swipe)
	return nil
}

func (s *Store) HasOtherLike(_ context.Context, code model.RoomCode, movieID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sw := range s.swipes[code] {
		if sw.MovieID == movieID && sw.UserID != userID && sw.Direction == model.DirectionRight {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) DeleteByUser(_ context.Context, code model.RoomCode, movieID string, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.swipes[code])
	kept := slices.DeleteFunc(s.swipes[code], func(sw model.Swipe) bool {
		return sw.MovieID == movieID && sw.UserID == userID
	})
	if len(kept) == 0 {
		delete(s.swipes, code)
	} else {
		s.swipes[code] = kept
	}
	return int64(before - len(kept)), nil
}

func (s *Store) Insert(_ context.Context, match model.Match) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.matches[match.RoomCode] {
		if m.MovieID == match.MovieID {
			return false, nil
		}
	}
	match.CreatedAt = s.now()
	s.matches[match.RoomCode] = append(s.matches[match.RoomCode], match)
	return true, nil
}

func (s *Store) ListByRoom(_ context.Context, code model.RoomCode) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.matches[code]), nil
}

func (s *Store) Delete(_ context.Context, code model.RoomCode, movieID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := slices.DeleteFunc(s.matches[code], func(m model.Match) bool {
		return m.MovieID == movieID
	})
	if len(kept) == 0 {
		delete(s.matches, code)
	} else {
		s.matches[code] = kept
	}
	return nil
}
